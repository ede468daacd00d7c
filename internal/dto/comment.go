package dto

type CreateComment struct {
	AuthorID int64
	Content  string
}

type CommentFilter struct {
	Page  int
	Limit int
}
