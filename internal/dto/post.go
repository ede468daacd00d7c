package dto

type CreatePost struct {
	Title       string
	Content     string
	AuthorID    int64
	CategoryID  *int64
	IsPublished bool
	Image       *Upload
}

type UpdatePost struct {
	Title       *string
	Content     *string
	CategoryID  *int64
	IsPublished *bool
	Image       *Upload
}

type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// PostFilter narrows and pages the post listing.
type PostFilter struct {
	Title       *string
	Author      *string
	Category    *string
	IsPublished *bool
	SortBy      string
	SortOrder   SortOrder
	Page        int
	Limit       int
}
