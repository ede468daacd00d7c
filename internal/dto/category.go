package dto

type CreateCategory struct {
	Name string
}

type UpdateCategory struct {
	Name string
}
