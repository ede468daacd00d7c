package entity

import "time"

type Post struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	AuthorID    int64  `json:"author_id"`
	CategoryID  *int64 `json:"category_id,omitempty"`
	IsPublished bool   `json:"is_published"`

	Image VariantSet `json:"image"`

	AuthorUsername *string `json:"author_username,omitempty"`
	CategoryName   *string `json:"category_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
