package models

type Post struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Status     string     `json:"status"`
	AuthorID   int64      `json:"authorId"`
	AuthorName string     `json:"authorName,omitempty"`
	Categories []Category `json:"categories,omitempty"`
	CreatedAt  string     `json:"createdAt,omitempty"`
	UpdatedAt  string     `json:"updatedAt,omitempty"`
}
