package models

type Comment struct {
	ID         int64  `json:"id"`
	PostID     int64  `json:"postId"`
	AuthorID   int64  `json:"authorId"`
	AuthorName string `json:"authorName,omitempty"`
	Content    string `json:"content"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt,omitempty"`
}
