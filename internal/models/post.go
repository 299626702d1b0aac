package models

import "time"

// Post is a published content record. The author reference is set once at
// creation and never reassigned.
type Post struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Category  string        `json:"category,omitempty"`
	Author    AuthorSummary `json:"author"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
