package models

import "time"

// Comment is a reply attached to a post. Only its content is mutable.
type Comment struct {
	ID        int64         `json:"id"`
	PostID    int64         `json:"post_id"`
	Content   string        `json:"content"`
	Author    AuthorSummary `json:"author"`
	CreatedAt time.Time     `json:"created_at"`
}
