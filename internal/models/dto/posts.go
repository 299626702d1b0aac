package dto

import "github.com/minimalism/blog-be/internal/models"

type PostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

type CommentRequest struct {
	Content string `json:"content"`
}

// PostList is the envelope returned by the list/search endpoint.
type PostList struct {
	Items []models.Post `json:"items"`
	Page  int           `json:"page"`
	Pages int           `json:"pages"`
	Total int           `json:"total"`
}

// Profile bundles a user's own record with their posts, newest first.
type Profile struct {
	User  models.User   `json:"user"`
	Posts []models.Post `json:"posts"`
}
