package storage

import (
	"context"
	"errors"

	"github.com/minimalism/blog-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures user persistence operations needed by handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	UserByID(ctx context.Context, id int64) (models.User, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	SetAvatar(ctx context.Context, userID int64, avatarPath string) (models.User, error)
}

// PostQuery bounds and filters a post listing. Query is a free-text needle
// matched case-insensitively against title and content; empty means no filter.
type PostQuery struct {
	Query string
	Page  int
	Limit int
}

// PostStore captures post persistence and search operations.
type PostStore interface {
	CreatePost(ctx context.Context, authorID int64, title, content, category string) (models.Post, error)
	PostByID(ctx context.Context, id int64) (models.Post, error)
	UpdatePost(ctx context.Context, id int64, title, content, category string) (models.Post, error)
	DeletePost(ctx context.Context, id int64) error
	ListPosts(ctx context.Context, q PostQuery) (items []models.Post, total int, err error)
	PostsByAuthor(ctx context.Context, authorID int64) ([]models.Post, error)
}

// CommentStore captures comment persistence operations.
type CommentStore interface {
	CreateComment(ctx context.Context, postID, authorID int64, content string) (models.Comment, error)
	CommentByID(ctx context.Context, id int64) (models.Comment, error)
	UpdateComment(ctx context.Context, id int64, content string) (models.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
	CommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error)
}

// Store aggregates the per-entity interfaces implemented by a backend.
type Store interface {
	UserStore
	PostStore
	CommentStore
}
