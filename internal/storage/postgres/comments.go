package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/minimalism/blog-be/internal/models"
	"github.com/minimalism/blog-be/internal/storage"
)

const commentColumns = `
	c.id, c.post_id, c.content, c.created_at,
	u.id, u.username, u.avatar_path`

const commentFrom = ` FROM comments c JOIN users u ON u.id = c.author_id`

// CreateComment inserts a comment owned by authorID against postID.
func (s *Store) CreateComment(ctx context.Context, postID, authorID int64, content string) (models.Comment, error) {
	const query = `
		WITH inserted AS (
			INSERT INTO comments (post_id, author_id, content)
			VALUES ($1, $2, $3)
			RETURNING id, post_id, author_id, content, created_at
		)
		SELECT c.id, c.post_id, c.content, c.created_at,
		       u.id, u.username, u.avatar_path
		FROM inserted c JOIN users u ON u.id = c.author_id`
	row := s.pool.QueryRow(ctx, query, postID, authorID, content)
	return scanComment(row)
}

// CommentByID fetches one comment with its author summary.
func (s *Store) CommentByID(ctx context.Context, id int64) (models.Comment, error) {
	row := s.pool.QueryRow(ctx, `SELECT`+commentColumns+commentFrom+` WHERE c.id = $1`, id)
	return scanComment(row)
}

// UpdateComment replaces the comment content.
func (s *Store) UpdateComment(ctx context.Context, id int64, content string) (models.Comment, error) {
	const query = `
		WITH updated AS (
			UPDATE comments SET content = $2
			WHERE id = $1
			RETURNING id, post_id, author_id, content, created_at
		)
		SELECT c.id, c.post_id, c.content, c.created_at,
		       u.id, u.username, u.avatar_path
		FROM updated c JOIN users u ON u.id = c.author_id`
	row := s.pool.QueryRow(ctx, query, id, content)
	return scanComment(row)
}

// DeleteComment removes the comment row.
func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CommentsByPost returns the full thread for a post in chronological order.
func (s *Store) CommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `SELECT` + commentColumns + commentFrom + `
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC, c.id ASC`
	rows, err := s.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, comment)
	}
	return items, rows.Err()
}

func scanComment(row pgx.Row) (models.Comment, error) {
	var comment models.Comment
	err := row.Scan(&comment.ID, &comment.PostID, &comment.Content, &comment.CreatedAt,
		&comment.Author.ID, &comment.Author.Username, &comment.Author.AvatarPath)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Comment{}, storage.ErrNotFound
		}
		return models.Comment{}, err
	}
	return comment, nil
}
