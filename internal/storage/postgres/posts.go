package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/minimalism/blog-be/internal/models"
	"github.com/minimalism/blog-be/internal/storage"
)

const postColumns = `
	p.id, p.title, p.content, p.category, p.created_at, p.updated_at,
	u.id, u.username, u.avatar_path`

const postFrom = ` FROM posts p JOIN users u ON u.id = p.author_id`

// CreatePost inserts a post owned by authorID and returns it with the author
// summary attached.
func (s *Store) CreatePost(ctx context.Context, authorID int64, title, content, category string) (models.Post, error) {
	const query = `
		WITH inserted AS (
			INSERT INTO posts (author_id, title, content, category)
			VALUES ($1, $2, $3, $4)
			RETURNING id, author_id, title, content, category, created_at, updated_at
		)
		SELECT p.id, p.title, p.content, p.category, p.created_at, p.updated_at,
		       u.id, u.username, u.avatar_path
		FROM inserted p JOIN users u ON u.id = p.author_id`
	row := s.pool.QueryRow(ctx, query, authorID, title, content, category)
	return scanPost(row)
}

// PostByID fetches one post with its author summary.
func (s *Store) PostByID(ctx context.Context, id int64) (models.Post, error) {
	row := s.pool.QueryRow(ctx, `SELECT`+postColumns+postFrom+` WHERE p.id = $1`, id)
	return scanPost(row)
}

// UpdatePost replaces the three mutable fields. The author reference is never
// touched.
func (s *Store) UpdatePost(ctx context.Context, id int64, title, content, category string) (models.Post, error) {
	const query = `
		WITH updated AS (
			UPDATE posts SET title = $2, content = $3, category = $4, updated_at = NOW()
			WHERE id = $1
			RETURNING id, author_id, title, content, category, created_at, updated_at
		)
		SELECT p.id, p.title, p.content, p.category, p.created_at, p.updated_at,
		       u.id, u.username, u.avatar_path
		FROM updated p JOIN users u ON u.id = p.author_id`
	row := s.pool.QueryRow(ctx, query, id, title, content, category)
	return scanPost(row)
}

// DeletePost removes the post row. Comments referencing it are left in place.
func (s *Store) DeletePost(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListPosts returns one page of posts ordered newest-first plus the total
// match count. An empty query matches everything; otherwise title and content
// are searched case-insensitively.
func (s *Store) ListPosts(ctx context.Context, q storage.PostQuery) ([]models.Post, int, error) {
	needle := "%" + q.Query + "%"

	var total int
	countQuery := `SELECT COUNT(*) FROM posts p WHERE $1 = '' OR p.title ILIKE $2 OR p.content ILIKE $2`
	if err := s.pool.QueryRow(ctx, countQuery, q.Query, needle).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	listQuery := `SELECT` + postColumns + postFrom + `
		WHERE $1 = '' OR p.title ILIKE $2 OR p.content ILIKE $2
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $3 OFFSET $4`
	rows, err := s.pool.Query(ctx, listQuery, q.Query, needle, q.Limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items, err := collectPosts(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// PostsByAuthor returns every post by the given author, newest first.
func (s *Store) PostsByAuthor(ctx context.Context, authorID int64) ([]models.Post, error) {
	query := `SELECT` + postColumns + postFrom + `
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC, p.id DESC`
	rows, err := s.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

func collectPosts(rows pgx.Rows) ([]models.Post, error) {
	items := []models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, post)
	}
	return items, rows.Err()
}

func scanPost(row pgx.Row) (models.Post, error) {
	var post models.Post
	err := row.Scan(&post.ID, &post.Title, &post.Content, &post.Category,
		&post.CreatedAt, &post.UpdatedAt,
		&post.Author.ID, &post.Author.Username, &post.Author.AvatarPath)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Post{}, storage.ErrNotFound
		}
		return models.Post{}, err
	}
	return post, nil
}
