// Package memory implements storage.Store in process memory. It exists so
// handler tests can run against a real store implementation without a
// database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/minimalism/blog-be/internal/models"
	"github.com/minimalism/blog-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps all records in maps guarded by a single mutex.
type Store struct {
	mu       sync.Mutex
	users    map[int64]models.User
	posts    map[int64]post
	comments map[int64]comment
	nextID   int64
	now      func() time.Time
}

type post struct {
	id        int64
	authorID  int64
	title     string
	content   string
	category  string
	createdAt time.Time
	updatedAt time.Time
}

type comment struct {
	id        int64
	postID    int64
	authorID  int64
	content   string
	createdAt time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:    make(map[int64]models.User),
		posts:    make(map[int64]post),
		comments: make(map[int64]comment),
		now:      time.Now,
	}
}

func (s *Store) nextIDLocked() int64 {
	s.nextID++
	return s.nextID
}

// CreateUser inserts a user, enforcing username and email uniqueness.
func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	user.ID = s.nextIDLocked()
	user.CreatedAt = s.now()
	s.users[user.ID] = user
	return user, nil
}

// UserByID fetches a user by id.
func (s *Store) UserByID(_ context.Context, id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

// UserByEmail fetches a user by email.
func (s *Store) UserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// SetAvatar records the stored file reference on the user.
func (s *Store) SetAvatar(_ context.Context, userID int64, avatarPath string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	user.AvatarPath = avatarPath
	s.users[userID] = user
	return user, nil
}

// CreatePost inserts a post owned by authorID.
func (s *Store) CreatePost(_ context.Context, authorID int64, title, content, category string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	p := post{
		id:        s.nextIDLocked(),
		authorID:  authorID,
		title:     title,
		content:   content,
		category:  category,
		createdAt: now,
		updatedAt: now,
	}
	s.posts[p.id] = p
	return s.postModelLocked(p), nil
}

// PostByID fetches one post.
func (s *Store) PostByID(_ context.Context, id int64) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return models.Post{}, storage.ErrNotFound
	}
	return s.postModelLocked(p), nil
}

// UpdatePost replaces the mutable fields of a post.
func (s *Store) UpdatePost(_ context.Context, id int64, title, content, category string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return models.Post{}, storage.ErrNotFound
	}
	p.title, p.content, p.category = title, content, category
	p.updatedAt = s.now()
	s.posts[id] = p
	return s.postModelLocked(p), nil
}

// DeletePost removes a post. Its comments are deliberately left in place.
func (s *Store) DeletePost(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

// ListPosts filters, orders newest-first, and slices one page.
func (s *Store) ListPosts(_ context.Context, q storage.PostQuery) ([]models.Post, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(q.Query)
	matched := make([]post, 0, len(s.posts))
	for _, p := range s.posts {
		if needle == "" ||
			strings.Contains(strings.ToLower(p.title), needle) ||
			strings.Contains(strings.ToLower(p.content), needle) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].createdAt.Equal(matched[j].createdAt) {
			return matched[i].createdAt.After(matched[j].createdAt)
		}
		return matched[i].id > matched[j].id
	})

	total := len(matched)
	start := (q.Page - 1) * q.Limit
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}

	items := make([]models.Post, 0, end-start)
	for _, p := range matched[start:end] {
		items = append(items, s.postModelLocked(p))
	}
	return items, total, nil
}

// PostsByAuthor returns every post by the author, newest first.
func (s *Store) PostsByAuthor(_ context.Context, authorID int64) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := make([]post, 0)
	for _, p := range s.posts {
		if p.authorID == authorID {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].createdAt.Equal(matched[j].createdAt) {
			return matched[i].createdAt.After(matched[j].createdAt)
		}
		return matched[i].id > matched[j].id
	})
	items := make([]models.Post, 0, len(matched))
	for _, p := range matched {
		items = append(items, s.postModelLocked(p))
	}
	return items, nil
}

// CreateComment inserts a comment against postID.
func (s *Store) CreateComment(_ context.Context, postID, authorID int64, content string) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := comment{
		id:        s.nextIDLocked(),
		postID:    postID,
		authorID:  authorID,
		content:   content,
		createdAt: s.now(),
	}
	s.comments[c.id] = c
	return s.commentModelLocked(c), nil
}

// CommentByID fetches one comment.
func (s *Store) CommentByID(_ context.Context, id int64) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return models.Comment{}, storage.ErrNotFound
	}
	return s.commentModelLocked(c), nil
}

// UpdateComment replaces the comment content.
func (s *Store) UpdateComment(_ context.Context, id int64, content string) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return models.Comment{}, storage.ErrNotFound
	}
	c.content = content
	s.comments[id] = c
	return s.commentModelLocked(c), nil
}

// DeleteComment removes a comment.
func (s *Store) DeleteComment(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

// CommentsByPost returns the thread oldest-first.
func (s *Store) CommentsByPost(_ context.Context, postID int64) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := make([]comment, 0)
	for _, c := range s.comments {
		if c.postID == postID {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].createdAt.Equal(matched[j].createdAt) {
			return matched[i].createdAt.Before(matched[j].createdAt)
		}
		return matched[i].id < matched[j].id
	})
	items := make([]models.Comment, 0, len(matched))
	for _, c := range matched {
		items = append(items, s.commentModelLocked(c))
	}
	return items, nil
}

func (s *Store) postModelLocked(p post) models.Post {
	return models.Post{
		ID:        p.id,
		Title:     p.title,
		Content:   p.content,
		Category:  p.category,
		Author:    s.users[p.authorID].Summary(),
		CreatedAt: p.createdAt,
		UpdatedAt: p.updatedAt,
	}
}

func (s *Store) commentModelLocked(c comment) models.Comment {
	return models.Comment{
		ID:        c.id,
		PostID:    c.postID,
		Content:   c.content,
		Author:    s.users[c.authorID].Summary(),
		CreatedAt: c.createdAt,
	}
}
