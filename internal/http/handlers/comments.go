package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/minimalism/blog-be/internal/auth"
	"github.com/minimalism/blog-be/internal/http/respond"
	"github.com/minimalism/blog-be/internal/middleware"
	"github.com/minimalism/blog-be/internal/models/dto"
	"github.com/minimalism/blog-be/internal/storage"
)

// CommentHandler owns the comment thread endpoints.
type CommentHandler struct {
	comments storage.CommentStore
	posts    storage.PostStore
}

// NewCommentHandler constructs the handler. The post store is needed to
// confirm the parent post exists before listing or creating.
func NewCommentHandler(comments storage.CommentStore, posts storage.PostStore) *CommentHandler {
	return &CommentHandler{comments: comments, posts: posts}
}

// Register attaches comment routes to the mux.
func (h *CommentHandler) Register(mux *http.ServeMux, tm *auth.TokenManager) {
	mux.Handle("GET /posts/{id}/comments", middleware.OptionalAuth(tm, http.HandlerFunc(h.handleListByPost)))
	mux.Handle("POST /posts/{id}/comments", middleware.RequireAuth(tm, http.HandlerFunc(h.handleCreate)))
	mux.Handle("PUT /comments/{id}", middleware.RequireAuth(tm, http.HandlerFunc(h.handleUpdate)))
	mux.Handle("DELETE /comments/{id}", middleware.RequireAuth(tm, http.HandlerFunc(h.handleDelete)))
}

func (h *CommentHandler) handleListByPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r)
	if !ok {
		respond.Error(w, http.StatusNotFound, "Not found")
		return
	}
	if _, err := h.posts.PostByID(r.Context(), postID); err != nil {
		storeError(w, err)
		return
	}
	items, err := h.comments.CommentsByPost(r.Context(), postID)
	if err != nil {
		storeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

func (h *CommentHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())
	postID, ok := pathID(r)
	if !ok {
		respond.Error(w, http.StatusNotFound, "Not found")
		return
	}
	if _, err := h.posts.PostByID(r.Context(), postID); err != nil {
		storeError(w, err)
		return
	}

	content, ok := decodeCommentRequest(w, r)
	if !ok {
		return
	}
	comment, err := h.comments.CreateComment(r.Context(), postID, identity.UserID, content)
	if err != nil {
		storeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())
	id, ok := pathID(r)
	if !ok {
		respond.Error(w, http.StatusNotFound, "Not found")
		return
	}

	comment, err := h.comments.CommentByID(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	if comment.Author.ID != identity.UserID {
		respond.Error(w, http.StatusForbidden, "Forbidden")
		return
	}

	content, ok := decodeCommentRequest(w, r)
	if !ok {
		return
	}
	updated, err := h.comments.UpdateComment(r.Context(), id, content)
	if err != nil {
		storeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

func (h *CommentHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())
	id, ok := pathID(r)
	if !ok {
		respond.Error(w, http.StatusNotFound, "Not found")
		return
	}

	comment, err := h.comments.CommentByID(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	if comment.Author.ID != identity.UserID {
		respond.Error(w, http.StatusForbidden, "Forbidden")
		return
	}

	if err := h.comments.DeleteComment(r.Context(), id); err != nil {
		storeError(w, err)
		return
	}
	respond.NoContent(w)
}

func decodeCommentRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req dto.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return "", false
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		respond.Error(w, http.StatusBadRequest, "content is required")
		return "", false
	}
	return content, true
}
