package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/minimalism/blog-be/internal/auth"
	"github.com/minimalism/blog-be/internal/http/respond"
	"github.com/minimalism/blog-be/internal/middleware"
	"github.com/minimalism/blog-be/internal/models/dto"
	"github.com/minimalism/blog-be/internal/storage"
)

const (
	defaultPageSize = 9
	maxPageSize     = 50
)

// PostHandler owns the post CRUD and list/search endpoints.
type PostHandler struct {
	store storage.PostStore
}

// NewPostHandler constructs the handler.
func NewPostHandler(store storage.PostStore) *PostHandler {
	return &PostHandler{store: store}
}

// Register attaches post routes to the mux. Reads take an optional identity,
// mutations require one.
func (h *PostHandler) Register(mux *http.ServeMux, tm *auth.TokenManager) {
	mux.Handle("GET /posts", middleware.OptionalAuth(tm, http.HandlerFunc(h.handleList)))
	mux.Handle("GET /posts/{id}", middleware.OptionalAuth(tm, http.HandlerFunc(h.handleGet)))
	mux.Handle("POST /posts", middleware.RequireAuth(tm, http.HandlerFunc(h.handleCreate)))
	mux.Handle("PUT /posts/{id}", middleware.RequireAuth(tm, http.HandlerFunc(h.handleUpdate)))
	mux.Handle("DELETE /posts/{id}", middleware.RequireAuth(tm, http.HandlerFunc(h.handleDelete)))
}

func (h *PostHandler) handleList(w http.ResponseWriter, r *http.Request) {
	q := listQuery(r)
	items, total, err := h.store.ListPosts(r.Context(), q)
	if err != nil {
		storeError(w, err)
		return
	}

	pages := (total + q.Limit - 1) / q.Limit
	if pages < 1 {
		pages = 1
	}
	respond.JSON(w, http.StatusOK, dto.PostList{
		Items: items,
		Page:  q.Page,
		Pages: pages,
		Total: total,
	})
}

func (h *PostHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.Error(w, http.StatusNotFound, "Not found")
		return
	}
	post, err := h.store.PostByID(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, post)
}

func (h *PostHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())

	req, ok := decodePostRequest(w, r)
	if !ok {
		return
	}
	post, err := h.store.CreatePost(r.Context(), identity.UserID, req.Title, req.Content, req.Category)
	if err != nil {
		storeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, post)
}

func (h *PostHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())
	id, ok := pathID(r)
	if !ok {
		respond.Error(w, http.StatusNotFound, "Not found")
		return
	}

	// Existence is checked before ownership so unowned and missing posts are
	// indistinguishable only through the standard 404.
	post, err := h.store.PostByID(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	if post.Author.ID != identity.UserID {
		respond.Error(w, http.StatusForbidden, "Forbidden")
		return
	}

	req, ok := decodePostRequest(w, r)
	if !ok {
		return
	}
	updated, err := h.store.UpdatePost(r.Context(), id, req.Title, req.Content, req.Category)
	if err != nil {
		storeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

func (h *PostHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())
	id, ok := pathID(r)
	if !ok {
		respond.Error(w, http.StatusNotFound, "Not found")
		return
	}

	post, err := h.store.PostByID(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	if post.Author.ID != identity.UserID {
		respond.Error(w, http.StatusForbidden, "Forbidden")
		return
	}

	if err := h.store.DeletePost(r.Context(), id); err != nil {
		storeError(w, err)
		return
	}
	respond.NoContent(w)
}

// decodePostRequest parses and validates the shared create/update payload.
// Title and content must not trim to empty.
func decodePostRequest(w http.ResponseWriter, r *http.Request) (dto.PostRequest, bool) {
	var req dto.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return dto.PostRequest{}, false
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	req.Category = strings.TrimSpace(req.Category)
	if req.Title == "" || req.Content == "" {
		respond.Error(w, http.StatusBadRequest, "title and content are required")
		return dto.PostRequest{}, false
	}
	return req, true
}

// listQuery reads q/page/limit. Page is 1-indexed and clamped to at least 1;
// limit defaults to the home page size and is bounded above.
func listQuery(r *http.Request) storage.PostQuery {
	values := r.URL.Query()

	page, err := strconv.Atoi(values.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(values.Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	return storage.PostQuery{
		Query: strings.TrimSpace(values.Get("q")),
		Page:  page,
		Limit: limit,
	}
}
