package handlers

import (
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/minimalism/blog-be/internal/auth"
	"github.com/minimalism/blog-be/internal/http/respond"
	"github.com/minimalism/blog-be/internal/middleware"
	"github.com/minimalism/blog-be/internal/models/dto"
	"github.com/minimalism/blog-be/internal/storage"
	"github.com/minimalism/blog-be/internal/upload"
)

// maxAvatarBytes caps avatar uploads at 2 MiB.
const maxAvatarBytes = 2 << 20

var allowedAvatarTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UserHandler owns the profile and avatar endpoints.
type UserHandler struct {
	users   storage.UserStore
	posts   storage.PostStore
	avatars upload.Store
}

// NewUserHandler constructs the handler.
func NewUserHandler(users storage.UserStore, posts storage.PostStore, avatars upload.Store) *UserHandler {
	return &UserHandler{users: users, posts: posts, avatars: avatars}
}

// Register attaches profile routes to the mux. Both require authentication.
func (h *UserHandler) Register(mux *http.ServeMux, tm *auth.TokenManager) {
	mux.Handle("GET /users/me", middleware.RequireAuth(tm, http.HandlerFunc(h.handleMe)))
	mux.Handle("POST /users/me/avatar", middleware.RequireAuth(tm, http.HandlerFunc(h.handleAvatar)))
}

func (h *UserHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())

	user, err := h.users.UserByID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Valid token whose subject no longer resolves.
			respond.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		storeError(w, err)
		return
	}

	posts, err := h.posts.PostsByAuthor(r.Context(), identity.UserID)
	if err != nil {
		storeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.Profile{User: user, Posts: posts})
}

func (h *UserHandler) handleAvatar(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes+4096)
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(w, http.StatusBadRequest, "File too large")
			return
		}
		respond.Error(w, http.StatusBadRequest, "Field required")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Field required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedAvatarTypes[contentType]
	if !ok {
		respond.Error(w, http.StatusBadRequest, "Invalid file type")
		return
	}
	if origExt := strings.ToLower(filepath.Ext(header.Filename)); origExt != "" {
		ext = origExt
	}

	ref, err := h.avatars.Save(r.Context(), ext, contentType, file)
	if err != nil {
		log.Printf("store avatar: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	user, err := h.users.SetAvatar(r.Context(), identity.UserID, ref)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		storeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"user": user})
}
