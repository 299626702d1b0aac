package server

import (
	"context"
	"net/http"
	"time"

	"github.com/minimalism/blog-be/internal/auth"
	"github.com/minimalism/blog-be/internal/config"
	"github.com/minimalism/blog-be/internal/http/handlers"
	"github.com/minimalism/blog-be/internal/middleware"
	"github.com/minimalism/blog-be/internal/storage"
	"github.com/minimalism/blog-be/internal/upload"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, avatars upload.Store) *Server {
	mux := http.NewServeMux()
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	handlers.NewHealthHandler().Register(mux)
	handlers.NewAuthHandler(store, tokenManager).Register(mux)
	handlers.NewPostHandler(store).Register(mux, tokenManager)
	handlers.NewCommentHandler(store, store).Register(mux, tokenManager)
	handlers.NewUserHandler(store, store, avatars).Register(mux, tokenManager)

	// Disk-stored avatars are served straight off the filesystem. The S3
	// backend returns bucket-relative references served elsewhere.
	if disk, ok := avatars.(*upload.DiskStore); ok {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(disk.Dir()))))
	}

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
