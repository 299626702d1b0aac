// Package handlers contains the HTTP resource controllers. Each mutating
// handler runs the same pipeline: authenticate, load the resource, check
// ownership, validate input, persist, respond.
package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/minimalism/blog-be/internal/http/respond"
	"github.com/minimalism/blog-be/internal/storage"
)

// pathID parses the {id} path segment. A non-numeric id behaves like a
// missing resource.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// storeError maps storage failures onto the response taxonomy. Anything
// unexpected is logged and hidden behind a generic 500.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "Not found")
	case errors.Is(err, storage.ErrAlreadyExists):
		respond.Error(w, http.StatusConflict, "Already exists")
	default:
		log.Printf("storage error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Server error")
	}
}
