package middleware

import (
	"net/http"
	"strings"

	"github.com/minimalism/blog-be/internal/auth"
	"github.com/minimalism/blog-be/internal/http/respond"
)

// RequireAuth verifies the bearer token and attaches the resolved identity to
// the request context. Any failure short-circuits with a uniform 401 before
// the handler runs.
func RequireAuth(tm *auth.TokenManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := resolveIdentity(tm, r)
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
	})
}

// OptionalAuth attaches the identity when a valid token is present and passes
// through anonymously otherwise. Used on read paths shared by anonymous and
// authenticated viewers.
func OptionalAuth(tm *auth.TokenManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := resolveIdentity(tm, r); ok {
			r = r.WithContext(auth.WithIdentity(r.Context(), identity))
		}
		next.ServeHTTP(w, r)
	})
}

func resolveIdentity(tm *auth.TokenManager, r *http.Request) (auth.Identity, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return auth.Identity{}, false
	}
	identity, err := tm.Verify(strings.TrimSpace(token))
	if err != nil {
		return auth.Identity{}, false
	}
	return identity, true
}
