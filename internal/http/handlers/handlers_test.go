package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/minimalism/blog-be/internal/auth"
	"github.com/minimalism/blog-be/internal/models/dto"
	"github.com/minimalism/blog-be/internal/storage/memory"
	"github.com/minimalism/blog-be/internal/upload"
)

// testEnv wires every handler over the in-memory store behind an httptest
// server, mirroring the production route setup.
type testEnv struct {
	store  *memory.Store
	tokens *auth.TokenManager
	ts     *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.New()
	tm := auth.NewTokenManager("test-secret", "minimalism-backend", time.Hour)

	avatars, err := upload.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	mux := http.NewServeMux()
	NewHealthHandler().Register(mux)
	NewAuthHandler(store, tm).Register(mux)
	NewPostHandler(store).Register(mux, tm)
	NewCommentHandler(store, store).Register(mux, tm)
	NewUserHandler(store, store, avatars).Register(mux, tm)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return &testEnv{store: store, tokens: tm, ts: ts}
}

// do issues a JSON request with an optional bearer token and returns the
// response with its body fully read.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, e.ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

// register creates a user through the API and returns the auth response.
func (e *testEnv) register(t *testing.T, username string) dto.AuthResponse {
	t.Helper()

	resp, body := e.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"email":    fmt.Sprintf("%s@example.com", username),
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "register %s: %s", username, body)

	var out dto.AuthResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

// createPost creates a post as the given token's user and returns its id.
func (e *testEnv) createPost(t *testing.T, token, title, content string) int64 {
	t.Helper()

	resp, body := e.do(t, http.MethodPost, "/posts", token, map[string]string{
		"title":   title,
		"content": content,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create post: %s", body)

	var out struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return out.ID
}
