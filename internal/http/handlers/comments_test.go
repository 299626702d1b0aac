package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minimalism/blog-be/internal/models"
)

func (e *testEnv) createComment(t *testing.T, token string, postID int64, content string) models.Comment {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, fmt.Sprintf("/posts/%d/comments", postID), token,
		map[string]string{"content": content})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create comment: %s", body)
	var out models.Comment
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func (e *testEnv) listComments(t *testing.T, postID int64) []models.Comment {
	t.Helper()
	resp, body := e.do(t, http.MethodGet, fmt.Sprintf("/posts/%d/comments", postID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "list comments: %s", body)
	var out []models.Comment
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestComments_CreateAndThreadOrder(t *testing.T) {
	env := newTestEnv(t)
	author := env.register(t, "author")
	reader := env.register(t, "reader")
	postID := env.createPost(t, author.Token, "Hello", "World")

	// Unauthenticated creation is rejected before handler logic.
	resp, _ := env.do(t, http.MethodPost, fmt.Sprintf("/posts/%d/comments", postID), "",
		map[string]string{"content": "anon"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	first := env.createComment(t, author.Token, postID, "first!")
	second := env.createComment(t, reader.Token, postID, "nice post")

	// Thread comes back oldest-first with author summaries attached.
	items := env.listComments(t, postID)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
	assert.Equal(t, "author", items[0].Author.Username)
	assert.Equal(t, "reader", items[1].Author.Username)
}

func TestComments_AgainstMissingPost(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "johndoe")

	resp, _ := env.do(t, http.MethodGet, "/posts/9999/comments", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, "/posts/9999/comments", user.Token,
		map[string]string{"content": "into the void"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestComments_OwnershipGatedMutation(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner")
	other := env.register(t, "other")
	postID := env.createPost(t, owner.Token, "Hello", "World")
	comment := env.createComment(t, owner.Token, postID, "original")

	path := fmt.Sprintf("/comments/%d", comment.ID)

	// Non-owner mutation is forbidden and changes nothing.
	resp, _ := env.do(t, http.MethodPut, path, other.Token, map[string]string{"content": "edited"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = env.do(t, http.MethodDelete, path, other.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	items := env.listComments(t, postID)
	require.Len(t, items, 1)
	assert.Equal(t, "original", items[0].Content)

	// Owner update succeeds.
	resp, body := env.do(t, http.MethodPut, path, owner.Token, map[string]string{"content": "edited"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Comment
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "edited", updated.Content)

	// Owner delete succeeds and empties the thread.
	resp, _ = env.do(t, http.MethodDelete, path, owner.Token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, env.listComments(t, postID))
}

func TestComments_Validation(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "johndoe")
	postID := env.createPost(t, user.Token, "Hello", "World")

	resp, _ := env.do(t, http.MethodPost, fmt.Sprintf("/posts/%d/comments", postID), user.Token,
		map[string]string{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestComments_SurviveParentDeletion(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "johndoe")
	postID := env.createPost(t, user.Token, "Hello", "World")
	comment := env.createComment(t, user.Token, postID, "orphan-to-be")

	resp, _ := env.do(t, http.MethodDelete, fmt.Sprintf("/posts/%d", postID), user.Token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// The thread endpoint 404s with the post gone...
	resp, _ = env.do(t, http.MethodGet, fmt.Sprintf("/posts/%d/comments", postID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// ...but the orphaned comment record itself remains mutable by its author.
	resp, _ = env.do(t, http.MethodDelete, fmt.Sprintf("/comments/%d", comment.ID), user.Token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
