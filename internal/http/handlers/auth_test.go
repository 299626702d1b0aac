package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minimalism/blog-be/internal/models/dto"
)

func TestRegister_ReturnsTokenAndUser(t *testing.T) {
	env := newTestEnv(t)

	out := env.register(t, "johndoe")
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "johndoe", out.User.Username)
	assert.Equal(t, "johndoe@example.com", out.User.Email)
	assert.NotZero(t, out.User.ID)

	identity, err := env.tokens.Verify(out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, identity.UserID)
}

func TestRegister_PasswordHashNeverSerialized(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "hasher",
		"email":    "hasher@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &raw))
	var user map[string]any
	require.NoError(t, json.Unmarshal(raw["user"], &user))
	assert.NotContains(t, user, "password_hash")
	assert.NotContains(t, user, "PasswordHash")
}

func TestRegister_DuplicateUsernameOrEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "johndoe")

	// Same username, different email.
	resp, _ := env.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "johndoe",
		"email":    "other@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Same email, different username.
	resp, _ = env.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "someoneelse",
		"email":    "johndoe@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name    string
		payload map[string]string
	}{
		{"missing username", map[string]string{"email": "a@example.com", "password": "password123"}},
		{"missing email", map[string]string{"username": "a", "password": "password123"}},
		{"missing password", map[string]string{"username": "a", "email": "a@example.com"}},
		{"short password", map[string]string{"username": "a", "email": "a@example.com", "password": "abc"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := env.do(t, http.MethodPost, "/auth/register", "", tc.payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	registered := env.register(t, "johndoe")

	resp, body := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "johndoe@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.AuthResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, registered.User.ID, out.User.ID)
	assert.NotEmpty(t, out.Token)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "johndoe")

	// Wrong password and unknown email answer identically.
	resp, body := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "johndoe@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp2, body2 := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "ghost@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
	assert.JSONEq(t, string(body), string(body2))
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok": true}`, string(body))
}
