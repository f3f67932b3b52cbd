package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"linkfolio/backend/database"
	"linkfolio/backend/models"
)

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func TestRegisterUser(t *testing.T) {
	store := database.NewMemStorage()
	r := setupRouter(store, cannedGenerator)

	t.Run("creates an account and returns a token", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/auth/register", map[string]any{
			"username": "sample", "password": "secret123", "email": "sample@example.com",
		})
		assert.Equal(t, http.StatusCreated, w.Code)
		var resp authResponse
		assert.NoError(t, json.Unmarshal(decode(t, w).Data, &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, int64(1), resp.User.ID)
		assert.Equal(t, "sample", resp.User.Username)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/auth/register", map[string]any{
			"username": "sample", "password": "another1",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "This username is already taken.", decode(t, w).Message)
	})

	t.Run("short username and password are rejected", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/auth/register", map[string]any{
			"username": "ab", "password": "123",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		msg := decode(t, w).Message
		assert.Contains(t, msg, "Username must be at least 3 characters")
		assert.Contains(t, msg, "Password must be at least 6 characters")
	})
}

func TestLogin(t *testing.T) {
	store := database.NewMemStorage()
	r := setupRouter(store, cannedGenerator)
	doJSON(r, "POST", "/api/auth/register", map[string]any{"username": "sample", "password": "secret123"})

	t.Run("valid credentials", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/auth/login", map[string]any{"username": "sample", "password": "secret123"})
		assert.Equal(t, http.StatusOK, w.Code)
		var resp authResponse
		assert.NoError(t, json.Unmarshal(decode(t, w).Data, &resp))
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/auth/login", map[string]any{"username": "sample", "password": "nope12"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials.", decode(t, w).Message)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/auth/login", map[string]any{"username": "ghost", "password": "secret123"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestMe(t *testing.T) {
	store := database.NewMemStorage()
	r := setupRouter(store, cannedGenerator)
	w := doJSON(r, "POST", "/api/auth/register", map[string]any{"username": "sample", "password": "secret123"})
	var resp authResponse
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &resp))

	t.Run("with a valid token", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/me", nil)
		req.Header.Set("Authorization", "Bearer "+resp.Token)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		var user models.User
		assert.NoError(t, json.Unmarshal(decode(t, rec).Data, &user))
		assert.Equal(t, "sample", user.Username)
	})

	t.Run("without a token", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("with a garbage token", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
