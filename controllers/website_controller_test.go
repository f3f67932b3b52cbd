package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"linkfolio/backend/database"
	"linkfolio/backend/models"
)

// conflictingWebsiteStore simulates the unique-index race: the pre-insert
// lookups see nothing, the write itself collides.
type conflictingWebsiteStore struct {
	database.Storage
}

func (s conflictingWebsiteStore) CreateWebsite(ctx context.Context, w models.InsertWebsite) (*models.Website, error) {
	return nil, database.ErrConflict
}

func (s conflictingWebsiteStore) UpdateWebsite(ctx context.Context, id int64, u models.WebsiteUpdate) (*models.Website, error) {
	return nil, database.ErrConflict
}

func TestCreateWebsite(t *testing.T) {
	store := database.NewMemStorage()
	r := setupRouter(store, cannedGenerator)
	doJSON(r, "POST", "/api/profiles", map[string]any{"linkedinUrl": "https://linkedin.com/in/sample-user"})

	t.Run("creates with a free subdomain", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/websites", map[string]any{
			"profileId":  1,
			"templateId": "minimal",
			"subdomain":  "sample",
			"settings":   map[string]any{"accent": "blue"},
		})
		assert.Equal(t, http.StatusCreated, w.Code)
		var site models.Website
		assert.NoError(t, json.Unmarshal(decode(t, w).Data, &site))
		assert.Equal(t, int64(1), site.ID)
		assert.Equal(t, "minimal", site.TemplateID)
		assert.False(t, site.Published)
	})

	t.Run("rejects a taken subdomain", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/websites", map[string]any{
			"profileId":  1,
			"templateId": "modern",
			"subdomain":  "sample",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "This subdomain is already taken.", decode(t, w).Message)
	})

	t.Run("rejects a taken custom domain", func(t *testing.T) {
		doJSON(r, "POST", "/api/websites", map[string]any{
			"profileId": 1, "templateId": "modern", "customDomain": "me.example.com",
		})
		w := doJSON(r, "POST", "/api/websites", map[string]any{
			"profileId": 1, "templateId": "modern", "customDomain": "me.example.com",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "This custom domain is already in use.", decode(t, w).Message)
	})

	t.Run("missing profile is 404", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/websites", map[string]any{"profileId": 99, "templateId": "minimal"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing template id is rejected", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/websites", map[string]any{"profileId": 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWebsiteConflictRaceMessages(t *testing.T) {
	store := conflictingWebsiteStore{Storage: database.NewMemStorage()}
	r := setupRouter(store, cannedGenerator)
	doJSON(r, "POST", "/api/profiles", map[string]any{"linkedinUrl": "https://linkedin.com/in/sample-user"})

	t.Run("subdomain race names the subdomain", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/websites", map[string]any{
			"profileId": 1, "templateId": "minimal", "subdomain": "sample",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "This subdomain is already taken.", decode(t, w).Message)
	})

	t.Run("custom domain race names the domain", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/websites", map[string]any{
			"profileId": 1, "templateId": "minimal", "customDomain": "me.example.com",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "This custom domain is already in use.", decode(t, w).Message)
	})

	t.Run("update race follows the supplied field too", func(t *testing.T) {
		w := doJSON(r, "PATCH", "/api/websites/1", map[string]any{"customDomain": "me.example.com"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "This custom domain is already in use.", decode(t, w).Message)
	})
}

func TestUpdateWebsite(t *testing.T) {
	store := database.NewMemStorage()
	r := setupRouter(store, cannedGenerator)
	doJSON(r, "POST", "/api/profiles", map[string]any{"linkedinUrl": "https://linkedin.com/in/sample-user"})
	doJSON(r, "POST", "/api/websites", map[string]any{
		"profileId": 1, "templateId": "minimal", "subdomain": "first",
	})
	doJSON(r, "POST", "/api/websites", map[string]any{
		"profileId": 1, "templateId": "minimal", "subdomain": "second",
	})

	t.Run("partial update keeps unspecified fields", func(t *testing.T) {
		w := doJSON(r, "PATCH", "/api/websites/1", map[string]any{"published": true})
		assert.Equal(t, http.StatusOK, w.Code)
		var site models.Website
		assert.NoError(t, json.Unmarshal(decode(t, w).Data, &site))
		assert.True(t, site.Published)
		assert.Equal(t, "minimal", site.TemplateID)
		if assert.NotNil(t, site.Subdomain) {
			assert.Equal(t, "first", *site.Subdomain)
		}
	})

	t.Run("own subdomain is not a conflict", func(t *testing.T) {
		w := doJSON(r, "PATCH", "/api/websites/1", map[string]any{"subdomain": "first", "templateId": "modern"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("another site's subdomain is a conflict", func(t *testing.T) {
		w := doJSON(r, "PATCH", "/api/websites/1", map[string]any{"subdomain": "second"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "This subdomain is already taken.", decode(t, w).Message)
	})

	t.Run("missing website is 404", func(t *testing.T) {
		w := doJSON(r, "PATCH", "/api/websites/99", map[string]any{"published": true})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Website not found.", decode(t, w).Message)
	})
}

func TestListUserWebsites(t *testing.T) {
	store := database.NewMemStorage()
	r := setupRouter(store, cannedGenerator)
	doJSON(r, "POST", "/api/profiles", map[string]any{"linkedinUrl": "https://linkedin.com/in/sample-user", "userId": 7})
	doJSON(r, "POST", "/api/websites", map[string]any{"profileId": 1, "templateId": "minimal"})
	doJSON(r, "POST", "/api/websites", map[string]any{"profileId": 1, "templateId": "modern"})

	w := doJSON(r, "GET", "/api/users/7/websites", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var sites []models.Website
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &sites))
	assert.Len(t, sites, 2)
	assert.Equal(t, "minimal", sites[0].TemplateID)

	w = doJSON(r, "GET", "/api/users/8/websites", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	sites = nil
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &sites))
	assert.Empty(t, sites)
}
