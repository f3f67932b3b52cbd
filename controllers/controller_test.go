package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"linkfolio/backend/config"
	"linkfolio/backend/database"
	"linkfolio/backend/middlewares"
	"linkfolio/backend/services"
	"linkfolio/backend/utils"
)

var testCfg = config.Config{JWTSecret: "test-secret"}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	services.FetchDelay = 0
	m.Run()
}

// cannedGenerator answers JSON-mode calls with fixed recommendations and
// everything else with a recognizable rewrite.
func cannedGenerator(ctx context.Context, prompt string, opts utils.GenOptions) (string, error) {
	if opts.JSONOutput {
		return `{"summary": ["Lead with impact"], "skills": ["Group by theme"], "general": ["Add a photo"]}`, nil
	}
	return "Enhanced content.", nil
}

func setupRouter(store database.Storage, gen services.GenerateFunc) *gin.Engine {
	enhancer := services.NewEnhancerWithGenerator(gen)
	profiles := services.NewProfileService(enhancer)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", RegisterUser(testCfg, store))
	api.POST("/auth/login", Login(testCfg, store))
	api.GET("/me", middlewares.Auth(testCfg.JWTSecret), Me(store))
	api.POST("/waitlist", JoinWaitlist(store))
	api.GET("/waitlist/export", ExportWaitlist(store))
	api.POST("/profiles", CreateProfile(store))
	api.GET("/profiles/:id", GetProfile(store))
	api.POST("/profiles/:id/fetch", FetchProfileData(store, profiles))
	api.POST("/profiles/:id/settings", SaveSettings(store))
	api.POST("/profiles/:id/enhance", EnhanceProfile(store, enhancer))
	api.GET("/profiles/:id/recommendations", Recommendations(store, enhancer))
	api.POST("/websites", CreateWebsite(store))
	api.PATCH("/websites/:id", UpdateWebsite(store))
	api.GET("/users/:id/websites", ListUserWebsites(store))
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid response body %q: %v", w.Body.String(), err)
	}
	return env
}
