package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-harbor/backend/config"
	"github.com/pageza/recipe-harbor/backend/internal/service"
	"github.com/pageza/recipe-harbor/backend/internal/store"
	"github.com/pageza/recipe-harbor/backend/internal/testhelpers"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := store.NewMemoryStore()
	testhelpers.SeedRecipes(t, s, testhelpers.ScenarioRecipes())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return SetupRouter(service.NewRecipeService(s, logger), Options{
		Config:  config.Defaults(),
		Logger:  logger,
		Version: "test",
	})
}

func TestRouterServesHealthAndMetrics(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "recipeharbor_http_requests_total")
}

func TestRouterSearch(t *testing.T) {
	r := setupRouter(t)

	body := []byte(`{"includeIngredients":["Onions"],"vegetarian":true,"servings":2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/recipe/search?page=0&size=10", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page struct {
		TotalElements int64 `json:"totalElements"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.EqualValues(t, 3, page.TotalElements)
}

func TestRouterUnknownRoute(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nothing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
