package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-harbor/backend/config"
	"github.com/pageza/recipe-harbor/backend/internal/database"
	"github.com/pageza/recipe-harbor/backend/internal/middleware"
	"github.com/pageza/recipe-harbor/backend/internal/router"
	"github.com/pageza/recipe-harbor/backend/internal/service"
	"github.com/pageza/recipe-harbor/backend/internal/store"
	"github.com/pageza/recipe-harbor/backend/internal/testhelpers"
)

type pageBody struct {
	Content []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
}

func setupApp(t *testing.T, writesPerMinute int) *gin.Engine {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db := testhelpers.SetupTestMongo(t)
	coll := db.Collection("recipes")
	_, err := database.EnsureIndexes(ctx, coll)
	require.NoError(t, err)

	recipes, err := database.ParseSeed(mustLoad(t))
	require.NoError(t, err)
	st := store.Instrument(store.NewMongoStore(coll))
	_, err = database.Seed(ctx, st, recipes, logger)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return router.SetupRouter(service.NewRecipeService(st, logger), router.Options{
		Config:       config.Defaults(),
		Logger:       logger,
		WriteLimiter: middleware.NewWriteRateLimiter(rdb, writesPerMinute),
		Version:      "integration",
	})
}

func mustLoad(t *testing.T) []byte {
	t.Helper()
	data, err := database.LoadSeedData(context.Background(), "", nil)
	require.NoError(t, err)
	return data
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func search(t *testing.T, r http.Handler, query string, criteria map[string]any) pageBody {
	t.Helper()
	w := do(r, http.MethodPost, "/api/recipe/search"+query, criteria)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page pageBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	return page
}

func TestSearchSeededRecipes(t *testing.T) {
	r := setupApp(t, 100)

	page := search(t, r, "", map[string]any{"vegetarian": true})
	assert.EqualValues(t, 6, page.TotalElements)

	page = search(t, r, "", map[string]any{"includeIngredients": []string{"onion"}, "excludeIngredients": []string{"chicken"}})
	var names []string
	for _, c := range page.Content {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"Potato Salad", "Lentil Soup", "Beef Stroganoff"}, names)

	page = search(t, r, "", map[string]any{"instructionsText": "OVEN"})
	assert.EqualValues(t, 2, page.TotalElements)

	page = search(t, r, "?page=2&size=5", map[string]any{"servings": 4})
	assert.EqualValues(t, 5, page.TotalElements)
	assert.Empty(t, page.Content)
	assert.True(t, page.Last)
}

func TestRecipeLifecycle(t *testing.T) {
	r := setupApp(t, 100)

	recipe := map[string]any{
		"name":       "Mushroom Risotto",
		"vegetarian": true,
		"servings":   3,
		"ingredients": []map[string]any{
			{"name": "rice", "quantity": 300, "unit": "g"},
			{"name": "mushroom", "quantity": 250, "unit": "g"},
		},
		"instructions": []map[string]any{
			{"step_number": 1, "description": "Toast the rice"},
			{"step_number": 2, "description": "Add stock slowly and stir"},
		},
	}
	w := do(r, http.MethodPost, "/api/recipe", recipe)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	page := search(t, r, "", map[string]any{"includeIngredients": []string{"mushroom", "rice"}})
	require.Len(t, page.Content, 1)
	assert.Equal(t, created.ID, page.Content[0].ID)

	recipe["servings"] = 5
	w = do(r, http.MethodPut, "/api/recipe/"+created.ID, recipe)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, search(t, r, "", map[string]any{"servings": 5, "vegetarian": true}).TotalElements)

	w = do(r, http.MethodDelete, "/api/recipe/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, "/api/recipe/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf("Recipe with id '%s' not found", created.ID))
}

func TestWriteRateLimitSharedThroughRedis(t *testing.T) {
	r := setupApp(t, 1)

	w := do(r, http.MethodDelete, "/api/recipe/000000000000000000000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodDelete, "/api/recipe/000000000000000000000000", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// reads are not limited
	w = do(r, http.MethodGet, "/api/recipe/000000000000000000000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
