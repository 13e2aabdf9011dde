package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-harbor/backend/internal/middleware"
	"github.com/pageza/recipe-harbor/backend/internal/search"
	"github.com/pageza/recipe-harbor/backend/internal/service"
)

const (
	defaultPage = 0
	defaultSize = 10
)

type RecipeHandler struct {
	recipeService service.IRecipeService
	writeLimiter  *middleware.RateLimiter
}

// NewRecipeHandler creates a handler; writeLimiter may be nil to disable write rate limiting
func NewRecipeHandler(recipeService service.IRecipeService, writeLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		writeLimiter:  writeLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipe")
	{
		recipes.POST("", h.limited(h.CreateRecipe)...)
		recipes.POST("/search", h.SearchRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PUT("/:id", h.limited(h.UpdateRecipe)...)
		recipes.DELETE("/:id", h.limited(h.DeleteRecipe)...)
	}
}

func (h *RecipeHandler) limited(handler gin.HandlerFunc) []gin.HandlerFunc {
	if h.writeLimiter == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{h.writeLimiter.RateLimitMiddleware(), handler}
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	created, err := h.recipeService.CreateRecipe(c.Request.Context(), toRecipe(&req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(*created))
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(*recipe))
}

// UpdateRecipe replaces the recipe with the payload
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	updated, err := h.recipeService.UpdateRecipe(c.Request.Context(), c.Param("id"), toRecipe(&req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(*updated))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	if err := h.recipeService.DeleteRecipe(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchRecipes handles POST /recipe/search?page=0&size=10 with the criteria as the body
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	page, ok := queryInt(c, "page", defaultPage)
	if !ok {
		return
	}
	size, ok := queryInt(c, "size", defaultSize)
	if !ok {
		return
	}

	criteria, err := decodeCriteria(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"searchCriteria": err.Error()})
		return
	}

	result, err := h.recipeService.SearchRecipes(c.Request.Context(), criteria, page, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("X-Page-Number", strconv.Itoa(result.PageNumber))
	c.Header("X-Page-Size", strconv.Itoa(result.PageSize))
	c.JSON(http.StatusOK, search.MapPage(result, toResponse))
}

// decodeCriteria rejects unknown fields so a misspelled criterion cannot pass silently.
// An empty body decodes to empty criteria.
func decodeCriteria(body io.Reader) (search.Criteria, error) {
	var criteria search.Criteria
	if body == nil {
		return criteria, nil
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return criteria, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return criteria, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	err = dec.Decode(&criteria)
	return criteria, err
}

func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{name: name + " must be an integer"})
		return 0, false
	}
	return v, true
}
