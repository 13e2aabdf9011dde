package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-harbor/backend/internal/service"
)

const healthTimeout = 2 * time.Second

// HealthHandler reports whether the document store answers
type HealthHandler struct {
	recipeService service.IRecipeService
	version       string
}

func NewHealthHandler(recipeService service.IRecipeService, version string) *HealthHandler {
	return &HealthHandler{recipeService: recipeService, version: version}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.recipeService.HealthCheck(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"message": "document store unreachable",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Recipe Harbor API is running",
		"version": h.version,
	})
}
