package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-harbor/backend/internal/middleware"
	"github.com/pageza/recipe-harbor/backend/internal/service"
)

// RegisterRoutes registers the health check and the recipe API on router
func RegisterRoutes(router *gin.Engine, recipeService service.IRecipeService, writeLimiter *middleware.RateLimiter, version string) {
	health := NewHealthHandler(recipeService, version)
	router.GET("/health", health.HealthCheck)
	router.GET("/api/health", health.HealthCheck)

	api := router.Group("/api")
	NewRecipeHandler(recipeService, writeLimiter).RegisterRoutes(api)
}
