package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/recipe-harbor/backend/config"
	"github.com/pageza/recipe-harbor/backend/internal/api"
	"github.com/pageza/recipe-harbor/backend/internal/middleware"
	"github.com/pageza/recipe-harbor/backend/internal/service"
)

// Options carries what the router needs beyond the recipe service
type Options struct {
	Config       *config.Config
	Logger       *slog.Logger
	WriteLimiter *middleware.RateLimiter
	Version      string
}

// SetupRouter configures the middleware chain and the application routes
func SetupRouter(recipeService service.IRecipeService, opts Options) *gin.Engine {
	if opts.Config.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(opts.Logger),
		middleware.Metrics(),
		middleware.CORS(opts.Config.CORSOrigins),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	api.RegisterRoutes(router, recipeService, opts.WriteLimiter, opts.Version)

	return router
}
