package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/metrics"
	"github.com/pageza/recipebox/backend/internal/middleware"
)

// Options carries the cross-cutting pieces the router wires around handlers.
type Options struct {
	Log            *logrus.Logger
	Metrics        *metrics.Metrics
	AllowedOrigins []string
}

// SetupRouter configures the application routes
func SetupRouter(recipeHandler *api.RecipeHandler, healthHandler *api.HealthHandler, opts Options) *gin.Engine {
	router := gin.New()

	router.Use(middleware.ErrorHandler(opts.Log))
	router.Use(middleware.RequestLogger(opts.Log))
	if opts.Metrics != nil {
		router.Use(middleware.Metrics(opts.Metrics))
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	if len(opts.AllowedOrigins) > 0 {
		router.Use(middleware.CORS(opts.AllowedOrigins))
	}

	healthHandler.RegisterRoutes(router)
	recipeHandler.RegisterRoutes(router)

	return router
}
