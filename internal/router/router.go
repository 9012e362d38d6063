package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipe-robot/backend/internal/api"
	"github.com/pageza/recipe-robot/backend/internal/middleware"
)

// SetupRouter configures the middleware chain and the application routes
func SetupRouter(allowedOrigins []string, deps api.Dependencies) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log.Named("http")),
		middleware.Recovery(log),
	)
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}
	router.Use(middleware.CORS(allowedOrigins))

	api.RegisterRoutes(router, deps)
	return router
}
