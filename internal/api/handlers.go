package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipe-robot/backend/internal/metrics"
	"github.com/pageza/recipe-robot/backend/internal/service"
	"github.com/pageza/recipe-robot/backend/internal/types"
)

// Pinger reports whether the ingredient store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Root returns the service banner
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Recipe Suggestion API with Gemini Integration"})
}

// HealthCheck returns the health status of the API
func HealthCheck(recipes service.IRecipeService, store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		database := "ok"
		if store != nil {
			if err := store.Ping(c.Request.Context()); err != nil {
				database = "unavailable"
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":        "healthy",
			"api_available": recipes.Available(),
			"database":      database,
		})
	}
}

// Dependencies are the services behind the routes
type Dependencies struct {
	Foods    service.IFoodService
	Recipes  service.IRecipeService
	Store    Pinger
	Defaults types.RecipeDefaults
	Metrics  *metrics.Collector
	Log      *zap.Logger
}

// RegisterRoutes mounts every route at the root and again under /api/v1
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	foodHandler := NewFoodHandler(deps.Foods, deps.Log)
	recipeHandler := NewRecipeHandler(deps.Recipes, deps.Defaults, deps.Log)
	health := HealthCheck(deps.Recipes, deps.Store)

	router.GET("/", Root)
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	for _, group := range []*gin.RouterGroup{&router.RouterGroup, router.Group("/api/v1")} {
		group.GET("/health", health)
		foodHandler.RegisterRoutes(group)
		recipeHandler.RegisterRoutes(group)
	}
}
