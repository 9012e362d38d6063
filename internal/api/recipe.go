package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipe-robot/backend/internal/service"
	"github.com/pageza/recipe-robot/backend/internal/types"
)

// RecipeHandler serves recipe generation
type RecipeHandler struct {
	recipes  service.IRecipeService
	defaults types.RecipeDefaults
	log      *zap.Logger
}

// NewRecipeHandler creates a new RecipeHandler instance. defaults fill the
// optional body fields.
func NewRecipeHandler(recipes service.IRecipeService, defaults types.RecipeDefaults, log *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, defaults: defaults, log: log.Named("recipes")}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("/generate", h.Generate)
	}
}

// Generate handles POST /recipes/generate
func (h *RecipeHandler) Generate(c *gin.Context) {
	var body types.GenerateRecipesBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeValidationError(c, "body", err)
		return
	}

	recipes, err := h.recipes.GenerateRecipes(c.Request.Context(), h.defaults.Request(body))
	if err != nil {
		writeError(c, h.log, "Failed to generate recipes", err)
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeResponse(recipes))
}
