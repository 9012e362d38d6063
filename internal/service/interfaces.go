package service

import (
	"context"

	"github.com/pageza/recipe-robot/backend/internal/model"
	"github.com/pageza/recipe-robot/backend/internal/types"
)

// FoodFinder is the storage the food lookup reads from
type FoodFinder interface {
	FindContaining(ctx context.Context, substring string, limit int) ([]model.Food, error)
}

// RecipeGenerator turns a prompt into recipes
type RecipeGenerator interface {
	Generate(ctx context.Context, prompt string) ([]types.Recipe, error)
	// Available reports whether a credential is configured
	Available() bool
}

// IFoodService defines the interface for ingredient lookups
type IFoodService interface {
	Search(ctx context.Context, query string) ([]model.Food, error)
}

// IRecipeService defines the interface for recipe generation
type IRecipeService interface {
	GenerateRecipes(ctx context.Context, req types.RecipeRequest) ([]types.Recipe, error)
	Available() bool
}
