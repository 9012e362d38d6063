package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pageza/recipe-robot/backend/internal/types"
)

// BuildRecipePrompt renders the instruction sent to the recipe generator.
// Ingredient text is inserted as given.
func BuildRecipePrompt(req types.RecipeRequest) (string, error) {
	if len(req.Ingredients) == 0 {
		return "", errors.New("no ingredients given")
	}
	if req.MaxRecipes < 1 {
		return "", fmt.Errorf("max_recipes must be at least 1, got %d", req.MaxRecipes)
	}

	var cuisine string
	if req.CuisineStyle != "" && req.CuisineStyle != types.DefaultCuisineStyle {
		cuisine = " in the style of " + req.CuisineStyle + " cuisine"
	}

	return fmt.Sprintf("Suggest and provide up to %d recipes%s that use the following ingredients: %s.",
		req.MaxRecipes, cuisine, strings.Join(req.Ingredients, ", ")), nil
}
