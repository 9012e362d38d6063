package types

const (
	// DefaultMaxRecipes is used when a request does not say how many recipes it wants
	DefaultMaxRecipes = 3
	// DefaultCuisineStyle means no cuisine preference
	DefaultCuisineStyle = "any"
)

// Recipe is one suggestion returned by the generation service
type Recipe struct {
	RecipeName   string   `json:"recipe_name"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
}

// RecipeRequest describes what the caller wants generated
type RecipeRequest struct {
	Ingredients  []string `json:"ingredients"`
	MaxRecipes   int      `json:"max_recipes"`
	CuisineStyle string   `json:"cuisine_style"`
}

// NewRecipeRequest builds a request with the default recipe count and cuisine
func NewRecipeRequest(ingredients ...string) RecipeRequest {
	return DefaultRecipeDefaults().Request(GenerateRecipesBody{Ingredients: ingredients})
}

// GenerateRecipesBody is the wire form of a generation request. Optional
// fields are pointers so an absent field can be told apart from a zero value.
type GenerateRecipesBody struct {
	Ingredients  []string `json:"ingredients" binding:"required"`
	MaxRecipes   *int     `json:"max_recipes" binding:"omitempty,gte=1"`
	CuisineStyle *string  `json:"cuisine_style"`
}

// RecipeDefaults fills the optional fields of a generation request
type RecipeDefaults struct {
	MaxRecipes   int
	CuisineStyle string
}

// DefaultRecipeDefaults returns the built-in defaults
func DefaultRecipeDefaults() RecipeDefaults {
	return RecipeDefaults{MaxRecipes: DefaultMaxRecipes, CuisineStyle: DefaultCuisineStyle}
}

// Request turns a decoded body into a RecipeRequest
func (d RecipeDefaults) Request(body GenerateRecipesBody) RecipeRequest {
	req := RecipeRequest{
		Ingredients:  body.Ingredients,
		MaxRecipes:   d.MaxRecipes,
		CuisineStyle: d.CuisineStyle,
	}
	if body.MaxRecipes != nil {
		req.MaxRecipes = *body.MaxRecipes
	}
	if body.CuisineStyle != nil {
		req.CuisineStyle = *body.CuisineStyle
	}
	return req
}

// RecipeResponse wraps the generated recipes
type RecipeResponse struct {
	Recipes []Recipe `json:"recipes"`
}

// NewRecipeResponse never encodes recipes as null
func NewRecipeResponse(recipes []Recipe) RecipeResponse {
	if recipes == nil {
		recipes = []Recipe{}
	}
	return RecipeResponse{Recipes: recipes}
}
