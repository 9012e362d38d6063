package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-robot/backend/internal/types"
)

// MockRecipeGenerator is a mock implementation of the recipe generator
type MockRecipeGenerator struct {
	mock.Mock
}

// Generate mocks the Generate method
func (m *MockRecipeGenerator) Generate(ctx context.Context, prompt string) ([]types.Recipe, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Recipe), args.Error(1)
}

// Available mocks the Available method
func (m *MockRecipeGenerator) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// GenerateRecipes mocks the GenerateRecipes method
func (m *MockRecipeService) GenerateRecipes(ctx context.Context, req types.RecipeRequest) ([]types.Recipe, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Recipe), args.Error(1)
}

// Available mocks the Available method
func (m *MockRecipeService) Available() bool {
	args := m.Called()
	return args.Bool(0)
}
