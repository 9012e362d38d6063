package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-robot/backend/internal/model"
)

// MockFoodFinder is a mock implementation of the ingredient store
type MockFoodFinder struct {
	mock.Mock
}

// FindContaining mocks the FindContaining method
func (m *MockFoodFinder) FindContaining(ctx context.Context, substring string, limit int) ([]model.Food, error) {
	args := m.Called(ctx, substring, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Food), args.Error(1)
}

// MockFoodService is a mock implementation of the food service
type MockFoodService struct {
	mock.Mock
}

// Search mocks the Search method
func (m *MockFoodService) Search(ctx context.Context, query string) ([]model.Food, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Food), args.Error(1)
}
