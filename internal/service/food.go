package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pageza/recipe-robot/backend/internal/metrics"
	"github.com/pageza/recipe-robot/backend/internal/model"
)

// FoodService validates search terms and queries the ingredient store
type FoodService struct {
	store      FoodFinder
	minLength  int
	maxResults int
	metrics    *metrics.Collector
	log        *zap.Logger
}

// NewFoodService creates a new FoodService instance
func NewFoodService(store FoodFinder, minLength, maxResults int, m *metrics.Collector, log *zap.Logger) *FoodService {
	return &FoodService{
		store:      store,
		minLength:  minLength,
		maxResults: maxResults,
		metrics:    m,
		log:        log.Named("food-service"),
	}
}

// Search returns up to maxResults foods whose name contains query. Only the
// length check trims; the store sees query as given.
func (s *FoodService) Search(ctx context.Context, query string) ([]model.Food, error) {
	if utf8.RuneCountInString(strings.TrimSpace(query)) < s.minLength {
		s.metrics.FoodSearch(metrics.OutcomeInvalid)
		return nil, NewError(ErrInvalidQuery, fmt.Sprintf("Enter at least %d characters to search", s.minLength), nil)
	}

	foods, err := s.store.FindContaining(ctx, query, s.maxResults)
	if err != nil {
		s.metrics.FoodSearch(metrics.OutcomeUpstreamError)
		s.log.Error("Food search failed", zap.String("query", query), zap.Error(err))
		return nil, NewError(ErrUpstream, "Food search failed", err)
	}

	s.metrics.FoodSearch(metrics.OutcomeSuccess)
	return foods, nil
}
