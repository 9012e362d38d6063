package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/recipe-robot/backend/internal/metrics"
	"github.com/pageza/recipe-robot/backend/internal/types"
)

// RecipeService validates recipe requests and forwards them to the generator
type RecipeService struct {
	generator RecipeGenerator
	metrics   *metrics.Collector
	log       *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(generator RecipeGenerator, m *metrics.Collector, log *zap.Logger) *RecipeService {
	return &RecipeService{
		generator: generator,
		metrics:   m,
		log:       log.Named("recipe-service"),
	}
}

// Available reports whether recipes can be generated
func (s *RecipeService) Available() bool {
	return s.generator.Available()
}

// GenerateRecipes builds the prompt for req and returns the generator's
// recipes unmodified. Nothing is retried.
func (s *RecipeService) GenerateRecipes(ctx context.Context, req types.RecipeRequest) ([]types.Recipe, error) {
	if len(req.Ingredients) == 0 {
		s.metrics.RecipeGeneration(metrics.OutcomeInvalid)
		return nil, NewError(ErrInvalidRequest, "At least one ingredient is required.", nil)
	}

	prompt, err := BuildRecipePrompt(req)
	if err != nil {
		s.metrics.RecipeGeneration(metrics.OutcomeInvalid)
		return nil, NewError(ErrInvalidRequest, "Invalid recipe request", err)
	}

	start := time.Now()
	recipes, err := s.generator.Generate(ctx, prompt)
	s.metrics.ObserveGeneration(time.Since(start))
	if err != nil {
		s.metrics.RecipeGeneration(metrics.OutcomeUpstreamError)
		s.log.Error("Recipe generation failed",
			zap.Int("ingredients", len(req.Ingredients)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, NewError(ErrUpstream, "Recipe generation failed", err)
	}

	s.metrics.RecipeGeneration(metrics.OutcomeSuccess)
	s.log.Info("Generated recipes", zap.Int("count", len(recipes)), zap.Duration("elapsed", time.Since(start)))
	return recipes, nil
}
