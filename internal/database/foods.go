package database

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipe-robot/backend/internal/model"
)

const insertBatchSize = 500

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// FoodStore holds ingredient names and answers substring queries
type FoodStore struct {
	db         *DB
	maxResults int
	log        *zap.Logger
}

// NewFoodStore creates a store over db. maxResults caps FindContaining when
// the caller passes no limit.
func NewFoodStore(db *DB, maxResults int, log *zap.Logger) *FoodStore {
	return &FoodStore{
		db:         db,
		maxResults: maxResults,
		log:        log.Named("food-store"),
	}
}

// BulkLoad inserts one Food per non-blank name in a single transaction and
// returns how many rows were written
func (s *FoodStore) BulkLoad(ctx context.Context, names []string) (int, error) {
	foods := make([]model.Food, 0, len(names))
	skipped := 0
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			skipped++
			continue
		}
		foods = append(foods, model.Food{Name: name})
	}
	if skipped > 0 {
		s.log.Warn("Skipped blank ingredient names", zap.Int("count", skipped))
	}
	if len(foods) == 0 {
		s.log.Info("Imported 0 ingredients")
		return 0, nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&foods, insertBatchSize).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import ingredients: %w", err)
	}

	s.log.Info(fmt.Sprintf("Imported %d ingredients", len(foods)))
	return len(foods), nil
}

// FindContaining returns up to limit foods whose name contains substring,
// ignoring case, in id order. LIKE wildcards in substring match literally.
func (s *FoodStore) FindContaining(ctx context.Context, substring string, limit int) ([]model.Food, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	pattern := "%" + likeEscaper.Replace(substring) + "%"
	foods := []model.Food{}
	err := s.db.WithContext(ctx).
		Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\'`, pattern).
		Order("id ASC").
		Limit(limit).
		Find(&foods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	return foods, nil
}

// Count returns the number of stored foods
func (s *FoodStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Food{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count foods: %w", err)
	}
	return n, nil
}

// Ping reports whether the storage behind the store is reachable
func (s *FoodStore) Ping(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}

// Reset discards every food and releases the storage behind the store
func (s *FoodStore) Reset(ctx context.Context) error {
	return s.db.Reset(ctx)
}
