package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipe-robot/backend/internal/database"
	"github.com/pageza/recipe-robot/backend/internal/model"
	"github.com/pageza/recipe-robot/backend/internal/testdb"
)

func TestPostgresFoodStore(t *testing.T) {
	pg := testdb.SetupPostgres(t)
	ctx := context.Background()

	db, err := database.New(pg.URL, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, database.Postgres, db.Dialect())
	assert.Empty(t, db.Path())
	require.NoError(t, db.HealthCheck(ctx))
	require.NoError(t, db.Recreate(ctx))

	store := database.NewFoodStore(db, 20, zap.NewNop())
	_, err = store.BulkLoad(ctx, []string{"Chicken Breast", "tomato", "100% rye flour", "rye bread"})
	require.NoError(t, err)

	foods, err := store.FindContaining(ctx, "chicken", 0)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Chicken Breast", foods[0].Name)

	foods, err = store.FindContaining(ctx, "0% r", 0)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "100% rye flour", foods[0].Name)

	require.NoError(t, store.Reset(ctx))

	// the table is gone once the store is reset
	again, err := database.New(pg.URL, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, again.Migrator().HasTable(&model.Food{}))
	require.NoError(t, again.Reset(ctx))
}
