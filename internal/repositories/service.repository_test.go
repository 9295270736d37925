package repositories_test

import (
	"context"
	"errors"
	"testing"

	"carwash/internal/repositories"
	"carwash/internal/testutil"
	"carwash/internal/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceRepository_WithoutCache(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewServiceRepository(db)
	ctx := context.Background()

	wash := testutil.CreateService(t, db.SQL, "Exterior", "weekly-once")

	found, err := repo.GetByID(ctx, db.SQL, wash.ID)
	require.NoError(t, err)
	assert.Equal(t, "weekly-once", found.Frequency)
	assert.Equal(t, "25", found.Price.String())

	byName, err := repo.GetByName(ctx, db.SQL, "Exterior")
	require.NoError(t, err)
	assert.Equal(t, wash.ID, byName.ID)

	found.Frequency = "daily"
	require.NoError(t, repo.Update(ctx, db.SQL, found))

	services, err := repo.List(ctx, db.SQL)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "daily", services[0].Frequency)

	_, err = repo.GetByID(ctx, db.SQL, uuid.New())
	assert.True(t, errors.Is(err, types.ErrNotFound))
}
