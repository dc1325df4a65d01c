package persistence

import (
	"context"
	"testing"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/cart"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormLineRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormLineRepository(db)
	clientID := uuid.New()
	productID := uuid.New()

	line, err := cart.NewLine(clientID, productID, 2)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, line))

	t.Run("by client", func(t *testing.T) {
		lines, err := repo.FindByClient(ctx, clientID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, line.ID, lines[0].ID)
		assert.EqualValues(t, 2, lines[0].Quantity)
	})

	t.Run("by client and product", func(t *testing.T) {
		lines, err := repo.FindByClientAndProduct(ctx, clientID, productID)
		require.NoError(t, err)
		assert.Len(t, lines, 1)
	})

	t.Run("other client sees nothing", func(t *testing.T) {
		lines, err := repo.FindByClient(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}

func TestGormLineRepository_SaveWithLock(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the new version", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormLineRepository(db)

		line, err := cart.NewLine(uuid.New(), uuid.New(), 1)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, line))

		require.NoError(t, line.IncreaseQuantity(2))
		require.NoError(t, repo.SaveWithLock(ctx, line))

		stored, err := repo.FindByClient(ctx, line.ClientID)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.EqualValues(t, 3, stored[0].Quantity)
		assert.Equal(t, line.Version, stored[0].Version)
	})

	t.Run("rejects a stale version", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormLineRepository(db)

		line, err := cart.NewLine(uuid.New(), uuid.New(), 1)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, line))

		// Another writer commits first.
		winner := *line
		require.NoError(t, winner.IncreaseQuantity(1))
		require.NoError(t, repo.SaveWithLock(ctx, &winner))

		loser := *line
		require.NoError(t, loser.IncreaseQuantity(5))
		err = repo.SaveWithLock(ctx, &loser)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		stored, err := repo.FindByClient(ctx, line.ClientID)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.EqualValues(t, 2, stored[0].Quantity, "the first writer's update must stand")
	})

	t.Run("unknown line conflicts", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormLineRepository(db)

		line, err := cart.NewLine(uuid.New(), uuid.New(), 1)
		require.NoError(t, err)
		require.NoError(t, line.IncreaseQuantity(1))

		assert.ErrorIs(t, repo.SaveWithLock(ctx, line), shared.ErrConcurrencyConflict)
	})
}

func TestGormLineRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormLineRepository(db)
	clientID := uuid.New()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		line, err := cart.NewLine(clientID, uuid.New(), 1)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, line))
		ids = append(ids, line.ID)
	}

	t.Run("single line", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, ids[0]))
		assert.ErrorIs(t, repo.Delete(ctx, ids[0]), shared.ErrNotFound)
	})

	t.Run("by IDs", func(t *testing.T) {
		require.NoError(t, repo.DeleteByIDs(ctx, ids[1:2]))
		lines, err := repo.FindByClient(ctx, clientID)
		require.NoError(t, err)
		assert.Len(t, lines, 1)
	})

	t.Run("by client", func(t *testing.T) {
		require.NoError(t, repo.DeleteByClient(ctx, clientID))
		lines, err := repo.FindByClient(ctx, clientID)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}
