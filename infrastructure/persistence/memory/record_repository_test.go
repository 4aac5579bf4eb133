package memory

import (
	"context"
	"testing"

	"inventory-backend/domain/inventory"
	apperrors "inventory-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepository()

	older := inventory.Record{ID: "b", InventoryID: 7, CreatedAt: "2024-01-01T00:00:00.000Z"}
	newer := inventory.Record{ID: "a", InventoryID: 7, CreatedAt: "2024-02-01T00:00:00.000Z"}
	other := inventory.Record{ID: "c", InventoryID: 8, CreatedAt: "2024-01-15T00:00:00.000Z"}
	for _, r := range []inventory.Record{newer, older, other} {
		require.NoError(t, repo.Create(ctx, r))
	}

	t.Run("query orders by created_at", func(t *testing.T) {
		records, err := repo.QueryByInventoryID(ctx, 7)

		require.NoError(t, err)
		assert.Equal(t, []inventory.Record{older, newer}, records)
	})

	t.Run("query without match is empty not nil", func(t *testing.T) {
		records, err := repo.QueryByInventoryID(ctx, 42)

		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("scan", func(t *testing.T) {
		records, err := repo.Scan(ctx)

		require.NoError(t, err)
		assert.Equal(t, []inventory.Record{older, other, newer}, records)
	})

	t.Run("update returns the full record", func(t *testing.T) {
		quantity := float64(9)

		updated, err := repo.Update(ctx, "c", inventory.RecordUpdate{Quantity: &quantity})

		require.NoError(t, err)
		expected := other
		expected.Quantity = 9
		assert.Equal(t, expected, *updated)
	})

	t.Run("returned records are copies", func(t *testing.T) {
		got, err := repo.Get(ctx, "a")
		require.NoError(t, err)
		got.Price = 100

		again, err := repo.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, float64(0), again.Price)
	})

	t.Run("missing records", func(t *testing.T) {
		_, err := repo.Get(ctx, "zzz")
		assert.True(t, apperrors.IsNotFound(err))

		_, err = repo.Update(ctx, "zzz", inventory.RecordUpdate{})
		assert.True(t, apperrors.IsNotFound(err))

		assert.True(t, apperrors.IsNotFound(repo.Delete(ctx, "zzz")))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "b"))

		_, err := repo.Get(ctx, "b")
		assert.True(t, apperrors.IsNotFound(err))
	})
}
