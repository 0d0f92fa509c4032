package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/repository"
)

func newInventoryService(t *testing.T) *InventoryService {
	t.Helper()
	db := openServiceDB(t)
	return NewInventoryService(repository.NewInventoryRepository(db), zap.NewNop())
}

func TestAdjustStock(t *testing.T) {
	svc := newInventoryService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, &domain.CreateInventoryItemRequest{
		Name:     "Blackout fabric, grey",
		Unit:     "m",
		Quantity: 40,
	})
	require.NoError(t, err)

	adjusted, err := svc.AdjustStock(ctx, item.ID, &domain.AdjustStockRequest{Delta: -15})
	require.NoError(t, err)
	assert.Equal(t, 25.0, adjusted.Quantity)

	adjusted, err = svc.AdjustStock(ctx, item.ID, &domain.AdjustStockRequest{Delta: 10})
	require.NoError(t, err)
	assert.Equal(t, 35.0, adjusted.Quantity)
}

func TestAdjustStock_RejectsNegativeResult(t *testing.T) {
	svc := newInventoryService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, &domain.CreateInventoryItemRequest{
		Name:     "Curtain rail 3m",
		Quantity: 5,
	})
	require.NoError(t, err)

	_, err = svc.AdjustStock(ctx, item.ID, &domain.AdjustStockRequest{Delta: -6})
	assert.ErrorIs(t, err, ErrInvalidInput)

	reloaded, err := svc.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, reloaded.Quantity)
}

func TestListLowStock(t *testing.T) {
	svc := newInventoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateInventoryItemRequest{
		Name:     "Sheer fabric, white",
		Quantity: 2,
		MinQty:   10,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.CreateInventoryItemRequest{
		Name:     "Hooks, pack of 100",
		Quantity: 50,
		MinQty:   10,
	})
	require.NoError(t, err)
	// zero minimum disables the check
	_, err = svc.Create(ctx, &domain.CreateInventoryItemRequest{
		Name:     "Sample book",
		Quantity: 0,
	})
	require.NoError(t, err)

	low, err := svc.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Sheer fabric, white", low[0].Name)
}
