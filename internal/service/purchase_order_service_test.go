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

func newPurchaseOrderService(t *testing.T) (*PurchaseOrderService, *InventoryService) {
	t.Helper()
	db := openServiceDB(t)
	orderSvc := NewPurchaseOrderService(repository.NewPurchaseOrderRepository(db), testNumbering(), zap.NewNop())
	inventorySvc := NewInventoryService(repository.NewInventoryRepository(db), zap.NewNop())
	return orderSvc, inventorySvc
}

func TestCreatePurchaseOrder_TotalsLines(t *testing.T) {
	svc, _ := newPurchaseOrderService(t)

	order, err := svc.Create(context.Background(), &domain.CreatePurchaseOrderRequest{
		Supplier: "Thai Textile Co",
		Items: []domain.CreatePurchaseOrderItemRequest{
			{Name: "Blackout fabric, grey", Quantity: 30, Unit: "m", UnitPrice: 120},
			{Name: "Curtain rail 3m", Quantity: 10, UnitPrice: 450},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PurchaseOrderStatusDraft, order.Status)
	assert.Contains(t, order.OrderNumber, "PO-")
	require.Len(t, order.Items, 2)
	assert.Equal(t, 3600.0, order.Items[0].TotalPrice)
	assert.Equal(t, 8100.0, order.Total)
}

func TestReceive_RestocksLinkedItems(t *testing.T) {
	svc, inventorySvc := newPurchaseOrderService(t)
	ctx := context.Background()

	stock, err := inventorySvc.Create(ctx, &domain.CreateInventoryItemRequest{
		Name:     "Blackout fabric, grey",
		Unit:     "m",
		Quantity: 5,
	})
	require.NoError(t, err)

	order, err := svc.Create(ctx, &domain.CreatePurchaseOrderRequest{
		Supplier: "Thai Textile Co",
		Items: []domain.CreatePurchaseOrderItemRequest{
			{InventoryID: &stock.ID, Name: stock.Name, Quantity: 30, Unit: "m", UnitPrice: 120},
			{Name: "Packing tape", Quantity: 2, UnitPrice: 35},
		},
	})
	require.NoError(t, err)

	// receiving a draft order is not allowed
	_, err = svc.Receive(ctx, order.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	ordered, err := svc.MarkOrdered(ctx, order.ID)
	require.NoError(t, err)
	assert.NotNil(t, ordered.OrderedAt)

	received, err := svc.Receive(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseOrderStatusReceived, received.Status)
	assert.NotNil(t, received.ReceivedAt)

	restocked, err := inventorySvc.GetByID(ctx, stock.ID)
	require.NoError(t, err)
	assert.Equal(t, 35.0, restocked.Quantity)

	// receiving twice must not move stock again
	_, err = svc.Receive(ctx, order.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// a received order stays on record
	err = svc.Delete(ctx, order.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
