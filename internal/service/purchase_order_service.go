package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/auth"
	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/repository"
)

// PurchaseOrderService manages restocking orders. Receiving an order applies
// its line quantities to the linked inventory items.
type PurchaseOrderService struct {
	orderRepo *repository.PurchaseOrderRepository
	numbering *NumberingService
	logger    *zap.Logger
}

func NewPurchaseOrderService(
	orderRepo *repository.PurchaseOrderRepository,
	numbering *NumberingService,
	logger *zap.Logger,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo: orderRepo,
		numbering: numbering,
		logger:    logger,
	}
}

func (s *PurchaseOrderService) Create(ctx context.Context, req *domain.CreatePurchaseOrderRequest) (*domain.PurchaseOrder, error) {
	order := &domain.PurchaseOrder{
		Supplier: req.Supplier,
		Status:   domain.PurchaseOrderStatusDraft,
		Notes:    req.Notes,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		order.CreatedBy = userCtx.DisplayName
	}

	for _, line := range req.Items {
		item := domain.PurchaseOrderItem{
			InventoryID: line.InventoryID,
			Name:        line.Name,
			Quantity:    line.Quantity,
			Unit:        line.Unit,
			UnitPrice:   line.UnitPrice,
			TotalPrice:  line.Quantity * line.UnitPrice,
		}
		order.Items = append(order.Items, item)
		order.Total += item.TotalPrice
	}

	var err error
	for attempt := 0; attempt < docNumberAttempts; attempt++ {
		order.OrderNumber = s.numbering.RandomDocNumber("PO")
		err = s.orderRepo.Create(ctx, order)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to create purchase order: %w", err)
		}
		s.logger.Warn("purchase order number collision, retrying",
			zap.String("number", order.OrderNumber))
	}
	return nil, fmt.Errorf("failed to create purchase order after %d attempts: %w", docNumberAttempts, err)
}

func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}
	return order, nil
}

func (s *PurchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get purchase order: %w", err)
	}
	// A received order already moved stock and stays on record
	if order.Status == domain.PurchaseOrderStatusReceived {
		return ErrInvalidStatus
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete purchase order: %w", err)
	}
	return nil
}

func (s *PurchaseOrderService) List(ctx context.Context, page, pageSize int, search string, status domain.PurchaseOrderStatus) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePage(page, pageSize)

	orders, total, err := s.orderRepo.List(ctx, page, pageSize, search, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase orders: %w", err)
	}

	return paginated(orders, total, page, pageSize), nil
}

// MarkOrdered moves a draft order to ordered
func (s *PurchaseOrderService) MarkOrdered(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}
	if order.Status != domain.PurchaseOrderStatusDraft {
		return nil, ErrInvalidStatus
	}

	now := time.Now()
	order.Status = domain.PurchaseOrderStatusOrdered
	order.OrderedAt = &now
	items := order.Items
	order.Items = nil

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to mark ordered: %w", err)
	}

	order.Items = items
	return order, nil
}

// Receive marks the order received and restocks linked inventory items
func (s *PurchaseOrderService) Receive(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}
	if order.Status != domain.PurchaseOrderStatusOrdered {
		return nil, ErrInvalidStatus
	}

	now := time.Now()
	order.Status = domain.PurchaseOrderStatusReceived
	order.ReceivedAt = &now

	if err := s.orderRepo.ReceiveInTx(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to receive purchase order: %w", err)
	}

	s.logger.Info("purchase order received",
		zap.String("orderID", order.ID.String()),
		zap.String("number", order.OrderNumber),
		zap.Int("lines", len(order.Items)))

	return order, nil
}
