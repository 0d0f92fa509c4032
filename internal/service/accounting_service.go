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
	"github.com/draperly/atelier-api/internal/pricing"
	"github.com/draperly/atelier-api/internal/repository"
)

// AccountingService manages invoices, receipts and expense records.
// Tax and grand total are derived from amount and rate on every write.
type AccountingService struct {
	accountingRepo *repository.AccountingRepository
	numbering      *NumberingService
	logger         *zap.Logger
}

func NewAccountingService(
	accountingRepo *repository.AccountingRepository,
	numbering *NumberingService,
	logger *zap.Logger,
) *AccountingService {
	return &AccountingService{
		accountingRepo: accountingRepo,
		numbering:      numbering,
		logger:         logger,
	}
}

func (s *AccountingService) Create(ctx context.Context, req *domain.CreateAccountingDocRequest) (*domain.AccountingDoc, error) {
	if !req.DocType.IsValid() {
		return nil, fmt.Errorf("%w: unknown document type %q", ErrInvalidInput, req.DocType)
	}

	doc := &domain.AccountingDoc{
		DocType:     req.DocType,
		Status:      domain.AccountingDocStatusDraft,
		CustomerID:  req.CustomerID,
		QuotationID: req.QuotationID,
		Title:       req.Title,
		Amount:      req.Amount,
		TaxRate:     req.TaxRate,
		TaxAmount:   pricing.Tax(req.Amount, req.TaxRate),
		GrandTotal:  pricing.GrandTotal(req.Amount, req.TaxRate),
		DueAt:       req.DueAt,
		Notes:       req.Notes,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		doc.CreatedBy = userCtx.DisplayName
	}

	var err error
	for attempt := 0; attempt < docNumberAttempts; attempt++ {
		doc.DocNumber = s.numbering.RandomDocNumber(req.DocType.NumberPrefix())
		err = s.accountingRepo.Create(ctx, doc)
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to create accounting document: %w", err)
		}
		s.logger.Warn("document number collision, retrying",
			zap.String("number", doc.DocNumber))
	}
	return nil, fmt.Errorf("failed to create accounting document after %d attempts: %w", docNumberAttempts, err)
}

func (s *AccountingService) GetByID(ctx context.Context, id uuid.UUID) (*domain.AccountingDoc, error) {
	doc, err := s.accountingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get accounting document: %w", err)
	}
	return doc, nil
}

func (s *AccountingService) Update(ctx context.Context, id uuid.UUID, req *domain.CreateAccountingDocRequest) (*domain.AccountingDoc, error) {
	doc, err := s.accountingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get accounting document: %w", err)
	}

	// Paid documents are frozen
	if doc.Status == domain.AccountingDocStatusPaid {
		return nil, ErrInvalidStatus
	}

	doc.CustomerID = req.CustomerID
	doc.QuotationID = req.QuotationID
	doc.Title = req.Title
	doc.Amount = req.Amount
	doc.TaxRate = req.TaxRate
	doc.TaxAmount = pricing.Tax(req.Amount, req.TaxRate)
	doc.GrandTotal = pricing.GrandTotal(req.Amount, req.TaxRate)
	doc.DueAt = req.DueAt
	doc.Notes = req.Notes
	doc.Customer = nil

	if err := s.accountingRepo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to update accounting document: %w", err)
	}

	return doc, nil
}

func (s *AccountingService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.accountingRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete accounting document: %w", err)
	}
	return nil
}

func (s *AccountingService) List(ctx context.Context, page, pageSize int, search string, docType domain.AccountingDocType, status domain.AccountingDocStatus, customerID *uuid.UUID) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePage(page, pageSize)

	docs, total, err := s.accountingRepo.List(ctx, page, pageSize, search, docType, status, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounting documents: %w", err)
	}

	return paginated(docs, total, page, pageSize), nil
}

// UpdateStatus moves a document along its lifecycle. Marking paid stamps the
// payment time, marking issued stamps the issue time.
func (s *AccountingService) UpdateStatus(ctx context.Context, id uuid.UUID, req *domain.UpdateAccountingDocStatusRequest) (*domain.AccountingDoc, error) {
	doc, err := s.accountingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get accounting document: %w", err)
	}

	now := time.Now()
	switch req.Status {
	case domain.AccountingDocStatusIssued:
		if doc.Status != domain.AccountingDocStatusDraft {
			return nil, ErrInvalidStatus
		}
		doc.IssuedAt = &now
	case domain.AccountingDocStatusPaid:
		if doc.Status != domain.AccountingDocStatusIssued && doc.Status != domain.AccountingDocStatusOverdue {
			return nil, ErrInvalidStatus
		}
		doc.PaidAt = &now
	case domain.AccountingDocStatusOverdue:
		if doc.Status != domain.AccountingDocStatusIssued {
			return nil, ErrInvalidStatus
		}
	case domain.AccountingDocStatusDraft:
		return nil, ErrInvalidStatus
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	doc.Status = req.Status
	doc.Customer = nil

	if err := s.accountingRepo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to update document status: %w", err)
	}

	return doc, nil
}

// RefreshOverdue flags issued invoices whose due date has passed. Called on
// demand from the accounting views.
func (s *AccountingService) RefreshOverdue(ctx context.Context) (int, error) {
	candidates, err := s.accountingRepo.ListOverdueCandidates(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to list overdue candidates: %w", err)
	}

	flagged := 0
	for i := range candidates {
		doc := &candidates[i]
		doc.Status = domain.AccountingDocStatusOverdue
		doc.Customer = nil
		if err := s.accountingRepo.Update(ctx, doc); err != nil {
			return flagged, fmt.Errorf("failed to flag overdue document: %w", err)
		}
		flagged++
	}

	if flagged > 0 {
		s.logger.Info("invoices flagged overdue", zap.Int("count", flagged))
	}

	return flagged, nil
}
