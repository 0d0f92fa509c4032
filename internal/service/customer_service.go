package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/auth"
	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/repository"
)

// CustomerService manages individual and corporate customers
type CustomerService struct {
	customerRepo  *repository.CustomerRepository
	corporateRepo *repository.CorporateRepository
	logger        *zap.Logger
}

func NewCustomerService(
	customerRepo *repository.CustomerRepository,
	corporateRepo *repository.CorporateRepository,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo:  customerRepo,
		corporateRepo: corporateRepo,
		logger:        logger,
	}
}

func (s *CustomerService) Create(ctx context.Context, req *domain.CreateCustomerRequest) (*domain.Customer, error) {
	customer := &domain.Customer{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		LineID:     req.LineID,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		Notes:      req.Notes,
		ReferrerID: req.ReferrerID,
		StoreID:    req.StoreID,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		customer.CreatedBy = userCtx.DisplayName
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateCustomerRequest) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.LineID = req.LineID
	customer.Address = req.Address
	customer.City = req.City
	customer.PostalCode = req.PostalCode
	customer.Notes = req.Notes
	customer.ReferrerID = req.ReferrerID
	customer.StoreID = req.StoreID

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

func (s *CustomerService) List(ctx context.Context, page, pageSize int, search string) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePage(page, pageSize)

	customers, total, err := s.customerRepo.List(ctx, page, pageSize, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	return paginated(customers, total, page, pageSize), nil
}

func (s *CustomerService) Search(ctx context.Context, query string, limit int) ([]domain.Customer, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.customerRepo.Search(ctx, query, limit)
}

// Corporate customers

func (s *CustomerService) CreateCorporate(ctx context.Context, req *domain.CreateCorporateCustomerRequest) (*domain.CorporateCustomer, error) {
	corp := &domain.CorporateCustomer{
		CompanyName:   req.CompanyName,
		TaxID:         req.TaxID,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Notes:         req.Notes,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		corp.CreatedBy = userCtx.DisplayName
	}

	if err := s.corporateRepo.Create(ctx, corp); err != nil {
		return nil, fmt.Errorf("failed to create corporate customer: %w", err)
	}

	return corp, nil
}

func (s *CustomerService) GetCorporateByID(ctx context.Context, id uuid.UUID) (*domain.CorporateCustomer, error) {
	corp, err := s.corporateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get corporate customer: %w", err)
	}
	return corp, nil
}

func (s *CustomerService) UpdateCorporate(ctx context.Context, id uuid.UUID, req *domain.CreateCorporateCustomerRequest) (*domain.CorporateCustomer, error) {
	corp, err := s.corporateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get corporate customer: %w", err)
	}

	corp.CompanyName = req.CompanyName
	corp.TaxID = req.TaxID
	corp.ContactPerson = req.ContactPerson
	corp.Phone = req.Phone
	corp.Email = req.Email
	corp.Address = req.Address
	corp.Notes = req.Notes

	if err := s.corporateRepo.Update(ctx, corp); err != nil {
		return nil, fmt.Errorf("failed to update corporate customer: %w", err)
	}

	return corp, nil
}

func (s *CustomerService) DeleteCorporate(ctx context.Context, id uuid.UUID) error {
	if err := s.corporateRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete corporate customer: %w", err)
	}
	return nil
}

func (s *CustomerService) ListCorporate(ctx context.Context, page, pageSize int, search string) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePage(page, pageSize)

	corps, total, err := s.corporateRepo.List(ctx, page, pageSize, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list corporate customers: %w", err)
	}

	return paginated(corps, total, page, pageSize), nil
}
