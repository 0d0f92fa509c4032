package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/auth"
	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/repository"
	"github.com/draperly/atelier-api/internal/storage"
)

// ProjectService manages projects, their room hierarchy and window photos
type ProjectService struct {
	projectRepo *repository.ProjectRepository
	numbering   *NumberingService
	storage     storage.Storage
	logger      *zap.Logger
}

func NewProjectService(
	projectRepo *repository.ProjectRepository,
	numbering *NumberingService,
	store storage.Storage,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		numbering:   numbering,
		storage:     store,
		logger:      logger,
	}
}

// Create generates the project number and persists the project
func (s *ProjectService) Create(ctx context.Context, req *domain.CreateProjectRequest) (*domain.Project, error) {
	number, err := s.numbering.ProjectNumber(ctx)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.ProjectStatusPlanning
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown project status %q", ErrInvalidInput, status)
	}

	project := &domain.Project{
		ProjectNumber: number,
		Name:          req.Name,
		CustomerID:    req.CustomerID,
		CorporateID:   req.CorporateCustomerID,
		Status:        status,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Address:       req.Address,
		Notes:         req.Notes,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		project.CreatedBy = userCtx.DisplayName
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("project created",
		zap.String("projectID", project.ID.String()),
		zap.String("number", project.ProjectNumber))

	return project, nil
}

func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateProjectRequest) (*domain.Project, error) {
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown project status %q", ErrInvalidInput, req.Status)
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	project.Name = req.Name
	project.CustomerID = req.CustomerID
	project.CorporateID = req.CorporateCustomerID
	project.Status = req.Status
	project.StartDate = req.StartDate
	project.EndDate = req.EndDate
	project.Address = req.Address
	project.Notes = req.Notes
	project.Customer = nil
	project.Corporate = nil
	project.Locations = nil

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (s *ProjectService) List(ctx context.Context, page, pageSize int, search string, status domain.ProjectStatus, customerID *uuid.UUID) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePage(page, pageSize)

	projects, total, err := s.projectRepo.List(ctx, page, pageSize, search, status, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return paginated(projects, total, page, pageSize), nil
}

// Locations

func (s *ProjectService) AddLocation(ctx context.Context, projectID uuid.UUID, req *domain.CreateLocationRequest) (*domain.ProjectLocation, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	location := &domain.ProjectLocation{
		ProjectID: projectID,
		Floor:     req.Floor,
		Name:      req.Name,
		SortOrder: req.SortOrder,
	}

	if err := s.projectRepo.CreateLocation(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	return location, nil
}

func (s *ProjectService) UpdateLocation(ctx context.Context, id uuid.UUID, req *domain.CreateLocationRequest) (*domain.ProjectLocation, error) {
	location, err := s.projectRepo.GetLocationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	location.Floor = req.Floor
	location.Name = req.Name
	location.SortOrder = req.SortOrder
	location.Windows = nil

	if err := s.projectRepo.UpdateLocation(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}

	return s.projectRepo.GetLocationByID(ctx, id)
}

func (s *ProjectService) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	if err := s.projectRepo.DeleteLocation(ctx, id); err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	return nil
}

// Windows

func (s *ProjectService) AddWindow(ctx context.Context, locationID uuid.UUID, req *domain.CreateWindowRequest) (*domain.LocationWindow, error) {
	if _, err := s.projectRepo.GetLocationByID(ctx, locationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	kind := req.Kind
	if kind == "" {
		kind = domain.WindowKindWindow
	}

	window := &domain.LocationWindow{
		LocationID: locationID,
		Name:       req.Name,
		Kind:       kind,
		Notes:      req.Notes,
		SortOrder:  req.SortOrder,
	}

	if err := s.projectRepo.CreateWindow(ctx, window); err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	return window, nil
}

func (s *ProjectService) UpdateWindow(ctx context.Context, id uuid.UUID, req *domain.CreateWindowRequest) (*domain.LocationWindow, error) {
	window, err := s.projectRepo.GetWindowByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get window: %w", err)
	}

	window.Name = req.Name
	if req.Kind != "" {
		window.Kind = req.Kind
	}
	window.Notes = req.Notes
	window.SortOrder = req.SortOrder

	if err := s.projectRepo.UpdateWindow(ctx, window); err != nil {
		return nil, fmt.Errorf("failed to update window: %w", err)
	}

	return window, nil
}

func (s *ProjectService) DeleteWindow(ctx context.Context, id uuid.UUID) error {
	if err := s.projectRepo.DeleteWindow(ctx, id); err != nil {
		return fmt.Errorf("failed to delete window: %w", err)
	}
	return nil
}

// UploadWindowPhoto stores the photo and appends its public URL to the window
func (s *ProjectService) UploadWindowPhoto(ctx context.Context, windowID uuid.UUID, filename, contentType string, content io.Reader) (*domain.UploadResponse, error) {
	window, err := s.projectRepo.GetWindowByID(ctx, windowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get window: %w", err)
	}

	storagePath, size, err := s.storage.Upload(ctx, filename, contentType, content)
	if err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	url := s.storage.PublicURL(storagePath)
	window.PhotoURLs = append(window.PhotoURLs, url)

	if err := s.projectRepo.UpdateWindow(ctx, window); err != nil {
		return nil, fmt.Errorf("failed to attach photo: %w", err)
	}

	s.logger.Info("window photo uploaded",
		zap.String("windowID", windowID.String()),
		zap.String("path", storagePath),
		zap.Int64("size", size))

	return &domain.UploadResponse{
		URL:      url,
		Filename: path.Base(filename),
		Size:     size,
	}, nil
}
