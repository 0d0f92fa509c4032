package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/domain"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Corporate").
		Preload("Locations", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Preload("Locations.Windows", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) GetByNumber(ctx context.Context, projectNumber string) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).
		Where("project_number = ?", projectNumber).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Project{}, "id = ?", id).Error
}

func (r *ProjectRepository) List(ctx context.Context, page, pageSize int, search string, status domain.ProjectStatus, customerID *uuid.UUID) ([]domain.Project, int64, error) {
	var projects []domain.Project
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Project{})

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}
	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(project_number) LIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Customer").
		Scopes(Paginate(page, pageSize)).
		Order("created_at DESC").
		Find(&projects).Error

	return projects, total, err
}

func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Project{}).Count(&count).Error
	return int(count), err
}

func (r *ProjectRepository) CountByStatus(ctx context.Context, status domain.ProjectStatus) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Project{}).Where("status = ?", status).Count(&count).Error
	return int(count), err
}

// Locations

func (r *ProjectRepository) CreateLocation(ctx context.Context, location *domain.ProjectLocation) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *ProjectRepository) GetLocationByID(ctx context.Context, id uuid.UUID) (*domain.ProjectLocation, error) {
	var location domain.ProjectLocation
	err := r.db.WithContext(ctx).
		Preload("Windows", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Where("id = ?", id).
		First(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *ProjectRepository) UpdateLocation(ctx context.Context, location *domain.ProjectLocation) error {
	return r.db.WithContext(ctx).Save(location).Error
}

func (r *ProjectRepository) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ProjectLocation{}, "id = ?", id).Error
}

// Windows

func (r *ProjectRepository) CreateWindow(ctx context.Context, window *domain.LocationWindow) error {
	return r.db.WithContext(ctx).Create(window).Error
}

func (r *ProjectRepository) GetWindowByID(ctx context.Context, id uuid.UUID) (*domain.LocationWindow, error) {
	var window domain.LocationWindow
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&window).Error
	if err != nil {
		return nil, err
	}
	return &window, nil
}

func (r *ProjectRepository) UpdateWindow(ctx context.Context, window *domain.LocationWindow) error {
	return r.db.WithContext(ctx).Save(window).Error
}

func (r *ProjectRepository) DeleteWindow(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.LocationWindow{}, "id = ?", id).Error
}
