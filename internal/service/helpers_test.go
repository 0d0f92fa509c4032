package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/database"
	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/testutil"
)

func openServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.OpenTestDB(t)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// testNumbering builds a NumberingService backed by an in-memory counter so
// tests do not depend on the row-locked sequence table
func testNumbering() *NumberingService {
	return NewNumberingService(&fakeSequenceStore{}, zap.NewNop())
}

func seedCustomer(t *testing.T, db *gorm.DB) *domain.Customer {
	t.Helper()
	customer := &domain.Customer{
		Name:  "Khun Somchai",
		Phone: "0812345678",
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func seedProject(t *testing.T, db *gorm.DB, customer *domain.Customer) *domain.Project {
	t.Helper()
	project := &domain.Project{
		ProjectNumber: "PJ2505" + uuid.NewString()[:3],
		Name:          "Sukhumvit Condo",
		Status:        domain.ProjectStatusPlanning,
	}
	if customer != nil {
		project.CustomerID = &customer.ID
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func seedBill(t *testing.T, db *gorm.DB, project *domain.Project) *domain.MeasurementBill {
	t.Helper()
	bill := &domain.MeasurementBill{
		BillNumber: "MB2505-" + uuid.NewString()[:4],
		ProjectID:  project.ID,
		CustomerID: project.CustomerID,
		Mode:       domain.MeasureModeCurtain,
		Status:     domain.BillStatusDraft,
	}
	require.NoError(t, db.Create(bill).Error)
	return bill
}

func seedCategory(t *testing.T, db *gorm.DB, name string, method domain.CalcMethod) *domain.ProductCategory {
	t.Helper()
	category := &domain.ProductCategory{
		Name:       name,
		CalcMethod: method,
		IsActive:   true,
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedMeasurementItem(t *testing.T, db *gorm.DB, billID uuid.UUID, location string, categoryID *uuid.UUID, width, height float64) *domain.MeasurementItem {
	t.Helper()
	item := &domain.MeasurementItem{
		BillID:       billID,
		LocationName: location,
		CategoryID:   categoryID,
		Details: domain.MeasurementDetails{
			SchemaVersion: domain.DetailsSchemaVersion,
			Order:         domain.OrderSize{Width: width, Height: height},
		},
	}
	require.NoError(t, db.Create(item).Error)
	return item
}
