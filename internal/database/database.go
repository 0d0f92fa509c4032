package database

import (
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/draperly/atelier-api/internal/config"
	"github.com/draperly/atelier-api/internal/domain"
)

// NewDatabase creates a new database connection
func NewDatabase(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.ConnectionString()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// HealthCheck pings the database
func HealthCheck(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Ping()
}

// HealthCheckWithStats pings the database and returns pool statistics
func HealthCheckWithStats(db *gorm.DB) (sql.DBStats, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return sql.DBStats{}, fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return sql.DBStats{}, err
	}
	return sqlDB.Stats(), nil
}

// AutoMigrate runs automatic migrations (for development only)
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Profile{},
		&domain.DocumentSequence{},
		&domain.Customer{},
		&domain.CorporateCustomer{},
		&domain.Referrer{},
		&domain.Store{},
		&domain.ProductCategory{},
		&domain.Product{},
		&domain.ProductPriceTier{},
		&domain.Project{},
		&domain.ProjectLocation{},
		&domain.LocationWindow{},
		&domain.MeasurementBill{},
		&domain.MeasurementItem{},
		&domain.SpecSheet{},
		&domain.SpecSheetItem{},
		&domain.Quotation{},
		&domain.QuotationItem{},
		&domain.InventoryItem{},
		&domain.PurchaseOrder{},
		&domain.PurchaseOrderItem{},
		&domain.AccountingDoc{},
		&domain.MarketingCampaign{},
		&domain.MarketingTask{},
		&domain.MarketingExpense{},
		&domain.MarketingEvaluation{},
	)
}
