package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/draperly/atelier-api/docs"
	"github.com/draperly/atelier-api/internal/auth"
	"github.com/draperly/atelier-api/internal/config"
	"github.com/draperly/atelier-api/internal/database"
	"github.com/draperly/atelier-api/internal/http/handler"
	"github.com/draperly/atelier-api/internal/http/middleware"
	"github.com/draperly/atelier-api/internal/http/router"
	"github.com/draperly/atelier-api/internal/logger"
	"github.com/draperly/atelier-api/internal/repository"
	"github.com/draperly/atelier-api/internal/service"
	"github.com/draperly/atelier-api/internal/storage"
	"github.com/draperly/atelier-api/internal/warehouse"
)

// @title Draperly Atelier API
// @version 1.0
// @description Back-office API for curtain and interior decoration projects: customers, measurements, quotations, inventory and marketing

// @contact.name API Support
// @contact.email support@draperly.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "staging-api.draperly.app"
	case "production":
		docs.SwaggerInfo.Host = "api.draperly.app"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Full configuration, with secrets from the vault outside development
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Optional read-only sales warehouse, used for campaign actuals.
	// A nil client is a valid deployment mode.
	warehouseClient, err := warehouse.NewClient(&cfg.Warehouse, log)
	if err != nil {
		log.Warn("Sales warehouse connection failed, continuing without it", zap.Error(err))
		warehouseClient = nil
	}

	// Repositories
	profileRepo := repository.NewProfileRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	corporateRepo := repository.NewCorporateRepository(db)
	referrerRepo := repository.NewReferrerRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	measurementRepo := repository.NewMeasurementRepository(db)
	specSheetRepo := repository.NewSpecSheetRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	purchaseOrderRepo := repository.NewPurchaseOrderRepository(db)
	accountingRepo := repository.NewAccountingRepository(db)
	marketingRepo := repository.NewMarketingRepository(db)

	// Services
	tokenIssuer := auth.NewTokenIssuer(&cfg.Auth)
	numbering := service.NewNumberingService(sequenceRepo, log)

	authService := service.NewAuthService(profileRepo, tokenIssuer, log)
	profileService := service.NewProfileService(profileRepo, log)
	customerService := service.NewCustomerService(customerRepo, corporateRepo, log)
	partnerService := service.NewPartnerService(referrerRepo, storeRepo, log)
	catalogService := service.NewCatalogService(categoryRepo, productRepo, log)
	projectService := service.NewProjectService(projectRepo, numbering, fileStorage, log)
	measurementService := service.NewMeasurementService(measurementRepo, projectRepo, numbering, log)
	specSheetService := service.NewSpecSheetService(specSheetRepo, measurementRepo, productRepo, log)
	quotationService := service.NewQuotationService(quotationRepo, specSheetRepo, measurementRepo, productRepo, categoryRepo, numbering, log)
	inventoryService := service.NewInventoryService(inventoryRepo, log)
	purchaseOrderService := service.NewPurchaseOrderService(purchaseOrderRepo, numbering, log)
	accountingService := service.NewAccountingService(accountingRepo, numbering, log)
	marketingService := service.NewMarketingService(marketingRepo, warehouseClient, log)
	dashboardService := service.NewDashboardService(projectRepo, measurementRepo, quotationRepo, accountingRepo, inventoryRepo, marketingRepo, customerRepo, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(tokenIssuer, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, log)
	profileHandler := handler.NewProfileHandler(profileService, log)
	customerHandler := handler.NewCustomerHandler(customerService, log)
	partnerHandler := handler.NewPartnerHandler(partnerService, log)
	catalogHandler := handler.NewCatalogHandler(catalogService, log)
	projectHandler := handler.NewProjectHandler(projectService, log)
	measurementHandler := handler.NewMeasurementHandler(measurementService, log)
	specSheetHandler := handler.NewSpecSheetHandler(specSheetService, log)
	quotationHandler := handler.NewQuotationHandler(quotationService, log)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, log)
	purchaseOrderHandler := handler.NewPurchaseOrderHandler(purchaseOrderService, log)
	accountingHandler := handler.NewAccountingHandler(accountingService, log)
	marketingHandler := handler.NewMarketingHandler(marketingService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		warehouseClient,
		authMiddleware,
		rateLimiter,
		authHandler,
		profileHandler,
		customerHandler,
		partnerHandler,
		catalogHandler,
		projectHandler,
		measurementHandler,
		specSheetHandler,
		quotationHandler,
		inventoryHandler,
		purchaseOrderHandler,
		accountingHandler,
		marketingHandler,
		dashboardHandler,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if warehouseClient != nil {
			if err := warehouseClient.Close(); err != nil {
				log.Warn("Error closing warehouse connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
