package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/auth"
	"github.com/draperly/atelier-api/internal/config"
	"github.com/draperly/atelier-api/internal/database"
	"github.com/draperly/atelier-api/internal/http/handler"
	"github.com/draperly/atelier-api/internal/http/middleware"
	"github.com/draperly/atelier-api/internal/warehouse"

	_ "github.com/draperly/atelier-api/docs" // generated swagger docs
)

type Router struct {
	cfg                  *config.Config
	logger               *zap.Logger
	db                   *gorm.DB
	warehouseClient      *warehouse.Client
	authMiddleware       *auth.Middleware
	rateLimiter          *middleware.RateLimiter
	authHandler          *handler.AuthHandler
	profileHandler       *handler.ProfileHandler
	customerHandler      *handler.CustomerHandler
	partnerHandler       *handler.PartnerHandler
	catalogHandler       *handler.CatalogHandler
	projectHandler       *handler.ProjectHandler
	measurementHandler   *handler.MeasurementHandler
	specSheetHandler     *handler.SpecSheetHandler
	quotationHandler     *handler.QuotationHandler
	inventoryHandler     *handler.InventoryHandler
	purchaseOrderHandler *handler.PurchaseOrderHandler
	accountingHandler    *handler.AccountingHandler
	marketingHandler     *handler.MarketingHandler
	dashboardHandler     *handler.DashboardHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	warehouseClient *warehouse.Client,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	customerHandler *handler.CustomerHandler,
	partnerHandler *handler.PartnerHandler,
	catalogHandler *handler.CatalogHandler,
	projectHandler *handler.ProjectHandler,
	measurementHandler *handler.MeasurementHandler,
	specSheetHandler *handler.SpecSheetHandler,
	quotationHandler *handler.QuotationHandler,
	inventoryHandler *handler.InventoryHandler,
	purchaseOrderHandler *handler.PurchaseOrderHandler,
	accountingHandler *handler.AccountingHandler,
	marketingHandler *handler.MarketingHandler,
	dashboardHandler *handler.DashboardHandler,
) *Router {
	return &Router{
		cfg:                  cfg,
		logger:               logger,
		db:                   db,
		warehouseClient:      warehouseClient,
		authMiddleware:       authMiddleware,
		rateLimiter:          rateLimiter,
		authHandler:          authHandler,
		profileHandler:       profileHandler,
		customerHandler:      customerHandler,
		partnerHandler:       partnerHandler,
		catalogHandler:       catalogHandler,
		projectHandler:       projectHandler,
		measurementHandler:   measurementHandler,
		specSheetHandler:     specSheetHandler,
		quotationHandler:     quotationHandler,
		inventoryHandler:     inventoryHandler,
		purchaseOrderHandler: purchaseOrderHandler,
		accountingHandler:    accountingHandler,
		marketingHandler:     marketingHandler,
		dashboardHandler:     dashboardHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Liveness probe
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Readiness probe with database pool stats and warehouse status
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		healthy := true

		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			healthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status":           "healthy",
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
			}
		}

		checks["warehouse"] = rt.warehouseClient.HealthCheck(r.Context())

		status := "healthy"
		code := http.StatusOK
		if !healthy {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": status,
			"checks": checks,
		})
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// Uploaded files are served straight off disk in local storage mode
	if rt.cfg.Storage.Mode == "local" {
		fileServer := http.StripPrefix("/files/", http.FileServer(http.Dir(rt.cfg.Storage.LocalBasePath)))
		r.Get("/files/*", fileServer.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/login", rt.authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(rt.rateLimiter.Limit)
			r.Use(auth.RequireAccess("/api/v1"))

			r.Get("/auth/me", rt.authHandler.Me)

			r.Route("/profiles", func(r chi.Router) {
				r.Get("/", rt.profileHandler.List)
				r.Post("/", rt.profileHandler.Create)
				r.Get("/{id}", rt.profileHandler.GetByID)
				r.Put("/{id}", rt.profileHandler.Update)
				r.Delete("/{id}", rt.profileHandler.Delete)
			})

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", rt.customerHandler.List)
				r.Post("/", rt.customerHandler.Create)
				r.Get("/search", rt.customerHandler.Search)
				r.Route("/corporate", func(r chi.Router) {
					r.Get("/", rt.customerHandler.ListCorporate)
					r.Post("/", rt.customerHandler.CreateCorporate)
					r.Get("/{id}", rt.customerHandler.GetCorporateByID)
					r.Put("/{id}", rt.customerHandler.UpdateCorporate)
					r.Delete("/{id}", rt.customerHandler.DeleteCorporate)
				})
				r.Get("/{id}", rt.customerHandler.GetByID)
				r.Put("/{id}", rt.customerHandler.Update)
				r.Delete("/{id}", rt.customerHandler.Delete)
			})

			r.Route("/partners", func(r chi.Router) {
				r.Route("/referrers", func(r chi.Router) {
					r.Get("/", rt.partnerHandler.ListReferrers)
					r.Post("/", rt.partnerHandler.CreateReferrer)
					r.Get("/{id}", rt.partnerHandler.GetReferrer)
					r.Put("/{id}", rt.partnerHandler.UpdateReferrer)
					r.Delete("/{id}", rt.partnerHandler.DeleteReferrer)
				})
				r.Route("/stores", func(r chi.Router) {
					r.Get("/", rt.partnerHandler.ListStores)
					r.Post("/", rt.partnerHandler.CreateStore)
					r.Get("/{id}", rt.partnerHandler.GetStore)
					r.Put("/{id}", rt.partnerHandler.UpdateStore)
					r.Delete("/{id}", rt.partnerHandler.DeleteStore)
				})
			})

			r.Route("/catalog", func(r chi.Router) {
				r.Route("/categories", func(r chi.Router) {
					r.Get("/", rt.catalogHandler.ListCategories)
					r.Post("/", rt.catalogHandler.CreateCategory)
					r.Get("/{id}", rt.catalogHandler.GetCategory)
					r.Put("/{id}", rt.catalogHandler.UpdateCategory)
					r.Delete("/{id}", rt.catalogHandler.DeleteCategory)
				})
				r.Route("/products", func(r chi.Router) {
					r.Get("/", rt.catalogHandler.ListProducts)
					r.Post("/", rt.catalogHandler.CreateProduct)
					r.Get("/{id}", rt.catalogHandler.GetProduct)
					r.Put("/{id}", rt.catalogHandler.UpdateProduct)
					r.Delete("/{id}", rt.catalogHandler.DeleteProduct)
					r.Put("/{id}/tiers", rt.catalogHandler.ReplaceTiers)
				})
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", rt.projectHandler.List)
				r.Post("/", rt.projectHandler.Create)
				r.Route("/locations", func(r chi.Router) {
					r.Put("/{locationId}", rt.projectHandler.UpdateLocation)
					r.Delete("/{locationId}", rt.projectHandler.DeleteLocation)
					r.Post("/{locationId}/windows", rt.projectHandler.AddWindow)
				})
				r.Route("/windows", func(r chi.Router) {
					r.Put("/{windowId}", rt.projectHandler.UpdateWindow)
					r.Delete("/{windowId}", rt.projectHandler.DeleteWindow)
					r.Post("/{windowId}/photos", rt.projectHandler.UploadWindowPhoto)
				})
				r.Get("/{id}", rt.projectHandler.GetByID)
				r.Put("/{id}", rt.projectHandler.Update)
				r.Delete("/{id}", rt.projectHandler.Delete)
				r.Post("/{id}/locations", rt.projectHandler.AddLocation)
			})

			r.Route("/bills", func(r chi.Router) {
				r.Get("/", rt.measurementHandler.ListBills)
				r.Post("/", rt.measurementHandler.CreateBill)
				r.Get("/formulas", rt.measurementHandler.Formulas)
				r.Route("/items", func(r chi.Router) {
					r.Get("/{itemId}", rt.measurementHandler.GetItem)
					r.Put("/{itemId}", rt.measurementHandler.UpdateItem)
					r.Delete("/{itemId}", rt.measurementHandler.DeleteItem)
					r.Post("/{itemId}/apply-formula", rt.measurementHandler.ApplyFormula)
					r.Put("/{itemId}/order-size", rt.measurementHandler.SetOrderSize)
				})
				r.Get("/{id}", rt.measurementHandler.GetBill)
				r.Put("/{id}", rt.measurementHandler.UpdateBill)
				r.Delete("/{id}", rt.measurementHandler.DeleteBill)
				r.Post("/{id}/items", rt.measurementHandler.AddItem)
			})

			r.Route("/spec-sheets", func(r chi.Router) {
				r.Get("/", rt.specSheetHandler.List)
				r.Post("/", rt.specSheetHandler.Create)
				r.Post("/items/{itemId}/bind-product", rt.specSheetHandler.BindProduct)
				r.Get("/{id}", rt.specSheetHandler.GetByID)
				r.Delete("/{id}", rt.specSheetHandler.Delete)
				r.Post("/{id}/complete", rt.specSheetHandler.Complete)
			})

			r.Route("/quotations", func(r chi.Router) {
				r.Get("/", rt.quotationHandler.List)
				r.Post("/from-bill", rt.quotationHandler.CreateFromBill)
				r.Post("/from-sheet", rt.quotationHandler.CreateFromSheet)
				r.Route("/items", func(r chi.Router) {
					r.Put("/{itemId}", rt.quotationHandler.UpdateItem)
					r.Delete("/{itemId}", rt.quotationHandler.RemoveItem)
				})
				r.Get("/{id}", rt.quotationHandler.GetByID)
				r.Delete("/{id}", rt.quotationHandler.Delete)
				r.Put("/{id}/status", rt.quotationHandler.UpdateStatus)
				r.Get("/{id}/export", rt.quotationHandler.ExportExcel)
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", rt.inventoryHandler.List)
				r.Post("/", rt.inventoryHandler.Create)
				r.Get("/low-stock", rt.inventoryHandler.ListLowStock)
				r.Get("/{id}", rt.inventoryHandler.GetByID)
				r.Put("/{id}", rt.inventoryHandler.Update)
				r.Delete("/{id}", rt.inventoryHandler.Delete)
				r.Post("/{id}/adjust", rt.inventoryHandler.AdjustStock)
			})

			r.Route("/purchase-orders", func(r chi.Router) {
				r.Get("/", rt.purchaseOrderHandler.List)
				r.Post("/", rt.purchaseOrderHandler.Create)
				r.Get("/{id}", rt.purchaseOrderHandler.GetByID)
				r.Delete("/{id}", rt.purchaseOrderHandler.Delete)
				r.Post("/{id}/order", rt.purchaseOrderHandler.MarkOrdered)
				r.Post("/{id}/receive", rt.purchaseOrderHandler.Receive)
			})

			r.Route("/accounting", func(r chi.Router) {
				r.Get("/", rt.accountingHandler.List)
				r.Post("/", rt.accountingHandler.Create)
				r.Post("/refresh-overdue", rt.accountingHandler.RefreshOverdue)
				r.Get("/{id}", rt.accountingHandler.GetByID)
				r.Put("/{id}", rt.accountingHandler.Update)
				r.Delete("/{id}", rt.accountingHandler.Delete)
				r.Put("/{id}/status", rt.accountingHandler.UpdateStatus)
			})

			r.Route("/marketing", func(r chi.Router) {
				r.Route("/campaigns", func(r chi.Router) {
					r.Get("/", rt.marketingHandler.ListCampaigns)
					r.Post("/", rt.marketingHandler.CreateCampaign)
					r.Get("/{id}", rt.marketingHandler.GetCampaign)
					r.Put("/{id}", rt.marketingHandler.UpdateCampaign)
					r.Delete("/{id}", rt.marketingHandler.DeleteCampaign)
					r.Post("/{id}/refresh-actuals", rt.marketingHandler.RefreshActuals)
					r.Get("/{id}/performance", rt.marketingHandler.Performance)
					r.Post("/{id}/tasks", rt.marketingHandler.AddTask)
					r.Get("/{id}/expenses", rt.marketingHandler.ListExpenses)
					r.Post("/{id}/expenses", rt.marketingHandler.AddExpense)
					r.Get("/{id}/evaluations", rt.marketingHandler.ListEvaluations)
					r.Post("/{id}/evaluations", rt.marketingHandler.AddEvaluation)
				})
				r.Route("/tasks", func(r chi.Router) {
					r.Put("/{taskId}/status", rt.marketingHandler.UpdateTaskStatus)
					r.Delete("/{taskId}", rt.marketingHandler.DeleteTask)
				})
				r.Delete("/expenses/{expenseId}", rt.marketingHandler.DeleteExpense)
			})

			r.Get("/dashboard/summary", rt.dashboardHandler.Summary)
		})
	})

	return r
}
