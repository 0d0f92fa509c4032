package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Summary godoc
// @Summary Dashboard summary
// @Description Back-office overview: active projects, open quotations, unpaid invoices, low stock and campaign counts
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardSummary
// @Security BearerAuth
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.Summary(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "load dashboard summary")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
