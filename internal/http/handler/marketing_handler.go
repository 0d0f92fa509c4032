package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/service"
)

// MarketingHandler serves campaigns with their tasks, expenses and
// evaluations
type MarketingHandler struct {
	marketingService *service.MarketingService
	logger           *zap.Logger
}

func NewMarketingHandler(marketingService *service.MarketingService, logger *zap.Logger) *MarketingHandler {
	return &MarketingHandler{
		marketingService: marketingService,
		logger:           logger,
	}
}

// ListCampaigns godoc
// @Summary List marketing campaigns
// @Tags Marketing
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by name or code"
// @Param status query string false "Filter by status" Enums(planning, active, completed, cancelled)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.MarketingCampaign}
// @Security BearerAuth
// @Router /marketing/campaigns [get]
func (h *MarketingHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	result, err := h.marketingService.ListCampaigns(r.Context(), page, pageSize,
		r.URL.Query().Get("search"),
		domain.CampaignStatus(r.URL.Query().Get("status")))
	if err != nil {
		respondServiceError(w, h.logger, err, "list campaigns")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetCampaign godoc
// @Summary Get campaign by ID
// @Description Returns the campaign with its tasks, expenses and evaluations
// @Tags Marketing
// @Produce json
// @Param id path string true "Campaign ID" format(uuid)
// @Success 200 {object} domain.MarketingCampaign
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /marketing/campaigns/{id} [get]
func (h *MarketingHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	campaign, err := h.marketingService.GetCampaignByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get campaign")
		return
	}

	respondJSON(w, http.StatusOK, campaign)
}

// CreateCampaign godoc
// @Summary Create marketing campaign
// @Tags Marketing
// @Accept json
// @Produce json
// @Param request body domain.CreateCampaignRequest true "Campaign data"
// @Success 201 {object} domain.MarketingCampaign
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /marketing/campaigns [post]
func (h *MarketingHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCampaignRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	campaign, err := h.marketingService.CreateCampaign(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create campaign")
		return
	}

	respondJSON(w, http.StatusCreated, campaign)
}

// UpdateCampaign godoc
// @Summary Update marketing campaign
// @Tags Marketing
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID" format(uuid)
// @Param request body domain.UpdateCampaignRequest true "Campaign data"
// @Success 200 {object} domain.MarketingCampaign
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /marketing/campaigns/{id} [put]
func (h *MarketingHandler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateCampaignRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	campaign, err := h.marketingService.UpdateCampaign(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update campaign")
		return
	}

	respondJSON(w, http.StatusOK, campaign)
}

// DeleteCampaign godoc
// @Summary Delete marketing campaign
// @Tags Marketing
// @Param id path string true "Campaign ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /marketing/campaigns/{id} [delete]
func (h *MarketingHandler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.marketingService.DeleteCampaign(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete campaign")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RefreshActuals godoc
// @Summary Refresh campaign actuals
// @Description Pull actual sales and lead counts for the campaign code from the sales warehouse
// @Tags Marketing
// @Produce json
// @Param id path string true "Campaign ID" format(uuid)
// @Success 200 {object} domain.MarketingCampaign
// @Failure 404 {object} domain.ErrorResponse
// @Failure 503 {object} domain.ErrorResponse "Warehouse unavailable"
// @Security BearerAuth
// @Router /marketing/campaigns/{id}/refresh-actuals [post]
func (h *MarketingHandler) RefreshActuals(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	campaign, err := h.marketingService.RefreshActuals(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "refresh campaign actuals")
		return
	}

	respondJSON(w, http.StatusOK, campaign)
}

// Performance godoc
// @Summary Campaign performance
// @Description Compare plan against actuals including spend, attainment and ROI
// @Tags Marketing
// @Produce json
// @Param id path string true "Campaign ID" format(uuid)
// @Success 200 {object} domain.CampaignPerformanceDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /marketing/campaigns/{id}/performance [get]
func (h *MarketingHandler) Performance(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	performance, err := h.marketingService.Performance(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get campaign performance")
		return
	}

	respondJSON(w, http.StatusOK, performance)
}

// AddTask godoc
// @Summary Add campaign task
// @Tags Marketing
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID" format(uuid)
// @Param request body domain.CreateMarketingTaskRequest true "Task data"
// @Success 201 {object} domain.MarketingTask
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /marketing/campaigns/{id}/tasks [post]
func (h *MarketingHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.CreateMarketingTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.marketingService.AddTask(r.Context(), campaignID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "add campaign task")
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// UpdateTaskStatus godoc
// @Summary Update campaign task status
// @Tags Marketing
// @Accept json
// @Produce json
// @Param taskId path string true "Task ID" format(uuid)
// @Param request body domain.UpdateTaskStatusRequest true "Target status"
// @Success 200 {object} domain.MarketingTask
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /marketing/tasks/{taskId}/status [put]
func (h *MarketingHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID, ok := uuidParam(w, r, "taskId")
	if !ok {
		return
	}

	var req domain.UpdateTaskStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.marketingService.UpdateTaskStatus(r.Context(), taskID, req.Status)
	if err != nil {
		respondServiceError(w, h.logger, err, "update task status")
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete campaign task
// @Tags Marketing
// @Param taskId path string true "Task ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /marketing/tasks/{taskId} [delete]
func (h *MarketingHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := uuidParam(w, r, "taskId")
	if !ok {
		return
	}

	if err := h.marketingService.DeleteTask(r.Context(), taskID); err != nil {
		respondServiceError(w, h.logger, err, "delete campaign task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListExpenses godoc
// @Summary List campaign expenses
// @Tags Marketing
// @Produce json
// @Param id path string true "Campaign ID" format(uuid)
// @Success 200 {array} domain.MarketingExpense
// @Security BearerAuth
// @Router /marketing/campaigns/{id}/expenses [get]
func (h *MarketingHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	expenses, err := h.marketingService.ListExpenses(r.Context(), campaignID)
	if err != nil {
		respondServiceError(w, h.logger, err, "list campaign expenses")
		return
	}

	respondJSON(w, http.StatusOK, expenses)
}

// AddExpense godoc
// @Summary Add campaign expense
// @Tags Marketing
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID" format(uuid)
// @Param request body domain.CreateMarketingExpenseRequest true "Expense data"
// @Success 201 {object} domain.MarketingExpense
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /marketing/campaigns/{id}/expenses [post]
func (h *MarketingHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.CreateMarketingExpenseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	expense, err := h.marketingService.AddExpense(r.Context(), campaignID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "add campaign expense")
		return
	}

	respondJSON(w, http.StatusCreated, expense)
}

// DeleteExpense godoc
// @Summary Delete campaign expense
// @Tags Marketing
// @Param expenseId path string true "Expense ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /marketing/expenses/{expenseId} [delete]
func (h *MarketingHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseID, ok := uuidParam(w, r, "expenseId")
	if !ok {
		return
	}

	if err := h.marketingService.DeleteExpense(r.Context(), expenseID); err != nil {
		respondServiceError(w, h.logger, err, "delete campaign expense")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListEvaluations godoc
// @Summary List campaign evaluations
// @Tags Marketing
// @Produce json
// @Param id path string true "Campaign ID" format(uuid)
// @Success 200 {array} domain.MarketingEvaluation
// @Security BearerAuth
// @Router /marketing/campaigns/{id}/evaluations [get]
func (h *MarketingHandler) ListEvaluations(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	evaluations, err := h.marketingService.ListEvaluations(r.Context(), campaignID)
	if err != nil {
		respondServiceError(w, h.logger, err, "list campaign evaluations")
		return
	}

	respondJSON(w, http.StatusOK, evaluations)
}

// AddEvaluation godoc
// @Summary Add campaign evaluation
// @Tags Marketing
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID" format(uuid)
// @Param request body domain.CreateMarketingEvaluationRequest true "Evaluation data"
// @Success 201 {object} domain.MarketingEvaluation
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /marketing/campaigns/{id}/evaluations [post]
func (h *MarketingHandler) AddEvaluation(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.CreateMarketingEvaluationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	evaluation, err := h.marketingService.AddEvaluation(r.Context(), campaignID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "add campaign evaluation")
		return
	}

	respondJSON(w, http.StatusCreated, evaluation)
}
