package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/service"
)

// AccountingHandler serves invoices, receipts and expense documents
type AccountingHandler struct {
	accountingService *service.AccountingService
	logger            *zap.Logger
}

func NewAccountingHandler(accountingService *service.AccountingService, logger *zap.Logger) *AccountingHandler {
	return &AccountingHandler{
		accountingService: accountingService,
		logger:            logger,
	}
}

// List godoc
// @Summary List accounting documents
// @Tags Accounting
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by document number or title"
// @Param docType query string false "Filter by type" Enums(invoice, receipt, expense)
// @Param status query string false "Filter by status" Enums(draft, issued, paid, overdue, cancelled)
// @Param customerId query string false "Filter by customer" format(uuid)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.AccountingDoc}
// @Security BearerAuth
// @Router /accounting [get]
func (h *AccountingHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	result, err := h.accountingService.List(r.Context(), page, pageSize,
		r.URL.Query().Get("search"),
		domain.AccountingDocType(r.URL.Query().Get("docType")),
		domain.AccountingDocStatus(r.URL.Query().Get("status")),
		optionalUUIDQuery(r, "customerId"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list accounting documents")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get accounting document by ID
// @Tags Accounting
// @Produce json
// @Param id path string true "Document ID" format(uuid)
// @Success 200 {object} domain.AccountingDoc
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /accounting/{id} [get]
func (h *AccountingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	doc, err := h.accountingService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get accounting document")
		return
	}

	respondJSON(w, http.StatusOK, doc)
}

// Create godoc
// @Summary Create accounting document
// @Description Create an invoice, receipt or expense. Tax and grand total are computed from the amount and tax rate.
// @Tags Accounting
// @Accept json
// @Produce json
// @Param request body domain.CreateAccountingDocRequest true "Document data"
// @Success 201 {object} domain.AccountingDoc
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /accounting [post]
func (h *AccountingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAccountingDocRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	doc, err := h.accountingService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create accounting document")
		return
	}

	w.Header().Set("Location", "/api/v1/accounting/"+doc.ID.String())
	respondJSON(w, http.StatusCreated, doc)
}

// Update godoc
// @Summary Update accounting document
// @Description Only draft documents can be edited
// @Tags Accounting
// @Accept json
// @Produce json
// @Param id path string true "Document ID" format(uuid)
// @Param request body domain.CreateAccountingDocRequest true "Document data"
// @Success 200 {object} domain.AccountingDoc
// @Failure 404 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /accounting/{id} [put]
func (h *AccountingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.CreateAccountingDocRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	doc, err := h.accountingService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update accounting document")
		return
	}

	respondJSON(w, http.StatusOK, doc)
}

// UpdateStatus godoc
// @Summary Update accounting document status
// @Description Move the document through its lifecycle, invalid transitions are rejected
// @Tags Accounting
// @Accept json
// @Produce json
// @Param id path string true "Document ID" format(uuid)
// @Param request body domain.UpdateAccountingDocStatusRequest true "Target status"
// @Success 200 {object} domain.AccountingDoc
// @Failure 404 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /accounting/{id}/status [put]
func (h *AccountingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateAccountingDocStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	doc, err := h.accountingService.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update accounting document status")
		return
	}

	respondJSON(w, http.StatusOK, doc)
}

// RefreshOverdue godoc
// @Summary Flag overdue invoices
// @Description Mark issued invoices past their due date as overdue and report how many were flagged
// @Tags Accounting
// @Produce json
// @Success 200 {object} map[string]int
// @Security BearerAuth
// @Router /accounting/refresh-overdue [post]
func (h *AccountingHandler) RefreshOverdue(w http.ResponseWriter, r *http.Request) {
	flagged, err := h.accountingService.RefreshOverdue(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "refresh overdue invoices")
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"flagged": flagged})
}

// Delete godoc
// @Summary Delete accounting document
// @Tags Accounting
// @Param id path string true "Document ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /accounting/{id} [delete]
func (h *AccountingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.accountingService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete accounting document")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
