package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/service"
)

type QuotationHandler struct {
	quotationService *service.QuotationService
	logger           *zap.Logger
}

func NewQuotationHandler(quotationService *service.QuotationService, logger *zap.Logger) *QuotationHandler {
	return &QuotationHandler{
		quotationService: quotationService,
		logger:           logger,
	}
}

// List godoc
// @Summary List quotations
// @Tags Quotations
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by quotation number or title"
// @Param status query string false "Filter by status" Enums(draft, sent, approved, rejected, cancelled)
// @Param customerId query string false "Filter by customer" format(uuid)
// @Param projectId query string false "Filter by project" format(uuid)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.Quotation}
// @Security BearerAuth
// @Router /quotations [get]
func (h *QuotationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	result, err := h.quotationService.List(r.Context(), page, pageSize,
		r.URL.Query().Get("search"),
		domain.QuotationStatus(r.URL.Query().Get("status")),
		optionalUUIDQuery(r, "customerId"),
		optionalUUIDQuery(r, "projectId"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list quotations")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get quotation by ID
// @Description Returns the quotation with its line items
// @Tags Quotations
// @Produce json
// @Param id path string true "Quotation ID" format(uuid)
// @Success 200 {object} domain.Quotation
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /quotations/{id} [get]
func (h *QuotationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	quotation, err := h.quotationService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get quotation")
		return
	}

	respondJSON(w, http.StatusOK, quotation)
}

// CreateFromBill godoc
// @Summary Create quotation from measurement bill
// @Description Draft a quotation with one unpriced line per measurement item
// @Tags Quotations
// @Accept json
// @Produce json
// @Param request body domain.CreateQuotationFromBillRequest true "Source bill"
// @Success 201 {object} domain.Quotation
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /quotations/from-bill [post]
func (h *QuotationHandler) CreateFromBill(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateQuotationFromBillRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	quotation, err := h.quotationService.CreateFromBill(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create quotation from bill")
		return
	}

	w.Header().Set("Location", "/api/v1/quotations/"+quotation.ID.String())
	respondJSON(w, http.StatusCreated, quotation)
}

// CreateFromSheet godoc
// @Summary Create quotation from spec sheet
// @Description Price each bound product line using its category's pricing method. The sheet must be completed.
// @Tags Quotations
// @Accept json
// @Produce json
// @Param request body domain.CreateQuotationFromSheetRequest true "Source spec sheet"
// @Success 201 {object} domain.Quotation
// @Failure 400 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse "Sheet not completed"
// @Security BearerAuth
// @Router /quotations/from-sheet [post]
func (h *QuotationHandler) CreateFromSheet(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateQuotationFromSheetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	quotation, err := h.quotationService.CreateFromSheet(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create quotation from sheet")
		return
	}

	w.Header().Set("Location", "/api/v1/quotations/"+quotation.ID.String())
	respondJSON(w, http.StatusCreated, quotation)
}

// UpdateStatus godoc
// @Summary Update quotation status
// @Description Move the quotation through its lifecycle, invalid transitions are rejected
// @Tags Quotations
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID" format(uuid)
// @Param request body domain.UpdateQuotationStatusRequest true "Target status"
// @Success 200 {object} domain.Quotation
// @Failure 404 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /quotations/{id}/status [put]
func (h *QuotationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateQuotationStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	quotation, err := h.quotationService.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update quotation status")
		return
	}

	respondJSON(w, http.StatusOK, quotation)
}

// UpdateItem godoc
// @Summary Update quotation line item
// @Description Update a line and recompute the quotation totals
// @Tags Quotations
// @Accept json
// @Produce json
// @Param itemId path string true "Line item ID" format(uuid)
// @Param request body domain.UpdateQuotationItemRequest true "Line data"
// @Success 200 {object} domain.Quotation
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /quotations/items/{itemId} [put]
func (h *QuotationHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := uuidParam(w, r, "itemId")
	if !ok {
		return
	}

	var req domain.UpdateQuotationItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	quotation, err := h.quotationService.UpdateItem(r.Context(), itemID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update quotation item")
		return
	}

	respondJSON(w, http.StatusOK, quotation)
}

// RemoveItem godoc
// @Summary Remove quotation line item
// @Tags Quotations
// @Produce json
// @Param itemId path string true "Line item ID" format(uuid)
// @Success 200 {object} domain.Quotation
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /quotations/items/{itemId} [delete]
func (h *QuotationHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := uuidParam(w, r, "itemId")
	if !ok {
		return
	}

	quotation, err := h.quotationService.RemoveItem(r.Context(), itemID)
	if err != nil {
		respondServiceError(w, h.logger, err, "remove quotation item")
		return
	}

	respondJSON(w, http.StatusOK, quotation)
}

// Delete godoc
// @Summary Delete quotation
// @Tags Quotations
// @Param id path string true "Quotation ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /quotations/{id} [delete]
func (h *QuotationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.quotationService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete quotation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportExcel godoc
// @Summary Export quotation to Excel
// @Description Download the quotation as an .xlsx workbook
// @Tags Quotations
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Quotation ID" format(uuid)
// @Success 200 {file} binary
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /quotations/{id}/export [get]
func (h *QuotationHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	buf, filename, err := h.quotationService.ExportExcel(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "export quotation")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(buf.Bytes())
}
