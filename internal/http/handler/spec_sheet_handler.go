package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/service"
)

// SpecSheetHandler serves production spec sheets
type SpecSheetHandler struct {
	specSheetService *service.SpecSheetService
	logger           *zap.Logger
}

func NewSpecSheetHandler(specSheetService *service.SpecSheetService, logger *zap.Logger) *SpecSheetHandler {
	return &SpecSheetHandler{
		specSheetService: specSheetService,
		logger:           logger,
	}
}

// List godoc
// @Summary List spec sheets
// @Tags SpecSheets
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param billId query string false "Filter by measurement bill" format(uuid)
// @Param status query string false "Filter by status" Enums(open, completed)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.SpecSheet}
// @Security BearerAuth
// @Router /spec-sheets [get]
func (h *SpecSheetHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	result, err := h.specSheetService.List(r.Context(), page, pageSize,
		optionalUUIDQuery(r, "billId"),
		domain.SpecSheetStatus(r.URL.Query().Get("status")))
	if err != nil {
		respondServiceError(w, h.logger, err, "list spec sheets")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get spec sheet by ID
// @Description Returns the sheet with its items and bound products
// @Tags SpecSheets
// @Produce json
// @Param id path string true "Spec sheet ID" format(uuid)
// @Success 200 {object} domain.SpecSheet
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /spec-sheets/{id} [get]
func (h *SpecSheetHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	sheet, err := h.specSheetService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get spec sheet")
		return
	}

	respondJSON(w, http.StatusOK, sheet)
}

// Create godoc
// @Summary Create spec sheet
// @Description Snapshot selected measurement items from a bill into a new sheet
// @Tags SpecSheets
// @Accept json
// @Produce json
// @Param request body domain.CreateSpecSheetRequest true "Bill and item selection"
// @Success 201 {object} domain.SpecSheet
// @Failure 400 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse "No items selected"
// @Security BearerAuth
// @Router /spec-sheets [post]
func (h *SpecSheetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSpecSheetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sheet, err := h.specSheetService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create spec sheet")
		return
	}

	w.Header().Set("Location", "/api/v1/spec-sheets/"+sheet.ID.String())
	respondJSON(w, http.StatusCreated, sheet)
}

// Delete godoc
// @Summary Delete spec sheet
// @Tags SpecSheets
// @Param id path string true "Spec sheet ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /spec-sheets/{id} [delete]
func (h *SpecSheetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.specSheetService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete spec sheet")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// BindProduct godoc
// @Summary Bind product to sheet item
// @Description Bind a catalog product to a sheet item, snapshotting its current price
// @Tags SpecSheets
// @Accept json
// @Produce json
// @Param itemId path string true "Sheet item ID" format(uuid)
// @Param request body domain.BindProductRequest true "Product reference"
// @Success 200 {object} domain.SpecSheetItem
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /spec-sheets/items/{itemId}/bind-product [post]
func (h *SpecSheetHandler) BindProduct(w http.ResponseWriter, r *http.Request) {
	itemID, ok := uuidParam(w, r, "itemId")
	if !ok {
		return
	}

	var req domain.BindProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.specSheetService.BindProduct(r.Context(), itemID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "bind product")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Complete godoc
// @Summary Complete spec sheet
// @Description Mark the sheet completed so quotations can be drawn from it
// @Tags SpecSheets
// @Produce json
// @Param id path string true "Spec sheet ID" format(uuid)
// @Success 200 {object} domain.SpecSheet
// @Failure 404 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /spec-sheets/{id}/complete [post]
func (h *SpecSheetHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	sheet, err := h.specSheetService.Complete(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "complete spec sheet")
		return
	}

	respondJSON(w, http.StatusOK, sheet)
}
