package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/measure"
	"github.com/draperly/atelier-api/internal/service"
)

// MeasurementHandler serves measurement bills, their items and the
// production-size derivation endpoints
type MeasurementHandler struct {
	measurementService *service.MeasurementService
	logger             *zap.Logger
}

func NewMeasurementHandler(measurementService *service.MeasurementService, logger *zap.Logger) *MeasurementHandler {
	return &MeasurementHandler{
		measurementService: measurementService,
		logger:             logger,
	}
}

// ListBills godoc
// @Summary List measurement bills
// @Tags Measurements
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by bill number"
// @Param projectId query string false "Filter by project" format(uuid)
// @Param status query string false "Filter by status" Enums(draft, completed, cancelled)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.MeasurementBill}
// @Security BearerAuth
// @Router /bills [get]
func (h *MeasurementHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	result, err := h.measurementService.ListBills(r.Context(), page, pageSize,
		r.URL.Query().Get("search"),
		optionalUUIDQuery(r, "projectId"),
		domain.BillStatus(r.URL.Query().Get("status")))
	if err != nil {
		respondServiceError(w, h.logger, err, "list measurement bills")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetBill godoc
// @Summary Get measurement bill by ID
// @Description Returns the bill with its measurement items
// @Tags Measurements
// @Produce json
// @Param id path string true "Bill ID" format(uuid)
// @Success 200 {object} domain.MeasurementBill
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /bills/{id} [get]
func (h *MeasurementHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	bill, err := h.measurementService.GetBillByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get measurement bill")
		return
	}

	respondJSON(w, http.StatusOK, bill)
}

// CreateBill godoc
// @Summary Create measurement bill
// @Description Create a bill for a project and assign it the next monthly bill number
// @Tags Measurements
// @Accept json
// @Produce json
// @Param request body domain.CreateBillRequest true "Bill data"
// @Success 201 {object} domain.MeasurementBill
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /bills [post]
func (h *MeasurementHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBillRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	bill, err := h.measurementService.CreateBill(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create measurement bill")
		return
	}

	w.Header().Set("Location", "/api/v1/bills/"+bill.ID.String())
	respondJSON(w, http.StatusCreated, bill)
}

// UpdateBill godoc
// @Summary Update measurement bill
// @Description Cancelled bills are immutable
// @Tags Measurements
// @Accept json
// @Produce json
// @Param id path string true "Bill ID" format(uuid)
// @Param request body domain.UpdateBillRequest true "Bill data"
// @Success 200 {object} domain.MeasurementBill
// @Failure 404 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /bills/{id} [put]
func (h *MeasurementHandler) UpdateBill(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateBillRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	bill, err := h.measurementService.UpdateBill(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update measurement bill")
		return
	}

	respondJSON(w, http.StatusOK, bill)
}

// DeleteBill godoc
// @Summary Delete measurement bill
// @Tags Measurements
// @Param id path string true "Bill ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /bills/{id} [delete]
func (h *MeasurementHandler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.measurementService.DeleteBill(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete measurement bill")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddItem godoc
// @Summary Add measurement item to bill
// @Tags Measurements
// @Accept json
// @Produce json
// @Param id path string true "Bill ID" format(uuid)
// @Param request body domain.CreateMeasurementItemRequest true "Item data"
// @Success 201 {object} domain.MeasurementItem
// @Failure 404 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /bills/{id}/items [post]
func (h *MeasurementHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	billID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.CreateMeasurementItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.measurementService.AddItem(r.Context(), billID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "add measurement item")
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// GetItem godoc
// @Summary Get measurement item by ID
// @Tags Measurements
// @Produce json
// @Param itemId path string true "Item ID" format(uuid)
// @Success 200 {object} domain.MeasurementItem
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /bills/items/{itemId} [get]
func (h *MeasurementHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := uuidParam(w, r, "itemId")
	if !ok {
		return
	}

	item, err := h.measurementService.GetItemByID(r.Context(), itemID)
	if err != nil {
		respondServiceError(w, h.logger, err, "get measurement item")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// UpdateItem godoc
// @Summary Update measurement item
// @Tags Measurements
// @Accept json
// @Produce json
// @Param itemId path string true "Item ID" format(uuid)
// @Param request body domain.UpdateMeasurementItemRequest true "Item data"
// @Success 200 {object} domain.MeasurementItem
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /bills/items/{itemId} [put]
func (h *MeasurementHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := uuidParam(w, r, "itemId")
	if !ok {
		return
	}

	var req domain.UpdateMeasurementItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.measurementService.UpdateItem(r.Context(), itemID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update measurement item")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// DeleteItem godoc
// @Summary Delete measurement item
// @Tags Measurements
// @Param itemId path string true "Item ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /bills/items/{itemId} [delete]
func (h *MeasurementHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := uuidParam(w, r, "itemId")
	if !ok {
		return
	}

	if err := h.measurementService.DeleteItem(r.Context(), itemID); err != nil {
		respondServiceError(w, h.logger, err, "delete measurement item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// applyFormulaResponse pairs the updated item with the derivation outcome
type applyFormulaResponse struct {
	Item        *domain.MeasurementItem `json:"item"`
	Value       float64                 `json:"value"`
	Explanation string                  `json:"explanation"`
	Applied     bool                    `json:"applied"`
	Missing     string                  `json:"missing,omitempty"`
}

func newApplyFormulaResponse(item *domain.MeasurementItem, result *measure.Result) applyFormulaResponse {
	return applyFormulaResponse{
		Item:        item,
		Value:       result.Value,
		Explanation: result.Explanation,
		Applied:     result.OK,
		Missing:     result.Missing,
	}
}

// ApplyFormula godoc
// @Summary Apply derivation formula
// @Description Derive the production order size for one dimension from the raw readings. When a required reading is missing the result reports which one, and the item is left unchanged.
// @Tags Measurements
// @Accept json
// @Produce json
// @Param itemId path string true "Item ID" format(uuid)
// @Param request body domain.ApplyFormulaRequest true "Dimension and formula"
// @Success 200 {object} handler.applyFormulaResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /bills/items/{itemId}/apply-formula [post]
func (h *MeasurementHandler) ApplyFormula(w http.ResponseWriter, r *http.Request) {
	itemID, ok := uuidParam(w, r, "itemId")
	if !ok {
		return
	}

	var req domain.ApplyFormulaRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, result, err := h.measurementService.ApplyFormula(r.Context(), itemID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "apply derivation formula")
		return
	}

	respondJSON(w, http.StatusOK, newApplyFormulaResponse(item, result))
}

// SetOrderSize godoc
// @Summary Set order size manually
// @Description Override the derived production size for one dimension
// @Tags Measurements
// @Accept json
// @Produce json
// @Param itemId path string true "Item ID" format(uuid)
// @Param request body domain.SetOrderSizeRequest true "Dimension and value"
// @Success 200 {object} domain.MeasurementItem
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /bills/items/{itemId}/order-size [put]
func (h *MeasurementHandler) SetOrderSize(w http.ResponseWriter, r *http.Request) {
	itemID, ok := uuidParam(w, r, "itemId")
	if !ok {
		return
	}

	var req domain.SetOrderSizeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.measurementService.SetOrderSize(r.Context(), itemID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "set order size")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Formulas godoc
// @Summary List derivation formulas
// @Description Returns the available formulas keyed by dimension
// @Tags Measurements
// @Produce json
// @Success 200 {object} map[string][]string
// @Security BearerAuth
// @Router /bills/formulas [get]
func (h *MeasurementHandler) Formulas(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.measurementService.Formulas())
}
