package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/service"
)

type InventoryHandler struct {
	inventoryService *service.InventoryService
	logger           *zap.Logger
}

func NewInventoryHandler(inventoryService *service.InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		logger:           logger,
	}
}

// List godoc
// @Summary List inventory items
// @Tags Inventory
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by name or SKU"
// @Param activeOnly query bool false "Only active items"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.InventoryItem}
// @Security BearerAuth
// @Router /inventory [get]
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	result, err := h.inventoryService.List(r.Context(), page, pageSize,
		r.URL.Query().Get("search"), boolQuery(r, "activeOnly"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list inventory")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// ListLowStock godoc
// @Summary List low-stock items
// @Description Items whose quantity is below their minimum stock level
// @Tags Inventory
// @Produce json
// @Success 200 {array} domain.InventoryItem
// @Security BearerAuth
// @Router /inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventoryService.ListLowStock(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "list low-stock items")
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// GetByID godoc
// @Summary Get inventory item by ID
// @Tags Inventory
// @Produce json
// @Param id path string true "Item ID" format(uuid)
// @Success 200 {object} domain.InventoryItem
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /inventory/{id} [get]
func (h *InventoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	item, err := h.inventoryService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get inventory item")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Create godoc
// @Summary Create inventory item
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body domain.CreateInventoryItemRequest true "Item data"
// @Success 201 {object} domain.InventoryItem
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /inventory [post]
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInventoryItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.inventoryService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create inventory item")
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// Update godoc
// @Summary Update inventory item
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path string true "Item ID" format(uuid)
// @Param request body domain.CreateInventoryItemRequest true "Item data"
// @Success 200 {object} domain.InventoryItem
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /inventory/{id} [put]
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.CreateInventoryItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.inventoryService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update inventory item")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// AdjustStock godoc
// @Summary Adjust stock quantity
// @Description Apply a signed delta to the item quantity. Adjustments that would make the quantity negative are rejected.
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path string true "Item ID" format(uuid)
// @Param request body domain.AdjustStockRequest true "Delta and notes"
// @Success 200 {object} domain.InventoryItem
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /inventory/{id}/adjust [post]
func (h *InventoryHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.AdjustStockRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.inventoryService.AdjustStock(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "adjust stock")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete inventory item
// @Tags Inventory
// @Param id path string true "Item ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /inventory/{id} [delete]
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.inventoryService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete inventory item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
