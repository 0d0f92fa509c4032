package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/service"
)

type PurchaseOrderHandler struct {
	purchaseOrderService *service.PurchaseOrderService
	logger               *zap.Logger
}

func NewPurchaseOrderHandler(purchaseOrderService *service.PurchaseOrderService, logger *zap.Logger) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		purchaseOrderService: purchaseOrderService,
		logger:               logger,
	}
}

// List godoc
// @Summary List purchase orders
// @Tags PurchaseOrders
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by order number or supplier"
// @Param status query string false "Filter by status" Enums(draft, ordered, received)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.PurchaseOrder}
// @Security BearerAuth
// @Router /purchase-orders [get]
func (h *PurchaseOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	result, err := h.purchaseOrderService.List(r.Context(), page, pageSize,
		r.URL.Query().Get("search"),
		domain.PurchaseOrderStatus(r.URL.Query().Get("status")))
	if err != nil {
		respondServiceError(w, h.logger, err, "list purchase orders")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get purchase order by ID
// @Description Returns the order with its line items
// @Tags PurchaseOrders
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Success 200 {object} domain.PurchaseOrder
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	order, err := h.purchaseOrderService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get purchase order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Create godoc
// @Summary Create purchase order
// @Tags PurchaseOrders
// @Accept json
// @Produce json
// @Param request body domain.CreatePurchaseOrderRequest true "Order data"
// @Success 201 {object} domain.PurchaseOrder
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /purchase-orders [post]
func (h *PurchaseOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePurchaseOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.purchaseOrderService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create purchase order")
		return
	}

	w.Header().Set("Location", "/api/v1/purchase-orders/"+order.ID.String())
	respondJSON(w, http.StatusCreated, order)
}

// MarkOrdered godoc
// @Summary Mark purchase order as ordered
// @Tags PurchaseOrders
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Success 200 {object} domain.PurchaseOrder
// @Failure 404 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /purchase-orders/{id}/order [post]
func (h *PurchaseOrderHandler) MarkOrdered(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	order, err := h.purchaseOrderService.MarkOrdered(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "mark purchase order ordered")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Receive godoc
// @Summary Receive purchase order
// @Description Mark the order received and restock linked inventory items
// @Tags PurchaseOrders
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Success 200 {object} domain.PurchaseOrder
// @Failure 404 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	order, err := h.purchaseOrderService.Receive(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "receive purchase order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Delete godoc
// @Summary Delete purchase order
// @Description Received orders cannot be deleted
// @Tags PurchaseOrders
// @Param id path string true "Order ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /purchase-orders/{id} [delete]
func (h *PurchaseOrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.purchaseOrderService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete purchase order")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
