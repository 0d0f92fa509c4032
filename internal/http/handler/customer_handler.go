package handler

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/service"
)

type CustomerHandler struct {
	customerService *service.CustomerService
	logger          *zap.Logger
}

func NewCustomerHandler(customerService *service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// List godoc
// @Summary List customers
// @Description Get paginated list of customers with optional search
// @Tags Customers
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by name, phone or email"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.Customer}
// @Security BearerAuth
// @Router /customers [get]
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	result, err := h.customerService.List(r.Context(), page, pageSize, r.URL.Query().Get("search"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list customers")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Search godoc
// @Summary Search customers
// @Description Quick lookup by name, phone or email for pickers
// @Tags Customers
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Maximum results" default(10)
// @Success 200 {array} domain.Customer
// @Security BearerAuth
// @Router /customers/search [get]
func (h *CustomerHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}

	customers, err := h.customerService.Search(r.Context(), query, limit)
	if err != nil {
		respondServiceError(w, h.logger, err, "search customers")
		return
	}

	respondJSON(w, http.StatusOK, customers)
}

// GetByID godoc
// @Summary Get customer by ID
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID" format(uuid)
// @Success 200 {object} domain.Customer
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get customer")
		return
	}

	respondJSON(w, http.StatusOK, customer)
}

// Create godoc
// @Summary Create customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body domain.CreateCustomerRequest true "Customer data"
// @Success 201 {object} domain.Customer
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /customers [post]
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCustomerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	customer, err := h.customerService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create customer")
		return
	}

	w.Header().Set("Location", "/api/v1/customers/"+customer.ID.String())
	respondJSON(w, http.StatusCreated, customer)
}

// Update godoc
// @Summary Update customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID" format(uuid)
// @Param request body domain.UpdateCustomerRequest true "Customer data"
// @Success 200 {object} domain.Customer
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateCustomerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	customer, err := h.customerService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update customer")
		return
	}

	respondJSON(w, http.StatusOK, customer)
}

// Delete godoc
// @Summary Delete customer
// @Tags Customers
// @Param id path string true "Customer ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.customerService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete customer")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListCorporate godoc
// @Summary List corporate customers
// @Tags Customers
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by company name or tax ID"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.CorporateCustomer}
// @Security BearerAuth
// @Router /customers/corporate [get]
func (h *CustomerHandler) ListCorporate(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	result, err := h.customerService.ListCorporate(r.Context(), page, pageSize, r.URL.Query().Get("search"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list corporate customers")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetCorporateByID godoc
// @Summary Get corporate customer by ID
// @Tags Customers
// @Produce json
// @Param id path string true "Corporate customer ID" format(uuid)
// @Success 200 {object} domain.CorporateCustomer
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /customers/corporate/{id} [get]
func (h *CustomerHandler) GetCorporateByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	corp, err := h.customerService.GetCorporateByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get corporate customer")
		return
	}

	respondJSON(w, http.StatusOK, corp)
}

// CreateCorporate godoc
// @Summary Create corporate customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body domain.CreateCorporateCustomerRequest true "Corporate customer data"
// @Success 201 {object} domain.CorporateCustomer
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /customers/corporate [post]
func (h *CustomerHandler) CreateCorporate(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCorporateCustomerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	corp, err := h.customerService.CreateCorporate(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create corporate customer")
		return
	}

	respondJSON(w, http.StatusCreated, corp)
}

// UpdateCorporate godoc
// @Summary Update corporate customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path string true "Corporate customer ID" format(uuid)
// @Param request body domain.CreateCorporateCustomerRequest true "Corporate customer data"
// @Success 200 {object} domain.CorporateCustomer
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /customers/corporate/{id} [put]
func (h *CustomerHandler) UpdateCorporate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.CreateCorporateCustomerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	corp, err := h.customerService.UpdateCorporate(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update corporate customer")
		return
	}

	respondJSON(w, http.StatusOK, corp)
}

// DeleteCorporate godoc
// @Summary Delete corporate customer
// @Tags Customers
// @Param id path string true "Corporate customer ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /customers/corporate/{id} [delete]
func (h *CustomerHandler) DeleteCorporate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.customerService.DeleteCorporate(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete corporate customer")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
