package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/service"
)

// CatalogHandler serves product categories, products and price tiers
type CatalogHandler struct {
	catalogService *service.CatalogService
	logger         *zap.Logger
}

func NewCatalogHandler(catalogService *service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListCategories godoc
// @Summary List product categories
// @Tags Catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by name"
// @Param activeOnly query bool false "Only active categories"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ProductCategory}
// @Security BearerAuth
// @Router /catalog/categories [get]
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	result, err := h.catalogService.ListCategories(r.Context(), page, pageSize,
		r.URL.Query().Get("search"), boolQuery(r, "activeOnly"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list categories")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetCategory godoc
// @Summary Get category by ID
// @Tags Catalog
// @Produce json
// @Param id path string true "Category ID" format(uuid)
// @Success 200 {object} domain.ProductCategory
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /catalog/categories/{id} [get]
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	category, err := h.catalogService.GetCategoryByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get category")
		return
	}

	respondJSON(w, http.StatusOK, category)
}

// CreateCategory godoc
// @Summary Create product category
// @Description Create a category carrying the pricing method applied to its products
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body domain.CreateCategoryRequest true "Category data"
// @Success 201 {object} domain.ProductCategory
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /catalog/categories [post]
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	category, err := h.catalogService.CreateCategory(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create category")
		return
	}

	respondJSON(w, http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary Update product category
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Category ID" format(uuid)
// @Param request body domain.UpdateCategoryRequest true "Category data"
// @Success 200 {object} domain.ProductCategory
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /catalog/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateCategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	category, err := h.catalogService.UpdateCategory(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update category")
		return
	}

	respondJSON(w, http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete product category
// @Description Fails with 409 while the category still has products
// @Tags Catalog
// @Param id path string true "Category ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /catalog/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteCategory(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListProducts godoc
// @Summary List products
// @Tags Catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by name or code"
// @Param categoryId query string false "Filter by category" format(uuid)
// @Param activeOnly query bool false "Only active products"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.Product}
// @Security BearerAuth
// @Router /catalog/products [get]
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	result, err := h.catalogService.ListProducts(r.Context(), page, pageSize,
		r.URL.Query().Get("search"), optionalUUIDQuery(r, "categoryId"), boolQuery(r, "activeOnly"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list products")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetProduct godoc
// @Summary Get product by ID
// @Description Returns the product with its category and price tiers
// @Tags Catalog
// @Produce json
// @Param id path string true "Product ID" format(uuid)
// @Success 200 {object} domain.Product
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /catalog/products/{id} [get]
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProductByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// CreateProduct godoc
// @Summary Create product
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body domain.CreateProductRequest true "Product data"
// @Success 201 {object} domain.Product
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /catalog/products [post]
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.catalogService.CreateProduct(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create product")
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

// UpdateProduct godoc
// @Summary Update product
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Product ID" format(uuid)
// @Param request body domain.UpdateProductRequest true "Product data"
// @Success 200 {object} domain.Product
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /catalog/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.catalogService.UpdateProduct(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// DeleteProduct godoc
// @Summary Delete product
// @Tags Catalog
// @Param id path string true "Product ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /catalog/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReplaceTiers godoc
// @Summary Replace product price tiers
// @Description Replace the full width-tier price table for a product
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Product ID" format(uuid)
// @Param request body []domain.CreatePriceTierRequest true "Price tiers"
// @Success 200 {array} domain.ProductPriceTier
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /catalog/products/{id}/tiers [put]
func (h *CatalogHandler) ReplaceTiers(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var tiers []domain.CreatePriceTierRequest
	if err := json.NewDecoder(r.Body).Decode(&tiers); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Var(tiers, "dive"); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.catalogService.ReplaceTiers(r.Context(), id, tiers)
	if err != nil {
		respondServiceError(w, h.logger, err, "replace price tiers")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
