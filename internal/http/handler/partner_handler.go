package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/service"
)

// PartnerHandler serves referrers and partner stores
type PartnerHandler struct {
	partnerService *service.PartnerService
	logger         *zap.Logger
}

func NewPartnerHandler(partnerService *service.PartnerService, logger *zap.Logger) *PartnerHandler {
	return &PartnerHandler{
		partnerService: partnerService,
		logger:         logger,
	}
}

// ListReferrers godoc
// @Summary List referrers
// @Tags Partners
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by name or phone"
// @Param activeOnly query bool false "Only active referrers"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.Referrer}
// @Security BearerAuth
// @Router /partners/referrers [get]
func (h *PartnerHandler) ListReferrers(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	result, err := h.partnerService.ListReferrers(r.Context(), page, pageSize,
		r.URL.Query().Get("search"), boolQuery(r, "activeOnly"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list referrers")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetReferrer godoc
// @Summary Get referrer by ID
// @Tags Partners
// @Produce json
// @Param id path string true "Referrer ID" format(uuid)
// @Success 200 {object} domain.Referrer
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /partners/referrers/{id} [get]
func (h *PartnerHandler) GetReferrer(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	referrer, err := h.partnerService.GetReferrerByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get referrer")
		return
	}

	respondJSON(w, http.StatusOK, referrer)
}

// CreateReferrer godoc
// @Summary Create referrer
// @Tags Partners
// @Accept json
// @Produce json
// @Param request body domain.CreateReferrerRequest true "Referrer data"
// @Success 201 {object} domain.Referrer
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /partners/referrers [post]
func (h *PartnerHandler) CreateReferrer(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateReferrerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	referrer, err := h.partnerService.CreateReferrer(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create referrer")
		return
	}

	respondJSON(w, http.StatusCreated, referrer)
}

// UpdateReferrer godoc
// @Summary Update referrer
// @Tags Partners
// @Accept json
// @Produce json
// @Param id path string true "Referrer ID" format(uuid)
// @Param request body domain.CreateReferrerRequest true "Referrer data"
// @Success 200 {object} domain.Referrer
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /partners/referrers/{id} [put]
func (h *PartnerHandler) UpdateReferrer(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.CreateReferrerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	referrer, err := h.partnerService.UpdateReferrer(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update referrer")
		return
	}

	respondJSON(w, http.StatusOK, referrer)
}

// DeleteReferrer godoc
// @Summary Delete referrer
// @Tags Partners
// @Param id path string true "Referrer ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /partners/referrers/{id} [delete]
func (h *PartnerHandler) DeleteReferrer(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.partnerService.DeleteReferrer(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete referrer")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListStores godoc
// @Summary List partner stores
// @Tags Partners
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by name or branch"
// @Param activeOnly query bool false "Only active stores"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.Store}
// @Security BearerAuth
// @Router /partners/stores [get]
func (h *PartnerHandler) ListStores(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	result, err := h.partnerService.ListStores(r.Context(), page, pageSize,
		r.URL.Query().Get("search"), boolQuery(r, "activeOnly"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list stores")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetStore godoc
// @Summary Get store by ID
// @Tags Partners
// @Produce json
// @Param id path string true "Store ID" format(uuid)
// @Success 200 {object} domain.Store
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /partners/stores/{id} [get]
func (h *PartnerHandler) GetStore(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	store, err := h.partnerService.GetStoreByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get store")
		return
	}

	respondJSON(w, http.StatusOK, store)
}

// CreateStore godoc
// @Summary Create partner store
// @Tags Partners
// @Accept json
// @Produce json
// @Param request body domain.CreateStoreRequest true "Store data"
// @Success 201 {object} domain.Store
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /partners/stores [post]
func (h *PartnerHandler) CreateStore(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateStoreRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	store, err := h.partnerService.CreateStore(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create store")
		return
	}

	respondJSON(w, http.StatusCreated, store)
}

// UpdateStore godoc
// @Summary Update partner store
// @Tags Partners
// @Accept json
// @Produce json
// @Param id path string true "Store ID" format(uuid)
// @Param request body domain.CreateStoreRequest true "Store data"
// @Success 200 {object} domain.Store
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /partners/stores/{id} [put]
func (h *PartnerHandler) UpdateStore(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.CreateStoreRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	store, err := h.partnerService.UpdateStore(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update store")
		return
	}

	respondJSON(w, http.StatusOK, store)
}

// DeleteStore godoc
// @Summary Delete partner store
// @Tags Partners
// @Param id path string true "Store ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /partners/stores/{id} [delete]
func (h *PartnerHandler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.partnerService.DeleteStore(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete store")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
