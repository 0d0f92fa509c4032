package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	logger         *zap.Logger
}

func NewProfileHandler(profileService *service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// List godoc
// @Summary List staff profiles
// @Tags Profiles
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by name or email"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ProfileDTO}
// @Security BearerAuth
// @Router /profiles [get]
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	result, err := h.profileService.List(r.Context(), page, pageSize, r.URL.Query().Get("search"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list profiles")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get profile by ID
// @Tags Profiles
// @Produce json
// @Param id path string true "Profile ID" format(uuid)
// @Success 200 {object} domain.ProfileDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /profiles/{id} [get]
func (h *ProfileHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	profile, err := h.profileService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// Create godoc
// @Summary Create staff profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Param request body domain.CreateProfileRequest true "Profile data"
// @Success 201 {object} domain.ProfileDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Email already in use"
// @Security BearerAuth
// @Router /profiles [post]
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	profile, err := h.profileService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create profile")
		return
	}

	respondJSON(w, http.StatusCreated, profile)
}

// Update godoc
// @Summary Update staff profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Param id path string true "Profile ID" format(uuid)
// @Param request body domain.UpdateProfileRequest true "Profile data"
// @Success 200 {object} domain.ProfileDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /profiles/{id} [put]
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	profile, err := h.profileService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// Delete godoc
// @Summary Delete staff profile
// @Tags Profiles
// @Param id path string true "Profile ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /profiles/{id} [delete]
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.profileService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
