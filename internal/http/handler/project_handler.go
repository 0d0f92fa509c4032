package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/service"
)

const maxPhotoUploadBytes = 32 << 20

// ProjectHandler serves projects with their locations and windows
type ProjectHandler struct {
	projectService *service.ProjectService
	logger         *zap.Logger
}

func NewProjectHandler(projectService *service.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// List godoc
// @Summary List projects
// @Tags Projects
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by project number or name"
// @Param status query string false "Filter by status" Enums(draft, in_progress, completed, cancelled)
// @Param customerId query string false "Filter by customer" format(uuid)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.Project}
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	result, err := h.projectService.List(r.Context(), page, pageSize,
		r.URL.Query().Get("search"),
		domain.ProjectStatus(r.URL.Query().Get("status")),
		optionalUUIDQuery(r, "customerId"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list projects")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get project by ID
// @Description Returns the project with its locations and windows
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} domain.Project
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get project")
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// Create godoc
// @Summary Create project
// @Description Create a project and assign it the next monthly project number
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body domain.CreateProjectRequest true "Project data"
// @Success 201 {object} domain.Project
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	project, err := h.projectService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create project")
		return
	}

	w.Header().Set("Location", "/api/v1/projects/"+project.ID.String())
	respondJSON(w, http.StatusCreated, project)
}

// Update godoc
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param request body domain.UpdateProjectRequest true "Project data"
// @Success 200 {object} domain.Project
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateProjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	project, err := h.projectService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update project")
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// Delete godoc
// @Summary Delete project
// @Tags Projects
// @Param id path string true "Project ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.projectService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete project")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddLocation godoc
// @Summary Add location to project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param request body domain.CreateLocationRequest true "Location data"
// @Success 201 {object} domain.ProjectLocation
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/locations [post]
func (h *ProjectHandler) AddLocation(w http.ResponseWriter, r *http.Request) {
	projectID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.CreateLocationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	location, err := h.projectService.AddLocation(r.Context(), projectID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "add location")
		return
	}

	respondJSON(w, http.StatusCreated, location)
}

// UpdateLocation godoc
// @Summary Update project location
// @Tags Projects
// @Accept json
// @Produce json
// @Param locationId path string true "Location ID" format(uuid)
// @Param request body domain.CreateLocationRequest true "Location data"
// @Success 200 {object} domain.ProjectLocation
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /projects/locations/{locationId} [put]
func (h *ProjectHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	locationID, ok := uuidParam(w, r, "locationId")
	if !ok {
		return
	}

	var req domain.CreateLocationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	location, err := h.projectService.UpdateLocation(r.Context(), locationID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update location")
		return
	}

	respondJSON(w, http.StatusOK, location)
}

// DeleteLocation godoc
// @Summary Delete project location
// @Tags Projects
// @Param locationId path string true "Location ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /projects/locations/{locationId} [delete]
func (h *ProjectHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	locationID, ok := uuidParam(w, r, "locationId")
	if !ok {
		return
	}

	if err := h.projectService.DeleteLocation(r.Context(), locationID); err != nil {
		respondServiceError(w, h.logger, err, "delete location")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddWindow godoc
// @Summary Add window to location
// @Tags Projects
// @Accept json
// @Produce json
// @Param locationId path string true "Location ID" format(uuid)
// @Param request body domain.CreateWindowRequest true "Window data"
// @Success 201 {object} domain.LocationWindow
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /projects/locations/{locationId}/windows [post]
func (h *ProjectHandler) AddWindow(w http.ResponseWriter, r *http.Request) {
	locationID, ok := uuidParam(w, r, "locationId")
	if !ok {
		return
	}

	var req domain.CreateWindowRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	window, err := h.projectService.AddWindow(r.Context(), locationID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "add window")
		return
	}

	respondJSON(w, http.StatusCreated, window)
}

// UpdateWindow godoc
// @Summary Update window
// @Tags Projects
// @Accept json
// @Produce json
// @Param windowId path string true "Window ID" format(uuid)
// @Param request body domain.CreateWindowRequest true "Window data"
// @Success 200 {object} domain.LocationWindow
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /projects/windows/{windowId} [put]
func (h *ProjectHandler) UpdateWindow(w http.ResponseWriter, r *http.Request) {
	windowID, ok := uuidParam(w, r, "windowId")
	if !ok {
		return
	}

	var req domain.CreateWindowRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	window, err := h.projectService.UpdateWindow(r.Context(), windowID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update window")
		return
	}

	respondJSON(w, http.StatusOK, window)
}

// DeleteWindow godoc
// @Summary Delete window
// @Tags Projects
// @Param windowId path string true "Window ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /projects/windows/{windowId} [delete]
func (h *ProjectHandler) DeleteWindow(w http.ResponseWriter, r *http.Request) {
	windowID, ok := uuidParam(w, r, "windowId")
	if !ok {
		return
	}

	if err := h.projectService.DeleteWindow(r.Context(), windowID); err != nil {
		respondServiceError(w, h.logger, err, "delete window")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadWindowPhoto godoc
// @Summary Upload window photo
// @Description Attach a photo to a window, multipart field name "file"
// @Tags Projects
// @Accept multipart/form-data
// @Produce json
// @Param windowId path string true "Window ID" format(uuid)
// @Param file formData file true "Photo file"
// @Success 201 {object} domain.UploadResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /projects/windows/{windowId}/photos [post]
func (h *ProjectHandler) UploadWindowPhoto(w http.ResponseWriter, r *http.Request) {
	windowID, ok := uuidParam(w, r, "windowId")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoUploadBytes)
	if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Form field 'file' is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	upload, err := h.projectService.UploadWindowPhoto(r.Context(), windowID, header.Filename, contentType, file)
	if err != nil {
		respondServiceError(w, h.logger, err, "upload window photo")
		return
	}

	respondJSON(w, http.StatusCreated, upload)
}
