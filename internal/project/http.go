package project

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"cohort-service/internal/httputil"
	"cohort-service/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewHandler(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
		metrics:  metrics,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/projects", func(r chi.Router) {
		r.Post("/", h.CreateProject)
		r.Get("/", h.GetAllProjects)
		r.Get("/{id}", h.GetProject)
		r.Put("/{id}", h.UpdateProject)
		r.Delete("/{id}", h.DeleteProject)
	})
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || h.validate.Struct(&input) != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	h.logger.InfoContext(r.Context(), "creating project", "name", input.ProjectName)
	created, err := h.service.CreateProject(r.Context(), input.Row())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.metrics.RecordProjectCreated(r.Context())

	httputil.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetAllProjects(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "fetching all projects")

	projects, err := h.service.GetAllProjects(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	if projects == nil {
		projects = []Project{}
	}

	h.metrics.RecordProjectsListed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, projects)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	h.logger.InfoContext(r.Context(), "fetching project by ID", "id", id)
	project, err := h.service.GetProjectByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.metrics.RecordProjectViewed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, project)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || h.validate.Struct(&input) != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	project := input.Row()
	project.ID = id

	h.logger.InfoContext(r.Context(), "updating project", "id", id, "name", input.ProjectName)
	updated, err := h.service.UpdateProject(r.Context(), project)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.metrics.RecordProjectUpdated(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	h.logger.InfoContext(r.Context(), "deleting project", "id", id)
	if err := h.service.DeleteProject(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.metrics.RecordProjectDeleted(r.Context())

	httputil.RespondNoContent(w)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrProjectNotFound) {
		h.logger.Info("project not found")
		httputil.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}
	if errors.Is(err, ErrInvalidInput) {
		h.logger.Info("invalid input")
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Error("internal error", "error", err)
	httputil.RespondWithError(w, http.StatusInternalServerError, err.Error())
}
