package student

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"cohort-service/internal/httputil"
	"cohort-service/internal/metrics"
	"cohort-service/internal/project"

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
	router.Route("/students", func(r chi.Router) {
		r.Post("/", h.CreateStudent)
		r.Get("/", h.GetAllStudents)
		r.Get("/{id}", h.GetStudent)
		r.Put("/{id}", h.UpdateStudent)
		r.Delete("/{id}", h.DeleteStudent)
	})
	router.Get("/project_students/{id}", h.GetProjectStudents)
}

func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || h.validate.Struct(&input) != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	h.logger.InfoContext(r.Context(), "creating student", "email", input.Email)
	created, err := h.service.CreateStudent(r.Context(), input.Row())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.metrics.RecordStudentCreated(r.Context())

	httputil.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetAllStudents(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "fetching all students")

	students, err := h.service.GetAllStudents(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	if students == nil {
		students = []Student{}
	}

	h.metrics.RecordStudentsListed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, students)
}

func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	h.logger.InfoContext(r.Context(), "fetching student by ID", "id", id)
	student, err := h.service.GetStudentByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.metrics.RecordStudentViewed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, student)
}

func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || h.validate.Struct(&input) != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	student := input.Row()
	student.ID = id

	h.logger.InfoContext(r.Context(), "updating student", "id", id, "email", input.Email)
	updated, err := h.service.UpdateStudent(r.Context(), student)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.metrics.RecordStudentUpdated(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	h.logger.InfoContext(r.Context(), "deleting student", "id", id)
	if err := h.service.DeleteStudent(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.metrics.RecordStudentDeleted(r.Context())

	httputil.RespondNoContent(w)
}

type projectStudentsResponse struct {
	*project.Project
	Students []Student `json:"students"`
}

func (h *Handler) GetProjectStudents(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	h.logger.InfoContext(r.Context(), "fetching project with students", "project_id", id)
	p, students, err := h.service.GetProjectStudents(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, projectStudentsResponse{
		Project:  p,
		Students: students,
	})
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	var refErr *ProjectReferenceError
	if errors.As(err, &refErr) {
		h.logger.Info("invalid project reference", "project_id", refErr.ProjectID)
		httputil.RespondWithError(w, http.StatusBadRequest, refErr.Error())
		return
	}
	if errors.Is(err, ErrStudentNotFound) {
		h.logger.Info("student not found")
		httputil.RespondWithError(w, http.StatusNotFound, "Student not found")
		return
	}
	if errors.Is(err, project.ErrProjectNotFound) {
		h.logger.Info("project not found")
		httputil.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}
	if errors.Is(err, ErrEmailTaken) {
		h.logger.Info("duplicate email")
		httputil.RespondWithError(w, http.StatusConflict, err.Error())
		return
	}
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, project.ErrInvalidInput) {
		h.logger.Info("invalid input")
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Error("internal error", "error", err)
	httputil.RespondWithError(w, http.StatusInternalServerError, err.Error())
}
