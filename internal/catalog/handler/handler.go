package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	catalogModel "coursehub/internal/catalog/models"
	"coursehub/internal/platform/middleware"
	dErrors "coursehub/pkg/domain-errors"
	"coursehub/pkg/platform/httputil"
)

// Service defines the catalog operations the handler needs.
type Service interface {
	Register(ctx context.Context, req catalogModel.RegisterInstructorRequest) (*catalogModel.Instructor, error)
	Login(ctx context.Context, req catalogModel.LoginRequest) (string, error)
	GetInstructor(ctx context.Context, id string) (*catalogModel.Instructor, error)
	ListInstructors(ctx context.Context) ([]*catalogModel.Instructor, error)
	SearchInstructors(ctx context.Context, name string) ([]*catalogModel.Instructor, error)
	UpdateInstructor(ctx context.Context, id string, req catalogModel.UpdateInstructorRequest) (*catalogModel.Instructor, error)
	DeleteInstructor(ctx context.Context, id string) error
	CreateCourse(ctx context.Context, instructorID string, req catalogModel.CreateCourseRequest) (*catalogModel.Course, error)
	UpdateCourse(ctx context.Context, id string, req catalogModel.UpdateCourseRequest) (*catalogModel.Course, error)
	ViewCourse(ctx context.Context, id string) (*catalogModel.Course, error)
	ListCourses(ctx context.Context) ([]*catalogModel.Course, error)
	CoursesByInstructor(ctx context.Context, instructorID string) ([]*catalogModel.Course, error)
	SearchCourses(ctx context.Context, name string) ([]*catalogModel.Course, error)
}

// Handler exposes the instructor and course CRUD endpoints. Route names are
// kept from the original public API.
type Handler struct {
	logger   *slog.Logger
	catalog  Service
	verifier middleware.TokenVerifier
}

// New creates a catalog Handler.
func New(catalog Service, verifier middleware.TokenVerifier, logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		catalog:  catalog,
		verifier: verifier,
	}
}

// Register mounts the catalog routes. Only course creation requires a token;
// the rest of the CRUD surface is open, as in the original API.
func (h *Handler) Register(r chi.Router) {
	r.Post("/createInstructor", h.handleRegister)
	r.Post("/login", h.handleLogin)
	r.Get("/getAllInstructors", h.handleListInstructors)
	r.Get("/getOneInstructorById/{id}", h.handleGetInstructor)
	r.Get("/searchAllInstructorByNameFilter/{name}", h.handleSearchInstructors)
	r.Put("/updateInstructor/{id}", h.handleUpdateInstructor)
	r.Delete("/deleteInstructorById/{id}", h.handleDeleteInstructor)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.verifier, h.logger))
		r.Post("/createcourse", h.handleCreateCourse)
	})
	r.Put("/update/{id}", h.handleUpdateCourse)
	r.Get("/mycourses/{instructorId}", h.handleCoursesByInstructor)
	r.Get("/searchcourses", h.handleSearchCourses)
	r.Get("/getAllCourses", h.handleListCourses)
	r.Get("/course/{courseId}", h.handleViewCourse)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req catalogModel.RegisterInstructorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if _, err := h.catalog.Register(r.Context(), req); err != nil {
		h.logFailure(r.Context(), "register failed", err, "email", req.Email)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"msg": "instructor registered successfully",
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req catalogModel.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	signed, err := h.catalog.Login(r.Context(), req)
	if err != nil {
		h.logFailure(r.Context(), "login failed", err, "email", req.Email)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"msg":   "login successful",
		"token": signed,
	})
}

func (h *Handler) handleListInstructors(w http.ResponseWriter, r *http.Request) {
	instructors, err := h.catalog.ListInstructors(r.Context())
	if err != nil {
		h.logFailure(r.Context(), "list instructors failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, instructors)
}

func (h *Handler) handleGetInstructor(w http.ResponseWriter, r *http.Request) {
	instructor, err := h.catalog.GetInstructor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logFailure(r.Context(), "get instructor failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, instructor)
}

func (h *Handler) handleSearchInstructors(w http.ResponseWriter, r *http.Request) {
	instructors, err := h.catalog.SearchInstructors(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.logFailure(r.Context(), "search instructors failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, instructors)
}

func (h *Handler) handleUpdateInstructor(w http.ResponseWriter, r *http.Request) {
	var req catalogModel.UpdateInstructorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	instructor, err := h.catalog.UpdateInstructor(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.logFailure(r.Context(), "update instructor failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, struct {
		Msg  string                  `json:"msg"`
		Data *catalogModel.Instructor `json:"data"`
	}{
		Msg:  "instructor updated successfully",
		Data: instructor,
	})
}

func (h *Handler) handleDeleteInstructor(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteInstructor(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logFailure(r.Context(), "delete instructor failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"msg": "instructor deleted successfully",
	})
}

func (h *Handler) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	instructorID := middleware.GetSubjectID(ctx)

	var req catalogModel.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	course, err := h.catalog.CreateCourse(ctx, instructorID, req)
	if err != nil {
		h.logFailure(ctx, "create course failed", err, "instructor_id", instructorID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, struct {
		Message string               `json:"message"`
		Course  *catalogModel.Course `json:"course"`
	}{
		Message: "course created successfully",
		Course:  course,
	})
}

func (h *Handler) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req catalogModel.UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	course, err := h.catalog.UpdateCourse(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.logFailure(r.Context(), "update course failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, struct {
		Message string               `json:"message"`
		Course  *catalogModel.Course `json:"course"`
	}{
		Message: "course updated successfully",
		Course:  course,
	})
}

func (h *Handler) handleCoursesByInstructor(w http.ResponseWriter, r *http.Request) {
	courses, err := h.catalog.CoursesByInstructor(r.Context(), chi.URLParam(r, "instructorId"))
	if err != nil {
		h.logFailure(r.Context(), "list instructor courses failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"courses": courses})
}

func (h *Handler) handleSearchCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.catalog.SearchCourses(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		h.logFailure(r.Context(), "search courses failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"courses": courses})
}

func (h *Handler) handleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.catalog.ListCourses(r.Context())
	if err != nil {
		h.logFailure(r.Context(), "list courses failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"courses": courses})
}

func (h *Handler) handleViewCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.catalog.ViewCourse(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		h.logFailure(r.Context(), "view course failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"course": course})
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args,
		"error", err.Error(),
		"request_id", middleware.GetRequestID(ctx),
	)
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, args...)
		return
	}
	h.logger.WarnContext(ctx, msg, args...)
}
