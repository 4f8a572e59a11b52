package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	catalog "coursehub/internal/catalog/models"
	enrollModel "coursehub/internal/enrollment/models"
	"coursehub/internal/platform/middleware"
	dErrors "coursehub/pkg/domain-errors"
	"coursehub/pkg/platform/httputil"
)

// Service defines the enrollment operations the handler needs.
type Service interface {
	BulkEnroll(ctx context.Context, ownerID string, courseIDs []string) error
	EnrollOne(ctx context.Context, ownerID, courseID string) (*catalog.Course, error)
	ListEnrolled(ctx context.Context, ownerID string) ([]string, error)
	ListEnrolledCourses(ctx context.Context, ownerID string) ([]*catalog.Course, error)
	IsEnrolled(ctx context.Context, ownerID, courseID string) (bool, error)
}

// Handler exposes the enrollment endpoints.
type Handler struct {
	logger     *slog.Logger
	enrollment Service
	verifier   middleware.TokenVerifier
}

// New creates an enrollment Handler.
func New(enrollment Service, verifier middleware.TokenVerifier, logger *slog.Logger) *Handler {
	return &Handler{
		logger:     logger,
		enrollment: enrollment,
		verifier:   verifier,
	}
}

// Register mounts the enrollment routes. The single-enroll surface acts on
// the token subject; the legacy bulk surface takes an explicit owner path
// parameter and only requires that the caller holds any valid token — there
// is deliberately no ownership check, matching the original API.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.verifier, h.logger))
		r.Post("/enroll", h.handleEnrollOne)
		r.Get("/getEnrolledCourses", h.handleGetEnrolledCourses)
		r.Get("/check-enrollment/{courseId}", h.handleCheckEnrollment)
		r.Post("/{ownerId}/enroll", h.handleBulkEnroll)
	})

	// The populated listing predates the token surface and stays open.
	r.Get("/{ownerId}/courses", h.handleOwnerCourses)
}

func (h *Handler) handleBulkEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := chi.URLParam(r, "ownerId")

	var req enrollModel.BulkEnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.enrollment.BulkEnroll(ctx, ownerID, req.CourseIDs); err != nil {
		h.logFailure(ctx, "bulk enroll failed", err, "owner_id", ownerID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, enrollModel.MessageResponse{
		Message: "successfully enrolled in courses",
	})
}

func (h *Handler) handleEnrollOne(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := middleware.GetSubjectID(ctx)

	var req enrollModel.EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	course, err := h.enrollment.EnrollOne(ctx, ownerID, req.CourseID)
	if err != nil {
		h.logFailure(ctx, "enroll failed", err, "owner_id", ownerID, "course_id", req.CourseID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, struct {
		Message string          `json:"message"`
		Course  *catalog.Course `json:"course"`
	}{
		Message: "successfully enrolled in the course",
		Course:  course,
	})
}

func (h *Handler) handleGetEnrolledCourses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := middleware.GetSubjectID(ctx)

	courseIDs, err := h.enrollment.ListEnrolled(ctx, ownerID)
	if err != nil {
		h.logFailure(ctx, "list enrolled failed", err, "owner_id", ownerID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, enrollModel.EnrolledIDsResponse{
		EnrolledCourses: courseIDs,
	})
}

func (h *Handler) handleOwnerCourses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := chi.URLParam(r, "ownerId")

	courses, err := h.enrollment.ListEnrolledCourses(ctx, ownerID)
	if err != nil {
		h.logFailure(ctx, "list enrolled courses failed", err, "owner_id", ownerID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, enrollModel.EnrolledCoursesResponse{
		EnrolledCourses: courses,
	})
}

func (h *Handler) handleCheckEnrollment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := middleware.GetSubjectID(ctx)
	courseID := chi.URLParam(r, "courseId")

	enrolled, err := h.enrollment.IsEnrolled(ctx, ownerID, courseID)
	if err != nil {
		h.logFailure(ctx, "check enrollment failed", err, "owner_id", ownerID, "course_id", courseID)
		httputil.WriteError(w, err)
		return
	}

	message := "Not enrolled"
	if enrolled {
		message = "Already enrolled"
	}
	httputil.WriteJSON(w, http.StatusOK, enrollModel.CheckEnrollmentResponse{
		Enrolled: enrolled,
		Message:  message,
	})
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
