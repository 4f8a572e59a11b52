// Package service implements the enrollment ledger operations: bulk
// enrollment (all-or-nothing, idempotent per id), single enrollment
// (duplicate is an error), and the query surface.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"coursehub/internal/audit"
	catalog "coursehub/internal/catalog/models"
	"coursehub/internal/enrollment/store"
	"coursehub/internal/platform/metrics"
	dErrors "coursehub/pkg/domain-errors"
	"coursehub/pkg/platform/sentinel"
	pstrings "coursehub/pkg/platform/strings"
)

// CourseResolver is the slice of the catalog the ledger needs: existence
// checks and population. The ledger treats courses as read-only foreign
// data.
type CourseResolver interface {
	FindCourseByID(ctx context.Context, id string) (*catalog.Course, error)
	FindCoursesByIDs(ctx context.Context, ids []string) ([]*catalog.Course, error)
}

// Service orchestrates course validation and ledger mutation.
type Service struct {
	ledger  store.Ledger
	courses CourseResolver
	metrics *metrics.Metrics
	audit   *audit.Publisher
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option adjusts optional Service dependencies.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAudit(publisher *audit.Publisher) Option {
	return func(s *Service) { s.audit = publisher }
}

// New builds the enrollment service.
func New(ledger store.Ledger, courses CourseResolver, opts ...Option) (*Service, error) {
	if ledger == nil {
		return nil, fmt.Errorf("enrollment ledger is required")
	}
	if courses == nil {
		return nil, fmt.Errorf("course resolver is required")
	}

	svc := &Service{
		ledger:  ledger,
		courses: courses,
		logger:  slog.Default(),
		tracer:  otel.Tracer("coursehub/enrollment"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// BulkEnroll unions the requested course ids into the owner's set.
// All-or-nothing: if any id does not resolve, nothing is written. Duplicate
// ids are absorbed silently, so repeated calls with overlapping sets are
// idempotent.
func (s *Service) BulkEnroll(ctx context.Context, ownerID string, courseIDs []string) error {
	ctx, span := s.tracer.Start(ctx, "enrollment.BulkEnroll",
		trace.WithAttributes(
			attribute.String("owner_id", ownerID),
			attribute.Int("course_count", len(courseIDs)),
		))
	defer span.End()

	if ownerID == "" {
		return s.failBulk(span, dErrors.New(dErrors.CodeBadRequest, "owner id is required"))
	}
	if len(courseIDs) == 0 {
		return s.failBulk(span, dErrors.New(dErrors.CodeBadRequest, "invalid course ids provided"))
	}

	unique := pstrings.DedupeAndTrim(courseIDs)
	if len(unique) == 0 {
		return s.failBulk(span, dErrors.New(dErrors.CodeBadRequest, "invalid course ids provided"))
	}
	resolved, err := s.courses.FindCoursesByIDs(ctx, unique)
	if err != nil {
		return s.failBulk(span, err)
	}
	if len(resolved) != len(unique) {
		return s.failBulk(span, dErrors.New(dErrors.CodeNotFound, "some courses were not found"))
	}

	if err := s.ledger.AddCourses(ctx, ownerID, unique); err != nil {
		return s.failBulk(span, dErrors.Wrap(err, dErrors.CodeInternal, "could not record enrollment"))
	}

	if s.metrics != nil {
		s.metrics.IncEnrollment("bulk", "success")
	}
	s.audit.Emit(ctx, audit.Event{
		Actor:   ownerID,
		Action:  audit.ActionBulkEnrollment,
		Subject: fmt.Sprintf("%d courses", len(unique)),
	})
	return nil
}

func (s *Service) failBulk(span trace.Span, err error) error {
	span.RecordError(err)
	if s.metrics != nil {
		s.metrics.IncEnrollment("bulk", string(dErrors.CodeOf(err)))
	}
	return err
}

// EnrollOne adds a single course to the owner's set. Unlike the bulk path,
// re-enrollment is an explicit error; both behaviors are intentional and
// callers depend on the difference.
func (s *Service) EnrollOne(ctx context.Context, ownerID, courseID string) (*catalog.Course, error) {
	ctx, span := s.tracer.Start(ctx, "enrollment.EnrollOne",
		trace.WithAttributes(
			attribute.String("owner_id", ownerID),
			attribute.String("course_id", courseID),
		))
	defer span.End()

	if courseID == "" {
		return nil, s.failOne(span, dErrors.New(dErrors.CodeBadRequest, "course id is required"))
	}

	course, err := s.courses.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, s.failOne(span, err)
	}

	// Conditional insert, not read-then-write: the store reports an already
	// present id, so two racing enrollments for one owner cannot both win.
	if err := s.ledger.AddCourse(ctx, ownerID, courseID); err != nil {
		if errors.Is(err, sentinel.ErrDuplicate) {
			return nil, s.failOne(span, dErrors.New(dErrors.CodeAlreadyEnrolled, "already enrolled in this course"))
		}
		return nil, s.failOne(span, dErrors.Wrap(err, dErrors.CodeInternal, "could not record enrollment"))
	}

	if s.metrics != nil {
		s.metrics.IncEnrollment("single", "success")
	}
	s.audit.Emit(ctx, audit.Event{
		Actor:   ownerID,
		Action:  audit.ActionEnrollmentAdded,
		Subject: courseID,
	})
	return course, nil
}

func (s *Service) failOne(span trace.Span, err error) error {
	span.RecordError(err)
	if s.metrics != nil {
		s.metrics.IncEnrollment("single", string(dErrors.CodeOf(err)))
	}
	return err
}

// ListEnrolled returns the owner's enrolled course ids. An owner with no
// record gets an empty list, not an error.
func (s *Service) ListEnrolled(ctx context.Context, ownerID string) ([]string, error) {
	courseIDs, err := s.ledger.ListCourses(ctx, ownerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not list enrollments")
	}
	return courseIDs, nil
}

// ListEnrolledCourses returns the owner's enrollments populated with course
// records. Ids whose course has since disappeared are skipped rather than
// failing the whole read.
func (s *Service) ListEnrolledCourses(ctx context.Context, ownerID string) ([]*catalog.Course, error) {
	courseIDs, err := s.ListEnrolled(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(courseIDs) == 0 {
		return []*catalog.Course{}, nil
	}
	courses, err := s.courses.FindCoursesByIDs(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// IsEnrolled reports whether the owner's set contains the course. False for
// owners with no record.
func (s *Service) IsEnrolled(ctx context.Context, ownerID, courseID string) (bool, error) {
	enrolled, err := s.ledger.IsEnrolled(ctx, ownerID, courseID)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "could not check enrollment")
	}
	return enrolled, nil
}
