// Package service implements catalog business logic: instructor credentials
// and course records. The enrollment service consumes it as its course
// resolver.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"coursehub/internal/audit"
	"coursehub/internal/catalog/models"
	"coursehub/internal/catalog/store"
	"coursehub/internal/lockout"
	"coursehub/internal/platform/metrics"
	"coursehub/internal/token"
	dErrors "coursehub/pkg/domain-errors"
	"coursehub/pkg/email"
	"coursehub/pkg/platform/sentinel"
)

// Service wires catalog stores with the token service for login.
type Service struct {
	instructors store.InstructorStore
	courses     store.CourseStore
	tokens      *token.Service
	metrics     *metrics.Metrics
	audit       *audit.Publisher
	lockout     *lockout.Tracker
	logger      *slog.Logger
	now         func() time.Time
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

// WithLockout enables login throttling after repeated failures.
func WithLockout(tracker *lockout.Tracker) Option {
	return func(s *Service) { s.lockout = tracker }
}

// New builds the catalog service.
func New(instructors store.InstructorStore, courses store.CourseStore, tokens *token.Service, opts ...Option) (*Service, error) {
	if instructors == nil {
		return nil, fmt.Errorf("instructor store is required")
	}
	if courses == nil {
		return nil, fmt.Errorf("course store is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token service is required")
	}

	svc := &Service{
		instructors: instructors,
		courses:     courses,
		tokens:      tokens,
		logger:      slog.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Register creates an instructor with a bcrypt-hashed password. Duplicate
// email is a 400, matching the public API contract.
func (s *Service) Register(ctx context.Context, req models.RegisterInstructorRequest) (*models.Instructor, error) {
	if req.Email == "" || req.Password == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "email and password are required")
	}
	if req.Name == "" {
		req.Name = email.DeriveDisplayName(req.Email)
	}

	if _, err := s.instructors.FindByEmail(ctx, req.Email); err == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "email is already registered")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not check existing registration")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not hash password")
	}

	now := s.now()
	instructor := &models.Instructor{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.instructors.Save(ctx, instructor); err != nil {
		if errors.Is(err, sentinel.ErrDuplicate) {
			return nil, dErrors.New(dErrors.CodeBadRequest, "email is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not save instructor")
	}

	if s.metrics != nil {
		s.metrics.InstructorsRegistered.Inc()
	}
	s.audit.Emit(ctx, audit.Event{
		Actor:   instructor.ID,
		Action:  audit.ActionInstructorRegistered,
		Subject: instructor.Email,
	})
	return instructor, nil
}

// Login verifies credentials and returns a signed identity token. Unknown
// email is reported as not found, a wrong password as unauthorized; the
// original API distinguishes the two and clients depend on it.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	if req.Email == "" || req.Password == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "email and password are required")
	}

	if s.lockout != nil && !s.lockout.Allowed(req.Email) {
		s.countLogin("locked_out")
		return "", dErrors.New(dErrors.CodeRateLimited, "too many failed login attempts, try again later")
	}

	instructor, err := s.instructors.FindByEmail(ctx, req.Email)
	if errors.Is(err, sentinel.ErrNotFound) {
		s.countLogin("unknown_email")
		return "", dErrors.New(dErrors.CodeNotFound, "email not registered")
	}
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not look up instructor")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(instructor.PasswordHash), []byte(req.Password)); err != nil {
		if s.lockout != nil {
			s.lockout.RecordFailure(req.Email)
		}
		s.countLogin("bad_password")
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid password")
	}

	if s.lockout != nil {
		s.lockout.Reset(req.Email)
	}

	signed, err := s.tokens.Issue(instructor.ID, instructor.Email)
	if err != nil {
		return "", err
	}

	s.countLogin("success")
	s.audit.Emit(ctx, audit.Event{
		Actor:   instructor.ID,
		Action:  audit.ActionInstructorLogin,
		Subject: instructor.Email,
	})
	return signed, nil
}

func (s *Service) countLogin(outcome string) {
	if s.metrics != nil {
		s.metrics.IncLogin(outcome)
	}
}

// GetInstructor returns one instructor by id.
func (s *Service) GetInstructor(ctx context.Context, id string) (*models.Instructor, error) {
	instructor, err := s.instructors.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "instructor not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not load instructor")
	}
	return instructor, nil
}

// FindInstructorByEmail is the credential-store lookup used by login flows.
func (s *Service) FindInstructorByEmail(ctx context.Context, email string) (*models.Instructor, error) {
	instructor, err := s.instructors.FindByEmail(ctx, email)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "instructor not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not load instructor")
	}
	return instructor, nil
}

// ListInstructors returns all instructors.
func (s *Service) ListInstructors(ctx context.Context) ([]*models.Instructor, error) {
	instructors, err := s.instructors.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not list instructors")
	}
	return instructors, nil
}

// SearchInstructors filters by case-insensitive name substring.
func (s *Service) SearchInstructors(ctx context.Context, name string) ([]*models.Instructor, error) {
	instructors, err := s.instructors.SearchByName(ctx, name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not search instructors")
	}
	if len(instructors) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "instructor not found")
	}
	return instructors, nil
}

// UpdateInstructor applies the non-nil fields of req.
func (s *Service) UpdateInstructor(ctx context.Context, id string, req models.UpdateInstructorRequest) (*models.Instructor, error) {
	instructor, err := s.GetInstructor(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		instructor.Name = *req.Name
	}
	if req.Email != nil {
		instructor.Email = *req.Email
	}
	instructor.UpdatedAt = s.now()

	if err := s.instructors.Update(ctx, instructor); err != nil {
		if errors.Is(err, sentinel.ErrDuplicate) {
			return nil, dErrors.New(dErrors.CodeBadRequest, "email is already registered")
		}
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "instructor not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not update instructor")
	}
	return instructor, nil
}

// DeleteInstructor removes an instructor.
func (s *Service) DeleteInstructor(ctx context.Context, id string) error {
	err := s.instructors.Delete(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "instructor not found")
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not delete instructor")
	}
	return nil
}

// CreateCourse creates a course owned by the authenticated instructor.
func (s *Service) CreateCourse(ctx context.Context, instructorID string, req models.CreateCourseRequest) (*models.Course, error) {
	if instructorID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "instructor id is missing")
	}
	if req.Title == "" || req.Description == "" || req.Duration == "" || req.Technology == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "all fields are required")
	}
	if req.Price < 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "price cannot be negative")
	}

	now := s.now()
	course := &models.Course{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		InstructorID: instructorID,
		Duration:     req.Duration,
		Technology:   req.Technology,
		Price:        req.Price,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.courses.Save(ctx, course); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not save course")
	}

	if s.metrics != nil {
		s.metrics.CoursesCreated.Inc()
	}
	s.audit.Emit(ctx, audit.Event{
		Actor:   instructorID,
		Action:  audit.ActionCourseCreated,
		Subject: course.ID,
		Detail:  course.Title,
	})
	return course, nil
}

// UpdateCourse applies the non-nil fields of req.
func (s *Service) UpdateCourse(ctx context.Context, id string, req models.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.FindCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}
	if req.Technology != nil {
		course.Technology = *req.Technology
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, dErrors.New(dErrors.CodeBadRequest, "price cannot be negative")
		}
		course.Price = *req.Price
	}
	course.UpdatedAt = s.now()

	if err := s.courses.Update(ctx, course); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "course not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not update course")
	}
	return course, nil
}

// FindCourseByID returns one course without touching the view counter.
func (s *Service) FindCourseByID(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "course not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not load course")
	}
	return course, nil
}

// FindCoursesByIDs returns the subset of ids that exist. The enrollment
// service compares counts to detect missing courses.
func (s *Service) FindCoursesByIDs(ctx context.Context, ids []string) ([]*models.Course, error) {
	courses, err := s.courses.FindByIDs(ctx, ids)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not resolve courses")
	}
	return courses, nil
}

// ViewCourse returns a course and bumps its view counter in one atomic step.
func (s *Service) ViewCourse(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.courses.IncrementViews(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "course not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not load course")
	}
	return course, nil
}

// ListCourses returns the whole catalog.
func (s *Service) ListCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not list courses")
	}
	return courses, nil
}

// CoursesByInstructor returns the instructor's courses; none is a 404 to
// match the original API.
func (s *Service) CoursesByInstructor(ctx context.Context, instructorID string) ([]*models.Course, error) {
	if instructorID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "instructor id is required")
	}
	courses, err := s.courses.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not list courses")
	}
	if len(courses) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "no courses found for this instructor")
	}
	return courses, nil
}

// SearchCourses filters by case-insensitive title substring.
func (s *Service) SearchCourses(ctx context.Context, name string) ([]*models.Course, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "course name is required for search")
	}
	courses, err := s.courses.SearchByTitle(ctx, name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not search courses")
	}
	if len(courses) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "no courses found with that name")
	}
	return courses, nil
}
