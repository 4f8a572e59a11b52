// Package store defines the persistence contracts for the catalog. Memory
// and postgres implementations live in subpackages; both return sentinel
// errors so the service layer can translate them uniformly.
package store

import (
	"context"

	"coursehub/internal/catalog/models"
)

// InstructorStore persists instructor credentials and profile data.
type InstructorStore interface {
	Save(ctx context.Context, instructor *models.Instructor) error
	FindByID(ctx context.Context, id string) (*models.Instructor, error)
	FindByEmail(ctx context.Context, email string) (*models.Instructor, error)
	List(ctx context.Context) ([]*models.Instructor, error)
	SearchByName(ctx context.Context, name string) ([]*models.Instructor, error)
	Update(ctx context.Context, instructor *models.Instructor) error
	Delete(ctx context.Context, id string) error
}

// CourseStore persists course records.
type CourseStore interface {
	Save(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id string) (*models.Course, error)
	// FindByIDs returns only the courses that exist; callers detect missing
	// ids by comparing result count against the requested count.
	FindByIDs(ctx context.Context, ids []string) ([]*models.Course, error)
	List(ctx context.Context) ([]*models.Course, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]*models.Course, error)
	SearchByTitle(ctx context.Context, title string) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	// IncrementViews bumps the view counter atomically and returns the
	// updated course.
	IncrementViews(ctx context.Context, id string) (*models.Course, error)
}
