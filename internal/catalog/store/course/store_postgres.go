package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"coursehub/internal/catalog/models"
	"coursehub/pkg/platform/sentinel"
)

// PostgresStore persists courses in PostgreSQL via database/sql.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed course store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const courseColumns = "id, title, description, instructor_id, duration, technology, price, views, created_at, updated_at"

func (s *PostgresStore) Save(ctx context.Context, course *models.Course) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO courses (id, title, description, instructor_id, duration, technology, price, views, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		course.ID, course.Title, course.Description, course.InstructorID,
		course.Duration, course.Technology, course.Price, course.Views,
		course.CreatedAt, course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save course: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*models.Course, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+courseColumns+" FROM courses WHERE id = $1", id)
	return scanCourse(row)
}

func (s *PostgresStore) FindByIDs(ctx context.Context, ids []string) ([]*models.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+courseColumns+" FROM courses WHERE id = ANY($1) ORDER BY id",
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("find courses by ids: %w", err)
	}
	defer rows.Close()
	return collectCourses(rows)
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Course, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+courseColumns+" FROM courses ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()
	return collectCourses(rows)
}

func (s *PostgresStore) ListByInstructor(ctx context.Context, instructorID string) ([]*models.Course, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+courseColumns+" FROM courses WHERE instructor_id = $1 ORDER BY id", instructorID)
	if err != nil {
		return nil, fmt.Errorf("list courses by instructor: %w", err)
	}
	defer rows.Close()
	return collectCourses(rows)
}

func (s *PostgresStore) SearchByTitle(ctx context.Context, title string) ([]*models.Course, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+courseColumns+" FROM courses WHERE title ILIKE '%' || $1 || '%' ORDER BY id", title)
	if err != nil {
		return nil, fmt.Errorf("search courses: %w", err)
	}
	defer rows.Close()
	return collectCourses(rows)
}

func (s *PostgresStore) Update(ctx context.Context, course *models.Course) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE courses
		SET title = $2, description = $3, duration = $4, technology = $5, price = $6, updated_at = $7
		WHERE id = $1`,
		course.ID, course.Title, course.Description, course.Duration,
		course.Technology, course.Price, course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// IncrementViews bumps the counter in a single UPDATE so concurrent views
// never lose increments.
func (s *PostgresStore) IncrementViews(ctx context.Context, id string) (*models.Course, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE courses SET views = views + 1
		WHERE id = $1
		RETURNING `+courseColumns, id)
	return scanCourse(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID, &course.Title, &course.Description, &course.InstructorID,
		&course.Duration, &course.Technology, &course.Price, &course.Views,
		&course.CreatedAt, &course.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan course: %w", err)
	}
	return &course, nil
}

func collectCourses(rows *sql.Rows) ([]*models.Course, error) {
	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}
	return courses, nil
}
