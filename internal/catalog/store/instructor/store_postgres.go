package instructor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"coursehub/internal/catalog/models"
	"coursehub/pkg/platform/sentinel"
)

// PostgresStore persists instructors in PostgreSQL via database/sql.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed instructor store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const instructorColumns = "id, name, email, password_hash, created_at, updated_at"

func (s *PostgresStore) Save(ctx context.Context, instructor *models.Instructor) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO instructors (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		instructor.ID, instructor.Name, instructor.Email, instructor.PasswordHash,
		instructor.CreatedAt, instructor.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrDuplicate
		}
		return fmt.Errorf("save instructor: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*models.Instructor, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+instructorColumns+" FROM instructors WHERE id = $1", id)
	return scanInstructor(row)
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.Instructor, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+instructorColumns+" FROM instructors WHERE email = $1", email)
	return scanInstructor(row)
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Instructor, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+instructorColumns+" FROM instructors ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}
	defer rows.Close()
	return collectInstructors(rows)
}

func (s *PostgresStore) SearchByName(ctx context.Context, name string) ([]*models.Instructor, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+instructorColumns+" FROM instructors WHERE name ILIKE '%' || $1 || '%' ORDER BY id", name)
	if err != nil {
		return nil, fmt.Errorf("search instructors: %w", err)
	}
	defer rows.Close()
	return collectInstructors(rows)
}

func (s *PostgresStore) Update(ctx context.Context, instructor *models.Instructor) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE instructors
		SET name = $2, email = $3, password_hash = $4, updated_at = $5
		WHERE id = $1`,
		instructor.ID, instructor.Name, instructor.Email, instructor.PasswordHash,
		instructor.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrDuplicate
		}
		return fmt.Errorf("update instructor: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update instructor: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM instructors WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete instructor: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete instructor: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInstructor(row rowScanner) (*models.Instructor, error) {
	var instructor models.Instructor
	err := row.Scan(
		&instructor.ID, &instructor.Name, &instructor.Email,
		&instructor.PasswordHash, &instructor.CreatedAt, &instructor.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan instructor: %w", err)
	}
	return &instructor, nil
}

func collectInstructors(rows *sql.Rows) ([]*models.Instructor, error) {
	var instructors []*models.Instructor
	for rows.Next() {
		instructor, err := scanInstructor(rows)
		if err != nil {
			return nil, err
		}
		instructors = append(instructors, instructor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate instructors: %w", err)
	}
	return instructors, nil
}
