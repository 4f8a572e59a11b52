package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"coursehub/pkg/platform/sentinel"
)

// PostgresLedger persists the enrollment set as one row per
// (owner_id, course_id), with the primary key carrying the uniqueness
// invariant. ON CONFLICT DO NOTHING is the atomic set-add primitive.
type PostgresLedger struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed ledger.
func NewPostgres(pool *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{pool: pool}
}

// Schema creates the ledger table. Called by dev tooling and integration
// tests; production runs migrations out of band.
const Schema = `
CREATE TABLE IF NOT EXISTS enrollments (
	owner_id    TEXT        NOT NULL,
	course_id   TEXT        NOT NULL,
	enrolled_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (owner_id, course_id)
)`

func (l *PostgresLedger) AddCourse(ctx context.Context, ownerID, courseID string) error {
	tag, err := l.pool.Exec(ctx, `
		INSERT INTO enrollments (owner_id, course_id, enrolled_at)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`,
		ownerID, courseID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("add enrollment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrDuplicate
	}
	return nil
}

func (l *PostgresLedger) AddCourses(ctx context.Context, ownerID string, courseIDs []string) error {
	if len(courseIDs) == 0 {
		return nil
	}
	_, err := l.pool.Exec(ctx, `
		INSERT INTO enrollments (owner_id, course_id, enrolled_at)
		SELECT $1, unnest($2::text[]), $3
		ON CONFLICT DO NOTHING`,
		ownerID, courseIDs, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("add enrollments: %w", err)
	}
	return nil
}

func (l *PostgresLedger) ListCourses(ctx context.Context, ownerID string) ([]string, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT course_id FROM enrollments
		WHERE owner_id = $1
		ORDER BY course_id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	courseIDs := make([]string, 0)
	for rows.Next() {
		var courseID string
		if err := rows.Scan(&courseID); err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		courseIDs = append(courseIDs, courseID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enrollments: %w", err)
	}
	return courseIDs, nil
}

func (l *PostgresLedger) IsEnrolled(ctx context.Context, ownerID, courseID string) (bool, error) {
	var enrolled bool
	err := l.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM enrollments WHERE owner_id = $1 AND course_id = $2
		)`,
		ownerID, courseID,
	).Scan(&enrolled)
	if err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return enrolled, nil
}
