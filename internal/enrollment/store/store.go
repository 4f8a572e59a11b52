// Package store defines the enrollment ledger contract. All backends expose
// atomic set-add primitives; the service layer never does read-then-write on
// the enrollment set, so concurrent enrollments for the same owner cannot
// lose updates.
package store

import "context"

// Ledger is the authoritative ownerID -> set of courseIDs mapping.
type Ledger interface {
	// AddCourse inserts one course id into the owner's set. Returns
	// sentinel.ErrDuplicate when the id is already present; the single-enroll
	// path reports that as an error.
	AddCourse(ctx context.Context, ownerID, courseID string) error

	// AddCourses unions the ids into the owner's set. Set semantics absorb
	// duplicates silently; the call is idempotent per id.
	AddCourses(ctx context.Context, ownerID string, courseIDs []string) error

	// ListCourses returns the owner's enrolled course ids, empty (not an
	// error) when the owner has no record.
	ListCourses(ctx context.Context, ownerID string) ([]string, error)

	// IsEnrolled reports membership, false when the owner has no record.
	IsEnrolled(ctx context.Context, ownerID, courseID string) (bool, error)
}
