// Package models holds the enrollment ledger record and the wire types for
// the enrollment endpoints.
package models

import (
	catalog "coursehub/internal/catalog/models"
)

// Record is one owner's enrollment state: the set of course ids the owner is
// enrolled in. Created lazily on first enrollment; never deleted.
type Record struct {
	OwnerID   string   `json:"owner_id"`
	CourseIDs []string `json:"course_ids"`
}

// BulkEnrollRequest is the legacy bulk enrollment payload.
type BulkEnrollRequest struct {
	CourseIDs []string `json:"courseIds"`
}

// EnrollRequest is the single-course enrollment payload.
type EnrollRequest struct {
	CourseID string `json:"courseId"`
}

// EnrolledIDsResponse lists enrolled course ids for the token subject.
type EnrolledIDsResponse struct {
	EnrolledCourses []string `json:"enrolledCourses"`
}

// EnrolledCoursesResponse lists populated course records for an owner.
type EnrolledCoursesResponse struct {
	EnrolledCourses []*catalog.Course `json:"enrolledCourses"`
}

// CheckEnrollmentResponse reports membership of one course in the caller's
// enrollment set.
type CheckEnrollmentResponse struct {
	Enrolled bool   `json:"enrolled"`
	Message  string `json:"message"`
}

// MessageResponse is the generic success envelope the original API used.
type MessageResponse struct {
	Message string `json:"message"`
}
