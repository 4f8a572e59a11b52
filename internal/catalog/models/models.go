// Package models holds the catalog entities: instructors and the courses
// they own.
package models

import "time"

// Instructor is an authenticated identity that owns courses. The password
// hash never serializes.
type Instructor struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Course is a single published course. Views counts catalog page hits.
type Course struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	InstructorID string    `json:"instructor_id"`
	Duration     string    `json:"duration"`
	Technology   string    `json:"technology"`
	Price        float64   `json:"price"`
	Views        int64     `json:"views"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterInstructorRequest is the register payload.
type RegisterInstructorRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateInstructorRequest carries the mutable instructor fields. Nil means
// leave unchanged.
type UpdateInstructorRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// CreateCourseRequest is the course creation payload. The owning instructor
// comes from the verified token, never the body.
type CreateCourseRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    string  `json:"duration"`
	Technology  string  `json:"technology"`
	Price       float64 `json:"price"`
}

// UpdateCourseRequest carries the mutable course fields. Nil means leave
// unchanged.
type UpdateCourseRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Duration    *string  `json:"duration"`
	Technology  *string  `json:"technology"`
	Price       *float64 `json:"price"`
}
