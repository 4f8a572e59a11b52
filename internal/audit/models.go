package audit

import "time"

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject"`
	Detail    string    `json:"detail,omitempty"`
}

// Actions emitted by the services.
const (
	ActionInstructorRegistered = "instructor.registered"
	ActionInstructorLogin      = "instructor.login"
	ActionCourseCreated        = "course.created"
	ActionEnrollmentAdded      = "enrollment.added"
	ActionBulkEnrollment       = "enrollment.bulk"
)
