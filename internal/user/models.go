package user

import "time"

// User is the persistent profile behind one credential subject. SubjectID is
// the primary key; at most one record exists per subject.
type User struct {
	SubjectID string    `json:"user_id"`
	Username  string    `json:"user_name"`
	RUT       string    `json:"rut"`
	FirstName string    `json:"name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	IsSeller  bool      `json:"is_seller"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterInput carries the profile fields a caller submits on registration.
type RegisterInput struct {
	Username  string `json:"username"`
	RUT       string `json:"rut"`
	FirstName string `json:"name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// Placeholder values used when the gateway provisions a record before the
// subject has registered a real profile. The placeholder RUT is itself a
// valid check-digit sequence so later reads never trip validation.
const (
	PlaceholderUsername = "auto_created"
	PlaceholderRUT      = "11111111-1"
)
