package entity

import "time"

// UserType decides which sample data a session sees.
type UserType string

const (
	// UserTypeDemo sees the full synthetic dataset.
	UserTypeDemo UserType = "demo"
	// UserTypeRegistered is a freshly registered account with no activity yet.
	UserTypeRegistered UserType = "registered"
)

// Session is the explicit login state handed to protected views.
type Session struct {
	Token     string    `json:"-"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	UserType  UserType  `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
