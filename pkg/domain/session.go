package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is the authenticated identity currently recognized by the shell.
type Session struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session's token lifetime has passed.
// Sessions without a known expiry never expire locally.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
