package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a registered Noteloft user.
type Account struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	Plan      string     `json:"plan,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	LastSeen  *time.Time `json:"last_seen_at,omitempty"`
}

// DisplayName returns the name to show in the shell chrome,
// falling back to the mailbox part of the email address.
func (a Account) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	for i := 0; i < len(a.Email); i++ {
		if a.Email[i] == '@' {
			return a.Email[:i]
		}
	}
	return a.Email
}
