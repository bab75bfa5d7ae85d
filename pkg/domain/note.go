package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Note is a user-owned note stored by the Noteloft service.
type Note struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Preview returns the first line of the note body, truncated to max runes.
func (n Note) Preview(max int) string {
	line := n.Body
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	runes := []rune(line)
	if max > 0 && len(runes) > max {
		return string(runes[:max-1]) + "…"
	}
	return line
}

// Summary is the service-produced summary of an uploaded document.
type Summary struct {
	ID         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	Text       string    `json:"text"`
	KeyPoints  []string  `json:"key_points,omitempty"`
	Model      string    `json:"model,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	TokensUsed int       `json:"tokens_used,omitempty"`
}
