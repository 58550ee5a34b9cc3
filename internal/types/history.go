package types

import (
	"time"

	"github.com/google/uuid"
)

// SearchRecord is one submitted search as kept in the history table.
type SearchRecord struct {
	ID          uuid.UUID     `json:"id"`
	SessionID   string        `json:"sessionId"`
	Query       string        `json:"query"`
	Outcome     SearchOutcome `json:"outcome"`
	GuidePlaces int           `json:"guidePlaces"`
	BlogPosts   int           `json:"blogPosts"`
	ErrorText   string        `json:"error,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}
