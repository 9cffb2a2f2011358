package domain

import (
	"time"

	"github.com/google/uuid"
)

type LegislationStatus string

const (
	StatusApproved LegislationStatus = "approved"
	StatusRejected LegislationStatus = "rejected"
	StatusPending  LegislationStatus = "pending"
)

// Legislation is one legislative item: a bill, ordinance or resolution.
// The file number is the legislature's external identifier and the natural
// de-duplication key.
type Legislation struct {
	ID          uuid.UUID         `json:"id"`
	FileNumber  string            `json:"fileNumber"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Type        string            `json:"type,omitempty"`
	Category    string            `json:"category,omitempty"`
	Status      LegislationStatus `json:"status"`
	URL         string            `json:"url,omitempty"`
	Extra       map[string]any    `json:"extra,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}
