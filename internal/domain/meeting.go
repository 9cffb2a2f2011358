package domain

import (
	"time"

	"github.com/google/uuid"
)

type MeetingType string

const (
	MeetingRegular   MeetingType = "regular"
	MeetingSpecial   MeetingType = "special"
	MeetingCommittee MeetingType = "committee"
)

// Meeting is one sitting of the legislative body. Its identity is the
// normalized date: two documents referencing the same day reference the
// same Meeting row.
type Meeting struct {
	ID         uuid.UUID   `json:"id"`
	FileNumber string      `json:"fileNumber,omitempty"`
	Datetime   time.Time   `json:"datetime"`
	Type       MeetingType `json:"type"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// NormalizedDate truncates the meeting datetime to midnight UTC, the
// get-or-create key for meetings.
func (m Meeting) NormalizedDate() time.Time {
	return NormalizeDate(m.Datetime)
}

func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
