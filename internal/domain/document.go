package domain

import (
	"time"

	"github.com/google/uuid"
)

type ContentFormat string

const (
	FormatPDF  ContentFormat = "pdf"
	FormatHTML ContentFormat = "html"
	FormatCSV  ContentFormat = "csv"
	FormatText ContentFormat = "text"
)

type DocType string

const (
	DocAgenda     DocType = "agenda"
	DocMinutes    DocType = "minutes"
	DocTranscript DocType = "transcript"
	DocOther      DocType = "other"
)

// Document is a captured source document. The URL is globally unique and is
// the sole de-duplication key for the acquisition layer: re-ingestion under
// force mode updates the row in place, it never duplicates it.
type Document struct {
	ID               uuid.UUID      `json:"id"`
	Source           string         `json:"source"`
	URL              string         `json:"url"`
	RawContent       string         `json:"rawContent,omitempty"`
	ContentFormat    ContentFormat  `json:"contentFormat"`
	ConvertedContent string         `json:"convertedContent,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
	MeetingID        uuid.UUID      `json:"meetingId,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// RawDocument is the tuple the acquisition gateway yields for each
// discovered resource, before any bookkeeping or conversion.
type RawDocument struct {
	Source      string
	URL         string
	DocType     DocType
	Content     []byte
	Format      ContentFormat
	MeetingDate time.Time
	Metadata    map[string]any
}

// TranscriptSegment is one line of transcript text with an optional
// "HH:MM:SS" timestamp. Transient: segments are rendered, not persisted.
type TranscriptSegment struct {
	Text      string
	Timestamp string
}
