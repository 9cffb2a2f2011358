package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/opengovaccess/votewatch/internal/domain"
	"github.com/opengovaccess/votewatch/pkg/pagination"
)

// Storer is the pipeline's write path. Every write is an upsert keyed by
// the entity's natural key, so force-mode re-ingestion updates in place.
type Storer interface {
	// UpsertDocument inserts or, when the URL exists, updates in place.
	UpsertDocument(ctx context.Context, doc domain.Document) (uuid.UUID, error)
	// HasDocument checks existence by URL, the acquisition layer's sole
	// de-duplication key.
	HasDocument(ctx context.Context, url string) (bool, error)
	// GetOrCreateMeeting resolves the meeting for a normalized date,
	// creating it on first reference. Serialized per date by the backend.
	GetOrCreateMeeting(ctx context.Context, meeting domain.Meeting) (domain.Meeting, error)
	// SaveItem persists one legislative item and its actions as a unit.
	// A failure rolls back only this item's writes.
	SaveItem(ctx context.Context, item domain.Legislation, actions []domain.Action) (uuid.UUID, error)
	// SeedOfficials inserts roster entries that are not present yet.
	SeedOfficials(ctx context.Context, officials []domain.Official) error
	ListOfficials(ctx context.Context) ([]domain.Official, error)
}

// ActionRecord is an action joined with the names a consumer actually wants
// to read.
type ActionRecord struct {
	domain.Action
	OfficialName string `json:"officialName"`
	FileNumber   string `json:"fileNumber"`
}

// LegislationDetail is one item with every action taken on it.
type LegislationDetail struct {
	Legislation domain.Legislation `json:"legislation"`
	Actions     []ActionRecord     `json:"actions"`
}

// OfficialStats aggregates one official's voting record. Percentages are
// computed over vote actions only; sponsorships do not count.
type OfficialStats struct {
	Official      domain.Official `json:"official"`
	TotalVotes    int             `json:"totalVotes"`
	AyeCount      int             `json:"ayeCount"`
	NoCount       int             `json:"noCount"`
	AbstainCount  int             `json:"abstainCount"`
	AbsentCount   int             `json:"absentCount"`
	AyePercentage float64         `json:"ayePercentage"`
}

// OverviewStats is the record-wide roll-up served by the stats endpoint.
type OverviewStats struct {
	TotalMeetings     int        `json:"totalMeetings"`
	TotalLegislation  int        `json:"totalLegislation"`
	TotalActions      int        `json:"totalActions"`
	ActiveOfficials   int        `json:"activeOfficials"`
	LatestMeetingDate *time.Time `json:"latestMeetingDate,omitempty"`
}

// Reader is the query API's read path.
type Reader interface {
	ListMeetings(ctx context.Context, page pagination.OffsetRequest) ([]domain.Meeting, error)
	ListLegislation(ctx context.Context, page pagination.OffsetRequest) ([]domain.Legislation, error)
	GetLegislation(ctx context.Context, fileNumber string) (*LegislationDetail, error)
	ListOfficials(ctx context.Context) ([]domain.Official, error)
	ListActionsByOfficial(ctx context.Context, officialName string) ([]ActionRecord, error)
	GetOfficialStats(ctx context.Context, officialName string) (*OfficialStats, error)
	GetOverview(ctx context.Context) (OverviewStats, error)
}

type Type string

const (
	PG    Type = "pg"
	InMem Type = "in_mem"
)

type StoreError string

const (
	ErrUnsupportedStore StoreError = "unsupported store type: %s"
	ErrNotFound         StoreError = "not found"
)

func (e StoreError) Error() string {
	return string(e)
}
