package in_mem

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/opengovaccess/votewatch/internal/domain"
	"github.com/opengovaccess/votewatch/internal/storage"
	"github.com/opengovaccess/votewatch/pkg/pagination"
)

// InMemStore keeps the full record graph in maps keyed by natural keys.
// It backs local development and the pipeline tests.
type InMemStore struct {
	mu sync.RWMutex

	documents map[string]domain.Document    // keyed by URL
	meetings  map[time.Time]domain.Meeting  // keyed by normalized date
	items     map[string]domain.Legislation // keyed by file number
	officials map[string]domain.Official    // keyed by name
	actions   []storage.ActionRecord
}

func NewInMemStore() *InMemStore {
	return &InMemStore{
		documents: make(map[string]domain.Document),
		meetings:  make(map[time.Time]domain.Meeting),
		items:     make(map[string]domain.Legislation),
		officials: make(map[string]domain.Official),
	}
}

func (s *InMemStore) UpsertDocument(ctx context.Context, doc domain.Document) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := s.documents[doc.URL]; ok {
		doc.ID = existing.ID
		doc.CreatedAt = existing.CreatedAt
		doc.UpdatedAt = now
		s.documents[doc.URL] = doc
		slog.Debug("Updated document in place", "url", doc.URL)
		return doc.ID, nil
	}

	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	doc.CreatedAt = now
	doc.UpdatedAt = now
	s.documents[doc.URL] = doc
	return doc.ID, nil
}

func (s *InMemStore) HasDocument(ctx context.Context, url string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.documents[url]
	return ok, nil
}

func (s *InMemStore) GetOrCreateMeeting(ctx context.Context, meeting domain.Meeting) (domain.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	date := meeting.NormalizedDate()
	if existing, ok := s.meetings[date]; ok {
		return existing, nil
	}

	if meeting.ID == uuid.Nil {
		meeting.ID = uuid.New()
	}
	meeting.Datetime = date
	meeting.CreatedAt = time.Now().UTC()
	if meeting.Type == "" {
		meeting.Type = domain.MeetingRegular
	}
	s.meetings[date] = meeting
	return meeting, nil
}

func (s *InMemStore) SaveItem(ctx context.Context, item domain.Legislation, actions []domain.Action) (uuid.UUID, error) {
	for _, a := range actions {
		if err := a.Validate(); err != nil {
			return uuid.Nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.items[item.FileNumber]; ok {
		item.ID = existing.ID
		item.CreatedAt = existing.CreatedAt
	} else {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.CreatedAt = time.Now().UTC()
	}
	s.items[item.FileNumber] = item

	// Re-ingestion replaces the item's actions for the same meeting
	// instead of accumulating duplicates.
	if len(actions) > 0 {
		meetingID := actions[0].MeetingID
		kept := s.actions[:0]
		for _, rec := range s.actions {
			if rec.LegislationID == item.ID && rec.MeetingID == meetingID {
				continue
			}
			kept = append(kept, rec)
		}
		s.actions = kept
	}

	for _, a := range actions {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		a.LegislationID = item.ID
		a.CreatedAt = time.Now().UTC()

		record := storage.ActionRecord{Action: a, FileNumber: item.FileNumber}
		for name, o := range s.officials {
			if o.ID == a.OfficialID {
				record.OfficialName = name
				break
			}
		}
		s.actions = append(s.actions, record)
	}

	return item.ID, nil
}

func (s *InMemStore) SeedOfficials(ctx context.Context, officials []domain.Official) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range officials {
		if _, ok := s.officials[o.Name]; ok {
			continue
		}
		if o.ID == uuid.Nil {
			o.ID = uuid.New()
		}
		o.CreatedAt = time.Now().UTC()
		s.officials[o.Name] = o
	}
	return nil
}

func (s *InMemStore) ListOfficials(ctx context.Context) ([]domain.Official, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	officials := make([]domain.Official, 0, len(s.officials))
	for _, o := range s.officials {
		officials = append(officials, o)
	}
	sort.Slice(officials, func(i, j int) bool { return officials[i].Name < officials[j].Name })
	return officials, nil
}

func (s *InMemStore) ListMeetings(ctx context.Context, page pagination.OffsetRequest) ([]domain.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meetings := make([]domain.Meeting, 0, len(s.meetings))
	for _, m := range s.meetings {
		meetings = append(meetings, m)
	}
	sort.Slice(meetings, func(i, j int) bool { return meetings[i].Datetime.After(meetings[j].Datetime) })
	return paginate(meetings, page), nil
}

func (s *InMemStore) ListLegislation(ctx context.Context, page pagination.OffsetRequest) ([]domain.Legislation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.Legislation, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].FileNumber < items[j].FileNumber })
	return paginate(items, page), nil
}

func (s *InMemStore) GetLegislation(ctx context.Context, fileNumber string) (*storage.LegislationDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[fileNumber]
	if !ok {
		return nil, storage.ErrNotFound
	}

	detail := &storage.LegislationDetail{Legislation: item}
	for _, rec := range s.actions {
		if rec.FileNumber == fileNumber {
			detail.Actions = append(detail.Actions, rec)
		}
	}
	return detail, nil
}

func (s *InMemStore) ListActionsByOfficial(ctx context.Context, officialName string) ([]storage.ActionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []storage.ActionRecord
	for _, rec := range s.actions {
		if strings.EqualFold(rec.OfficialName, officialName) {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (s *InMemStore) GetOfficialStats(ctx context.Context, officialName string) (*storage.OfficialStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var official *domain.Official
	for name, o := range s.officials {
		if strings.EqualFold(name, officialName) {
			official = &o
			break
		}
	}
	if official == nil {
		return nil, storage.ErrNotFound
	}

	stats := &storage.OfficialStats{Official: *official}
	for _, rec := range s.actions {
		if rec.OfficialID != official.ID {
			continue
		}
		if rec.Type == domain.ActionVote {
			stats.TotalVotes++
		}
		switch rec.Vote {
		case domain.VoteAye:
			stats.AyeCount++
		case domain.VoteNo:
			stats.NoCount++
		case domain.VoteAbstain:
			stats.AbstainCount++
		case domain.VoteAbsent:
			stats.AbsentCount++
		}
	}
	if stats.TotalVotes > 0 {
		stats.AyePercentage = roundPercentage(float64(stats.AyeCount) / float64(stats.TotalVotes) * 100)
	}
	return stats, nil
}

func (s *InMemStore) GetOverview(ctx context.Context) (storage.OverviewStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	overview := storage.OverviewStats{
		TotalMeetings:    len(s.meetings),
		TotalLegislation: len(s.items),
		TotalActions:     len(s.actions),
	}
	for _, o := range s.officials {
		if o.Active {
			overview.ActiveOfficials++
		}
	}
	var latest time.Time
	for date := range s.meetings {
		if date.After(latest) {
			latest = date
		}
	}
	if !latest.IsZero() {
		overview.LatestMeetingDate = &latest
	}
	return overview, nil
}

func roundPercentage(v float64) float64 {
	return math.Round(v*100) / 100
}

func paginate[T any](items []T, page pagination.OffsetRequest) []T {
	_ = page.Validate()
	start := page.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + page.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
