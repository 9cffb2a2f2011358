package pg

import (
	"errors"
	"testing"
	"time"

	"github.com/opengovaccess/votewatch/internal/domain"
	"github.com/opengovaccess/votewatch/internal/storage"
	"github.com/opengovaccess/votewatch/pkg/pagination"
)

func seedVotingRecord(t *testing.T) domain.Official {
	t.Helper()

	official := seedTestOfficial(t, "Alice Smith")
	meeting := createTestMeeting(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC))
	createTestMeeting(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC))

	items := []struct {
		fileNumber string
		vote       domain.VoteType
	}{
		{"250101", domain.VoteAye},
		{"250102", domain.VoteAye},
		{"250103", domain.VoteNo},
	}
	for _, it := range items {
		_, err := testStore.SaveItem(testCtx,
			domain.Legislation{FileNumber: it.fileNumber, Title: "Item " + it.fileNumber, Status: domain.StatusApproved},
			[]domain.Action{{
				OfficialID: official.ID,
				MeetingID:  meeting.ID,
				Type:       domain.ActionVote,
				Vote:       it.vote,
			}})
		if err != nil {
			t.Fatalf("failed to save item %s: %v", it.fileNumber, err)
		}
	}
	return official
}

func TestReader_Ping(t *testing.T) {
	if err := testReader.Ping(testCtx); err != nil {
		t.Fatalf("expected live pool, got %v", err)
	}
}

func TestReader_ListMeetings(t *testing.T) {
	truncateAll(t)
	seedVotingRecord(t)

	meetings, err := testReader.ListMeetings(testCtx, pagination.OffsetRequest{Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("failed to list meetings: %v", err)
	}
	if len(meetings) != 2 {
		t.Fatalf("expected 2 meetings, got %d", len(meetings))
	}
	if !meetings[0].Datetime.After(meetings[1].Datetime) {
		t.Errorf("expected newest meeting first, got %s before %s",
			meetings[0].Datetime, meetings[1].Datetime)
	}
}

func TestReader_ListLegislationPagination(t *testing.T) {
	truncateAll(t)
	seedVotingRecord(t)

	page1, err := testReader.ListLegislation(testCtx, pagination.OffsetRequest{Page: 1, Size: 2})
	if err != nil {
		t.Fatalf("failed to list legislation: %v", err)
	}
	if len(page1) != 2 {
		t.Fatalf("expected 2 items on page 1, got %d", len(page1))
	}
	if page1[0].FileNumber != "250101" {
		t.Errorf("expected file-number order, got %s first", page1[0].FileNumber)
	}

	page2, err := testReader.ListLegislation(testCtx, pagination.OffsetRequest{Page: 2, Size: 2})
	if err != nil {
		t.Fatalf("failed to list legislation page 2: %v", err)
	}
	if len(page2) != 1 {
		t.Fatalf("expected 1 item on page 2, got %d", len(page2))
	}
	if page2[0].FileNumber != "250103" {
		t.Errorf("expected 250103 on page 2, got %s", page2[0].FileNumber)
	}
}

func TestReader_GetLegislationNotFound(t *testing.T) {
	truncateAll(t)

	_, err := testReader.GetLegislation(testCtx, "999999")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestReader_ListActionsByOfficial(t *testing.T) {
	truncateAll(t)
	seedVotingRecord(t)

	// Lookup is case-insensitive.
	records, err := testReader.ListActionsByOfficial(testCtx, "alice smith")
	if err != nil {
		t.Fatalf("failed to list actions: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(records))
	}
	for _, rec := range records {
		if rec.OfficialName != "Alice Smith" {
			t.Errorf("expected joined official name, got %q", rec.OfficialName)
		}
		if rec.FileNumber == "" {
			t.Error("expected joined file number, got empty")
		}
	}

	records, err = testReader.ListActionsByOfficial(testCtx, "Nobody")
	if err != nil {
		t.Fatalf("failed to list actions for unknown name: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no actions for unknown official, got %d", len(records))
	}
}

func TestReader_GetOfficialStats(t *testing.T) {
	truncateAll(t)
	seedVotingRecord(t)

	stats, err := testReader.GetOfficialStats(testCtx, "Alice Smith")
	if err != nil {
		t.Fatalf("failed to load stats: %v", err)
	}
	if stats.TotalVotes != 3 {
		t.Errorf("expected 3 total votes, got %d", stats.TotalVotes)
	}
	if stats.AyeCount != 2 || stats.NoCount != 1 {
		t.Errorf("expected 2 ayes and 1 no, got %d and %d", stats.AyeCount, stats.NoCount)
	}
	if stats.AyePercentage != 66.67 {
		t.Errorf("expected aye percentage 66.67, got %v", stats.AyePercentage)
	}

	_, err = testReader.GetOfficialStats(testCtx, "Nobody")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not-found error for unknown official, got %v", err)
	}
}

func TestReader_GetOverview(t *testing.T) {
	truncateAll(t)

	overview, err := testReader.GetOverview(testCtx)
	if err != nil {
		t.Fatalf("failed to load overview: %v", err)
	}
	if overview.TotalMeetings != 0 || overview.LatestMeetingDate != nil {
		t.Errorf("expected empty overview, got %+v", overview)
	}

	seedVotingRecord(t)

	overview, err = testReader.GetOverview(testCtx)
	if err != nil {
		t.Fatalf("failed to load overview: %v", err)
	}
	if overview.TotalMeetings != 2 {
		t.Errorf("expected 2 meetings, got %d", overview.TotalMeetings)
	}
	if overview.TotalLegislation != 3 {
		t.Errorf("expected 3 items, got %d", overview.TotalLegislation)
	}
	if overview.TotalActions != 3 {
		t.Errorf("expected 3 actions, got %d", overview.TotalActions)
	}
	if overview.ActiveOfficials != 1 {
		t.Errorf("expected 1 active official, got %d", overview.ActiveOfficials)
	}
	if overview.LatestMeetingDate == nil ||
		!overview.LatestMeetingDate.Equal(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected latest meeting date 2025-03-11, got %v", overview.LatestMeetingDate)
	}
}
