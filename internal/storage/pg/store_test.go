package pg

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"

	"github.com/opengovaccess/votewatch/internal/domain"
	pkgtesting "github.com/opengovaccess/votewatch/pkg/testing"
)

var (
	testCtx    context.Context
	testPool   *ConnectionPool
	testStore  *Store
	testReader *Reader
)

func TestMain(m *testing.M) {
	testCtx = context.Background()

	pg, err := pkgtesting.NewPGContainer(testCtx, pkgtesting.PGConfig{
		Database: "votewatch_test_db",
		Username: "test",
		Password: "test",
	})
	if err != nil {
		panic(err)
	}
	defer testcontainers.TerminateContainer(pg.Container)

	testPool, err = NewConnectionPool(testCtx, PoolConfig{ConnStr: pg.ConnString})
	if err != nil {
		panic(err)
	}
	defer testPool.Close()

	if err := EnsureSchema(testCtx, testPool); err != nil {
		panic(err)
	}

	testStore, err = NewStore(testPool)
	if err != nil {
		panic(err)
	}
	testReader, err = NewReader(testPool)
	if err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func truncateAll(t *testing.T) {
	t.Helper()
	_, err := testPool.conn.Exec(testCtx,
		"TRUNCATE TABLE actions, documents, legislation, meetings, officials CASCADE")
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

func seedTestOfficial(t *testing.T, name string) domain.Official {
	t.Helper()
	err := testStore.SeedOfficials(testCtx, []domain.Official{
		{Name: name, Type: domain.OfficialSupervisor, District: 1, Active: true},
	})
	if err != nil {
		t.Fatalf("failed to seed official: %v", err)
	}
	officials, err := testStore.ListOfficials(testCtx)
	if err != nil {
		t.Fatalf("failed to list officials: %v", err)
	}
	for _, o := range officials {
		if o.Name == name {
			return o
		}
	}
	t.Fatalf("seeded official %s not found", name)
	return domain.Official{}
}

func createTestMeeting(t *testing.T, date time.Time) domain.Meeting {
	t.Helper()
	meeting, err := testStore.GetOrCreateMeeting(testCtx, domain.Meeting{Datetime: date})
	if err != nil {
		t.Fatalf("failed to create meeting: %v", err)
	}
	return meeting
}

func TestStore_UpsertDocumentInPlace(t *testing.T) {
	truncateAll(t)

	doc := domain.Document{
		Source:        "sfbos",
		URL:           "https://sfbos.org/minutes_2025-03-04.html",
		RawContent:    "v1",
		ContentFormat: domain.FormatHTML,
		Metadata:      map[string]any{"title": "Meeting Minutes"},
	}
	first, err := testStore.UpsertDocument(testCtx, doc)
	if err != nil {
		t.Fatalf("failed to insert document: %v", err)
	}

	doc.RawContent = "v2"
	second, err := testStore.UpsertDocument(testCtx, doc)
	if err != nil {
		t.Fatalf("failed to upsert document: %v", err)
	}
	if first != second {
		t.Errorf("expected same document id after upsert, got %s and %s", first, second)
	}

	var count int
	var raw string
	err = testPool.conn.QueryRow(testCtx,
		"SELECT COUNT(*), MAX(raw_content) FROM documents WHERE url = $1", doc.URL,
	).Scan(&count, &raw)
	if err != nil {
		t.Fatalf("failed to query document: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row for url, got %d", count)
	}
	if raw != "v2" {
		t.Errorf("expected updated raw content, got %q", raw)
	}

	has, err := testStore.HasDocument(testCtx, doc.URL)
	if err != nil {
		t.Fatalf("failed to check document: %v", err)
	}
	if !has {
		t.Error("expected document to exist")
	}
}

func TestStore_GetOrCreateMeetingIdentity(t *testing.T) {
	truncateAll(t)

	morning := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 4, 18, 30, 0, 0, time.UTC)

	m1 := createTestMeeting(t, morning)
	m2 := createTestMeeting(t, evening)

	if m1.ID != m2.ID {
		t.Errorf("expected one meeting per date, got ids %s and %s", m1.ID, m2.ID)
	}
	if !m1.Datetime.Equal(time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected normalized meeting date, got %s", m1.Datetime)
	}
}

func TestStore_SaveItemReplacesActions(t *testing.T) {
	truncateAll(t)

	official := seedTestOfficial(t, "Alice Smith")
	meeting := createTestMeeting(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC))

	item := domain.Legislation{
		FileNumber: "250101",
		Title:      "Housing ordinance",
		Status:     domain.StatusApproved,
		Extra:      map[string]any{"voteCounts": map[string]any{"aye": float64(1)}},
	}
	vote := domain.Action{
		OfficialID: official.ID,
		MeetingID:  meeting.ID,
		Type:       domain.ActionVote,
		Vote:       domain.VoteAye,
	}

	id1, err := testStore.SaveItem(testCtx, item, []domain.Action{vote})
	if err != nil {
		t.Fatalf("failed to save item: %v", err)
	}

	vote.Vote = domain.VoteNo
	id2, err := testStore.SaveItem(testCtx, item, []domain.Action{vote})
	if err != nil {
		t.Fatalf("failed to re-save item: %v", err)
	}
	if id1 != id2 {
		t.Errorf("expected stable legislation id, got %s and %s", id1, id2)
	}

	detail, err := testReader.GetLegislation(testCtx, "250101")
	if err != nil {
		t.Fatalf("failed to read item back: %v", err)
	}
	if len(detail.Actions) != 1 {
		t.Fatalf("expected 1 action after replacement, got %d", len(detail.Actions))
	}
	if detail.Actions[0].Vote != domain.VoteNo {
		t.Errorf("expected replaced vote no, got %s", detail.Actions[0].Vote)
	}
	if detail.Actions[0].OfficialName != "Alice Smith" {
		t.Errorf("expected joined official name, got %q", detail.Actions[0].OfficialName)
	}

	counts, ok := detail.Legislation.Extra["voteCounts"].(map[string]any)
	if !ok {
		t.Fatalf("expected voteCounts in extra, got %v", detail.Legislation.Extra)
	}
	if counts["aye"] != float64(1) {
		t.Errorf("expected aye count 1 in extra, got %v", counts["aye"])
	}
}

func TestStore_SaveItemRollsBackOnInvalidAction(t *testing.T) {
	truncateAll(t)

	official := seedTestOfficial(t, "Alice Smith")
	meeting := createTestMeeting(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC))

	_, err := testStore.SaveItem(testCtx,
		domain.Legislation{FileNumber: "250102", Title: "Parks resolution", Status: domain.StatusPending},
		[]domain.Action{{
			OfficialID: official.ID,
			MeetingID:  meeting.ID,
			Type:       domain.ActionVote,
		}})
	if err == nil {
		t.Fatal("expected error for vote action without a vote value")
	}

	var count int
	if err := testPool.conn.QueryRow(testCtx,
		"SELECT COUNT(*) FROM legislation WHERE file_number = '250102'").Scan(&count); err != nil {
		t.Fatalf("failed to count legislation: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no legislation row after rejected save, got %d", count)
	}
}

func TestStore_SeedOfficialsIsIdempotent(t *testing.T) {
	truncateAll(t)

	roster := []domain.Official{
		{Name: "Alice Smith", Type: domain.OfficialSupervisor, District: 1, Active: true},
		{Name: "Bob Jones", Type: domain.OfficialSupervisor, District: 2, Active: true},
	}
	if err := testStore.SeedOfficials(testCtx, roster); err != nil {
		t.Fatalf("failed to seed officials: %v", err)
	}
	if err := testStore.SeedOfficials(testCtx, roster); err != nil {
		t.Fatalf("failed to re-seed officials: %v", err)
	}

	officials, err := testStore.ListOfficials(testCtx)
	if err != nil {
		t.Fatalf("failed to list officials: %v", err)
	}
	if len(officials) != 2 {
		t.Errorf("expected 2 officials after re-seed, got %d", len(officials))
	}
}
