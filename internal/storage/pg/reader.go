package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/opengovaccess/votewatch/internal/domain"
	"github.com/opengovaccess/votewatch/internal/storage"
	"github.com/opengovaccess/votewatch/pkg/pagination"
)

type Reader struct {
	pool *ConnectionPool
}

func NewReader(pool *ConnectionPool) (*Reader, error) {
	return &Reader{pool: pool}, nil
}

// Ping exposes the pool's liveness probe for health checks.
func (r *Reader) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *Reader) ListMeetings(ctx context.Context, page pagination.OffsetRequest) ([]domain.Meeting, error) {
	_ = page.Validate()

	rows, err := r.pool.conn.Query(ctx, `
		SELECT id, COALESCE(file_number, ''), meeting_date, meeting_type, created_at
		FROM meetings
		ORDER BY meeting_date DESC
		LIMIT $1 OFFSET $2
	`, page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	defer rows.Close()

	var meetings []domain.Meeting
	for rows.Next() {
		var m domain.Meeting
		if err := rows.Scan(&m.ID, &m.FileNumber, &m.Datetime, &m.Type, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meeting: %w", err)
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

func (r *Reader) ListLegislation(ctx context.Context, page pagination.OffsetRequest) ([]domain.Legislation, error) {
	_ = page.Validate()

	rows, err := r.pool.conn.Query(ctx, `
		SELECT id, file_number, title, COALESCE(description, ''), COALESCE(legislation_type, ''),
		       COALESCE(category, ''), COALESCE(status, 'pending'), COALESCE(url, ''), extra, created_at
		FROM legislation
		ORDER BY file_number
		LIMIT $1 OFFSET $2
	`, page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list legislation: %w", err)
	}
	defer rows.Close()

	var items []domain.Legislation
	for rows.Next() {
		item, err := scanLegislation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *Reader) GetLegislation(ctx context.Context, fileNumber string) (*storage.LegislationDetail, error) {
	row := r.pool.conn.QueryRow(ctx, `
		SELECT id, file_number, title, COALESCE(description, ''), COALESCE(legislation_type, ''),
		       COALESCE(category, ''), COALESCE(status, 'pending'), COALESCE(url, ''), extra, created_at
		FROM legislation
		WHERE file_number = $1
	`, fileNumber)

	item, err := scanLegislation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.conn.Query(ctx, `
		SELECT a.id, a.legislation_id, a.official_id, COALESCE(a.meeting_id, '00000000-0000-0000-0000-000000000000'),
		       a.action_type, COALESCE(a.vote, ''), COALESCE(a.notes, ''), a.created_at, o.name
		FROM actions a
		JOIN officials o ON o.id = a.official_id
		WHERE a.legislation_id = $1
		ORDER BY a.created_at, o.name
	`, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list actions for %s: %w", fileNumber, err)
	}
	defer rows.Close()

	detail := &storage.LegislationDetail{Legislation: item}
	for rows.Next() {
		var rec storage.ActionRecord
		if err := rows.Scan(
			&rec.ID, &rec.LegislationID, &rec.OfficialID, &rec.MeetingID,
			&rec.Type, &rec.Vote, &rec.Notes, &rec.CreatedAt, &rec.OfficialName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}
		rec.FileNumber = fileNumber
		detail.Actions = append(detail.Actions, rec)
	}
	return detail, rows.Err()
}

func (r *Reader) ListOfficials(ctx context.Context) ([]domain.Official, error) {
	store := Store{pool: r.pool}
	return store.ListOfficials(ctx)
}

func (r *Reader) ListActionsByOfficial(ctx context.Context, officialName string) ([]storage.ActionRecord, error) {
	rows, err := r.pool.conn.Query(ctx, `
		SELECT a.id, a.legislation_id, a.official_id, COALESCE(a.meeting_id, '00000000-0000-0000-0000-000000000000'),
		       a.action_type, COALESCE(a.vote, ''), COALESCE(a.notes, ''), a.created_at, o.name, l.file_number
		FROM actions a
		JOIN officials o ON o.id = a.official_id
		JOIN legislation l ON l.id = a.legislation_id
		WHERE lower(o.name) = lower($1)
		ORDER BY a.created_at DESC
	`, officialName)
	if err != nil {
		return nil, fmt.Errorf("failed to list actions for %s: %w", officialName, err)
	}
	defer rows.Close()

	var records []storage.ActionRecord
	for rows.Next() {
		var rec storage.ActionRecord
		if err := rows.Scan(
			&rec.ID, &rec.LegislationID, &rec.OfficialID, &rec.MeetingID,
			&rec.Type, &rec.Vote, &rec.Notes, &rec.CreatedAt, &rec.OfficialName, &rec.FileNumber,
		); err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *Reader) GetOfficialStats(ctx context.Context, officialName string) (*storage.OfficialStats, error) {
	var o domain.Official
	err := r.pool.conn.QueryRow(ctx, `
		SELECT id, name, official_type, COALESCE(district, 0), COALESCE(initials, ''), is_active, created_at
		FROM officials
		WHERE lower(name) = lower($1)
	`, officialName).Scan(&o.ID, &o.Name, &o.Type, &o.District, &o.Initials, &o.Active, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load official %s: %w", officialName, err)
	}

	stats := &storage.OfficialStats{Official: o}
	err = r.pool.conn.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE action_type = 'vote'),
		       COUNT(*) FILTER (WHERE vote = 'aye'),
		       COUNT(*) FILTER (WHERE vote = 'no'),
		       COUNT(*) FILTER (WHERE vote = 'abstain'),
		       COUNT(*) FILTER (WHERE vote = 'absent')
		FROM actions
		WHERE official_id = $1
	`, o.ID).Scan(&stats.TotalVotes, &stats.AyeCount, &stats.NoCount, &stats.AbstainCount, &stats.AbsentCount)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate actions for %s: %w", officialName, err)
	}

	if stats.TotalVotes > 0 {
		pct := float64(stats.AyeCount) / float64(stats.TotalVotes) * 100
		stats.AyePercentage = math.Round(pct*100) / 100
	}
	return stats, nil
}

func (r *Reader) GetOverview(ctx context.Context) (storage.OverviewStats, error) {
	var overview storage.OverviewStats
	var latest *time.Time
	err := r.pool.conn.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM meetings),
		       (SELECT COUNT(*) FROM legislation),
		       (SELECT COUNT(*) FROM actions),
		       (SELECT COUNT(*) FROM officials WHERE is_active),
		       (SELECT MAX(meeting_date) FROM meetings)
	`).Scan(
		&overview.TotalMeetings, &overview.TotalLegislation, &overview.TotalActions,
		&overview.ActiveOfficials, &latest,
	)
	if err != nil {
		return storage.OverviewStats{}, fmt.Errorf("failed to load overview stats: %w", err)
	}
	overview.LatestMeetingDate = latest
	return overview, nil
}

func scanLegislation(row pgx.Row) (domain.Legislation, error) {
	var item domain.Legislation
	var extraJSON []byte
	if err := row.Scan(
		&item.ID, &item.FileNumber, &item.Title, &item.Description, &item.Type,
		&item.Category, &item.Status, &item.URL, &extraJSON, &item.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Legislation{}, err
		}
		return domain.Legislation{}, fmt.Errorf("failed to scan legislation: %w", err)
	}
	if len(extraJSON) > 0 {
		if err := json.Unmarshal(extraJSON, &item.Extra); err != nil {
			return domain.Legislation{}, fmt.Errorf("failed to decode legislation extra: %w", err)
		}
	}
	return item, nil
}
