package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/opengovaccess/votewatch/internal/apperr"
	"github.com/opengovaccess/votewatch/internal/domain"
)

type Store struct {
	pool *ConnectionPool
}

func NewStore(pool *ConnectionPool) (*Store, error) {
	return &Store{pool: pool}, nil
}

func (s *Store) UpsertDocument(ctx context.Context, doc domain.Document) (uuid.UUID, error) {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}

	metadataJSON, err := marshalJSON(doc.Metadata)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal document metadata: %w", err)
	}

	var meetingID any
	if doc.MeetingID != uuid.Nil {
		meetingID = doc.MeetingID
	}

	cmd := `
		INSERT INTO documents (id, source, url, raw_content, content_format, converted_content, metadata, meeting_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (url) DO UPDATE SET
			source = EXCLUDED.source,
			raw_content = EXCLUDED.raw_content,
			content_format = EXCLUDED.content_format,
			converted_content = EXCLUDED.converted_content,
			metadata = EXCLUDED.metadata,
			meeting_id = EXCLUDED.meeting_id,
			updated_at = now()
		RETURNING id;
	`
	var id uuid.UUID
	err = s.pool.conn.QueryRow(
		ctx,
		cmd,
		doc.ID,
		doc.Source,
		doc.URL,
		doc.RawContent,
		doc.ContentFormat,
		doc.ConvertedContent,
		metadataJSON,
		meetingID,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert document %s: %w", doc.URL, err)
	}

	return id, nil
}

func (s *Store) HasDocument(ctx context.Context, url string) (bool, error) {
	var exists bool
	err := s.pool.conn.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM documents WHERE url = $1)`, url,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check document %s: %w", url, err)
	}
	return exists, nil
}

func (s *Store) GetOrCreateMeeting(ctx context.Context, meeting domain.Meeting) (domain.Meeting, error) {
	if meeting.ID == uuid.Nil {
		meeting.ID = uuid.New()
	}
	if meeting.Type == "" {
		meeting.Type = domain.MeetingRegular
	}
	date := meeting.NormalizedDate()

	// The no-op DO UPDATE makes RETURNING yield the existing row, so the
	// unique constraint on meeting_date serializes concurrent creators.
	cmd := `
		INSERT INTO meetings (id, file_number, meeting_date, meeting_type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (meeting_date) DO UPDATE SET meeting_date = EXCLUDED.meeting_date
		RETURNING id, COALESCE(file_number, ''), meeting_date, meeting_type, created_at;
	`
	var out domain.Meeting
	err := s.pool.conn.QueryRow(ctx, cmd, meeting.ID, nullIfEmpty(meeting.FileNumber), date, meeting.Type).Scan(
		&out.ID, &out.FileNumber, &out.Datetime, &out.Type, &out.CreatedAt,
	)
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("failed to get or create meeting for %s: %w", date.Format("2006-01-02"), err)
	}

	return out, nil
}

// SaveItem upserts the legislation row by file number and replaces the
// item's actions for the same meeting, all in one transaction. A failure
// rolls back only this item's writes.
func (s *Store) SaveItem(ctx context.Context, item domain.Legislation, actions []domain.Action) (uuid.UUID, error) {
	for _, a := range actions {
		if err := a.Validate(); err != nil {
			return uuid.Nil, err
		}
	}

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	extraJSON, err := marshalJSON(item.Extra)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal legislation extra: %w", err)
	}

	tx, err := s.pool.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO legislation (id, file_number, title, description, legislation_type, category, status, url, extra)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (file_number) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			legislation_type = EXCLUDED.legislation_type,
			category = EXCLUDED.category,
			status = EXCLUDED.status,
			url = EXCLUDED.url,
			extra = EXCLUDED.extra
		RETURNING id;
	`,
		item.ID, item.FileNumber, item.Title, item.Description, item.Type,
		item.Category, item.Status, item.URL, extraJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert legislation %s: %w", item.FileNumber, err)
	}

	if len(actions) > 0 {
		var meetingID any
		if actions[0].MeetingID != uuid.Nil {
			meetingID = actions[0].MeetingID
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM actions WHERE legislation_id = $1 AND meeting_id IS NOT DISTINCT FROM $2`,
			id, meetingID,
		); err != nil {
			return uuid.Nil, fmt.Errorf("failed to clear actions for %s: %w", item.FileNumber, err)
		}
	}

	for _, a := range actions {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		var meetingID any
		if a.MeetingID != uuid.Nil {
			meetingID = a.MeetingID
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO actions (id, legislation_id, official_id, meeting_id, action_type, vote, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			a.ID, id, a.OfficialID, meetingID, a.Type, nullIfEmpty(string(a.Vote)), nullIfEmpty(a.Notes),
		); err != nil {
			if isUniqueViolation(err) {
				return uuid.Nil, apperr.NewConflict(item.FileNumber, err)
			}
			return uuid.Nil, fmt.Errorf("failed to insert action for %s: %w", item.FileNumber, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit item %s: %w", item.FileNumber, err)
	}

	return id, nil
}

func (s *Store) SeedOfficials(ctx context.Context, officials []domain.Official) error {
	for _, o := range officials {
		if o.ID == uuid.Nil {
			o.ID = uuid.New()
		}
		var district any
		if o.District > 0 {
			district = o.District
		}
		_, err := s.pool.conn.Exec(ctx, `
			INSERT INTO officials (id, name, official_type, district, initials, is_active)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (name) DO NOTHING
		`, o.ID, o.Name, o.Type, district, nullIfEmpty(o.Initials), o.Active)
		if err != nil {
			return fmt.Errorf("failed to seed official %s: %w", o.Name, err)
		}
	}
	return nil
}

func (s *Store) ListOfficials(ctx context.Context) ([]domain.Official, error) {
	rows, err := s.pool.conn.Query(ctx, `
		SELECT id, name, official_type, COALESCE(district, 0), COALESCE(initials, ''), is_active, created_at
		FROM officials
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list officials: %w", err)
	}
	defer rows.Close()

	var officials []domain.Official
	for rows.Next() {
		var o domain.Official
		if err := rows.Scan(&o.ID, &o.Name, &o.Type, &o.District, &o.Initials, &o.Active, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan official: %w", err)
		}
		officials = append(officials, o)
	}
	return officials, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func marshalJSON(m map[string]any) ([]byte, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
