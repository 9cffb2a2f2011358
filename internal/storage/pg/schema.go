package pg

import (
	"context"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS officials (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	official_type TEXT NOT NULL DEFAULT 'supervisor',
	district INT,
	initials TEXT,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS meetings (
	id UUID PRIMARY KEY,
	file_number TEXT,
	meeting_date DATE NOT NULL UNIQUE,
	meeting_type TEXT NOT NULL DEFAULT 'regular',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS documents (
	id UUID PRIMARY KEY,
	source TEXT NOT NULL,
	url TEXT NOT NULL UNIQUE,
	raw_content TEXT,
	content_format TEXT NOT NULL,
	converted_content TEXT,
	metadata JSONB,
	meeting_id UUID REFERENCES meetings(id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_documents_source ON documents(source);
CREATE INDEX IF NOT EXISTS idx_documents_meeting ON documents(meeting_id);

CREATE TABLE IF NOT EXISTS legislation (
	id UUID PRIMARY KEY,
	file_number TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	description TEXT,
	legislation_type TEXT,
	category TEXT,
	status TEXT,
	url TEXT,
	extra JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS actions (
	id UUID PRIMARY KEY,
	legislation_id UUID NOT NULL REFERENCES legislation(id),
	official_id UUID NOT NULL REFERENCES officials(id),
	meeting_id UUID REFERENCES meetings(id),
	action_type TEXT NOT NULL DEFAULT 'vote',
	vote TEXT,
	notes TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_actions_legislation ON actions(legislation_id);
CREATE INDEX IF NOT EXISTS idx_actions_official ON actions(official_id);
`

// EnsureSchema creates the record tables when they do not exist yet. The
// unique constraints on documents.url, meetings.meeting_date and
// legislation.file_number are what serialize concurrent get-or-create.
func EnsureSchema(ctx context.Context, pool *ConnectionPool) error {
	if _, err := pool.conn.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
