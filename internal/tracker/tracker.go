// Package tracker answers "has this resource already been captured?" for
// the ingestion pipeline, keyed by exact identifier (URL or file number).
package tracker

import "context"

type Mode string

const (
	// ModeIncremental skips identifiers that completed processing in a
	// prior run.
	ModeIncremental Mode = "incremental"
	// ModeForce processes every identifier; downstream persistence upserts
	// instead of duplicating.
	ModeForce Mode = "force"
)

// Tracker gates re-processing of discovered resources. A backend query
// failure must propagate as an error, never silently resolve to "new".
type Tracker interface {
	ShouldProcess(ctx context.Context, identifier string, mode Mode) (bool, error)
}

// Completer is implemented by backends that record completion themselves
// (as opposed to live lookups against the record store, where the upserted
// row is the record of completion).
type Completer interface {
	MarkProcessed(ctx context.Context, identifier string) error
}
