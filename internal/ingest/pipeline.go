// Package ingest wires collection, conversion, extraction and persistence
// into one pipeline run.
package ingest

import "context"

// Pipeline is one batch ingestion run over a collector's output.
type Pipeline interface {
	// Run executes the pipeline with the given context. Cancellation
	// finishes the document in flight, then stops.
	Run(ctx context.Context) error
}

// Stats counts what one run did, for the completion log line.
type Stats struct {
	Processed  int
	Skipped    int
	ParseEmpty int
	ItemsSaved int
	Failed     int
}
