package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/opengovaccess/votewatch/internal/collector"
	"github.com/opengovaccess/votewatch/internal/domain"
	"github.com/opengovaccess/votewatch/internal/ingest"
	"github.com/opengovaccess/votewatch/internal/roster"
	"github.com/opengovaccess/votewatch/internal/storage"
	"github.com/opengovaccess/votewatch/internal/storage/factory"
	"github.com/opengovaccess/votewatch/internal/tracker"
	"github.com/opengovaccess/votewatch/internal/votes"
)

func main() {
	appSettings := NewAppConfig()

	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	storer, err := factory.NewStorer(ctx, &cfg.StorageConfig)
	if err != nil {
		slog.Error("failed to create storer", "error", err)
		os.Exit(1)
	}

	officials, err := loadRoster(cfg.RosterPath)
	if err != nil {
		slog.Error("failed to load roster", "error", err, "path", cfg.RosterPath)
		os.Exit(1)
	}

	policy, err := votes.ParsePolicy(cfg.VotePolicy)
	if err != nil {
		slog.Error("invalid vote policy", "error", err)
		os.Exit(1)
	}

	tr, finish, err := newTracker(cfg, storer)
	if err != nil {
		slog.Error("failed to create tracker", "error", err)
		os.Exit(1)
	}

	var opts []collector.DirCollectorOption
	if cfg.BaseURL != "" {
		opts = append(opts, collector.WithBaseURL(cfg.BaseURL))
	}
	c := collector.NewDirCollector(cfg.DocumentsPath, cfg.Source, opts...)

	pipeline := ingest.NewDocPipeline(c, storer, tr, officials,
		ingest.WithMode(cfg.Mode),
		ingest.WithPolicy(policy),
		ingest.WithDocTimeout(cfg.DocTimeout),
	)

	slog.Info("Starting ingestion",
		"documentsPath", cfg.DocumentsPath,
		"source", cfg.Source,
		"mode", cfg.Mode,
		"storageType", cfg.StorageConfig.Type,
	)

	if err := pipeline.Run(ctx); err != nil {
		slog.Error("failed to run pipeline", "error", err)
		os.Exit(1)
	}

	if err := finish(); err != nil {
		slog.Error("failed to persist tracker state", "error", err)
		os.Exit(1)
	}
}

func loadRoster(path string) ([]domain.Official, error) {
	if path == "" {
		return roster.Default(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return roster.Load(file)
}

// newTracker picks the seen-set file tracker when a state path is
// configured, otherwise the live record-store lookup. The returned finish
// func flushes file-backed state after the run.
func newTracker(cfg *IngestConfig, storer storage.Storer) (tracker.Tracker, func() error, error) {
	if cfg.StatePath == "" {
		return tracker.NewStoreTracker(storer), func() error { return nil }, nil
	}

	seen, err := tracker.LoadSeenSet(cfg.StatePath)
	if err != nil {
		return nil, nil, err
	}
	return seen, seen.Save, nil
}
