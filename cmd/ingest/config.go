package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/opengovaccess/votewatch/internal/storage/factory"
	"github.com/opengovaccess/votewatch/internal/tracker"
	"github.com/opengovaccess/votewatch/pkg/config/env"
)

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type AppConfig struct {
	ENV string
}

type IngestConfig struct {
	DocumentsPath string
	Source        string
	BaseURL       string
	StatePath     string
	Mode          tracker.Mode
	RosterPath    string
	VotePolicy    string
	DocTimeout    time.Duration
	factory.StorageConfig
}

func (as *AppConfig) Load() (*IngestConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/ingest/.env")
	if err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	docsPath := os.Getenv("DOCUMENTS_PATH")
	if docsPath == "" {
		docsPath = "data/documents"
	}

	source := os.Getenv("SOURCE")
	if source == "" {
		source = "sfbos"
	}

	mode := tracker.ModeIncremental
	if os.Getenv("INGEST_MODE") == string(tracker.ModeForce) {
		mode = tracker.ModeForce
	}

	timeout := 2 * time.Minute
	if raw := os.Getenv("DOC_TIMEOUT"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			timeout = parsed
		} else {
			slog.Warn("Invalid DOC_TIMEOUT, using default", "value", raw)
		}
	}

	cfg := &IngestConfig{
		DocumentsPath: docsPath,
		Source:        source,
		BaseURL:       os.Getenv("BASE_URL"),
		StatePath:     os.Getenv("STATE_PATH"),
		Mode:          mode,
		RosterPath:    os.Getenv("ROSTER_PATH"),
		VotePolicy:    os.Getenv("VOTE_POLICY"),
		DocTimeout:    timeout,
		StorageConfig: *storageCfg,
	}

	return cfg, nil
}
