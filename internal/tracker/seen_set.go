package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"
	"time"
)

// SeenSet is a file-persisted identifier set with an explicit lifecycle:
// load once per batch run, mutate in memory, save. It is constructed per
// run and injected into the pipeline, never shared as process-global state.
type SeenSet struct {
	path string

	mu   sync.Mutex
	seen map[string]bool
	last time.Time
}

type seenSetFile struct {
	Processed []string  `json:"processed"`
	LastRun   time.Time `json:"lastRun"`
}

// LoadSeenSet reads persisted state from path. A missing file is an empty
// set; any other read failure propagates.
func LoadSeenSet(path string) (*SeenSet, error) {
	s := &SeenSet{path: path, seen: make(map[string]bool)}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tracker state %s: %w", path, err)
	}

	var file seenSetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode tracker state %s: %w", path, err)
	}

	for _, id := range file.Processed {
		s.seen[id] = true
	}
	s.last = file.LastRun

	return s, nil
}

func (s *SeenSet) ShouldProcess(ctx context.Context, identifier string, mode Mode) (bool, error) {
	if mode == ModeForce {
		return true, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.seen[identifier], nil
}

func (s *SeenSet) MarkProcessed(ctx context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[identifier] = true
	s.last = time.Now().UTC()
	return nil
}

// Save persists the set. Call at the end of a batch run.
func (s *SeenSet) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.seen))
	for id := range s.seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	data, err := json.MarshalIndent(seenSetFile{Processed: ids, LastRun: s.last}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tracker state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write tracker state %s: %w", s.path, err)
	}
	return nil
}
