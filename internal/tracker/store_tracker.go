package tracker

import (
	"context"
	"fmt"
)

// DocumentChecker is the single record-store capability the live tracker
// needs: an existence check on the document's natural key.
type DocumentChecker interface {
	HasDocument(ctx context.Context, url string) (bool, error)
}

// StoreTracker consults the record store directly instead of keeping its
// own state. Equivalent to SeenSet under the same contract.
type StoreTracker struct {
	store DocumentChecker
}

func NewStoreTracker(store DocumentChecker) *StoreTracker {
	return &StoreTracker{store: store}
}

func (t *StoreTracker) ShouldProcess(ctx context.Context, identifier string, mode Mode) (bool, error) {
	if mode == ModeForce {
		return true, nil
	}

	exists, err := t.store.HasDocument(ctx, identifier)
	if err != nil {
		return false, fmt.Errorf("failed to check document %s: %w", identifier, err)
	}
	return !exists, nil
}
