package service

import (
	"context"
	"strings"

	domainerrors "github.com/listenupapp/pantry/internal/errors"
	"github.com/listenupapp/pantry/internal/store"
)

// SetUnsavedChanges flags or clears a caller-defined key as having unsaved edits.
func (s *DraftService) SetUnsavedChanges(key string, unsaved bool) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domainerrors.Validation("key is required")
	}
	s.tracker.SetUnsavedChanges(key, unsaved)
	s.logger.Debug("unsaved changes flag set", "key", key, "unsaved", unsaved)
	return nil
}

// HasUnsavedChanges reports whether key is flagged. Unknown keys are clean.
func (s *DraftService) HasUnsavedChanges(key string) bool {
	return s.tracker.HasUnsavedChanges(strings.TrimSpace(key))
}

// UnsavedKeys lists every flagged key.
func (s *DraftService) UnsavedKeys() []string {
	return s.tracker.Keys()
}

// ClearUnsavedChanges drops every flag.
func (s *DraftService) ClearUnsavedChanges() {
	s.tracker.ClearAll()
	s.logger.Debug("unsaved changes cleared")
}

// StorageStats reports draft counts and approximate storage usage.
func (s *DraftService) StorageStats(ctx context.Context) (*store.StorageStats, error) {
	return s.drafts.GetStorageStats(ctx)
}

// Repair reconciles the draft indexes with stored blobs. When anything
// changed and search is enabled, the search index is rebuilt.
func (s *DraftService) Repair(ctx context.Context) (*store.RepairReport, error) {
	report, err := s.drafts.Repair(ctx)
	if err != nil {
		return nil, err
	}

	changed := false
	for kind, k := range report.Kinds {
		if !k.Changed() && len(k.Unreadable) == 0 {
			continue
		}
		changed = changed || k.Changed()
		s.logger.Info("draft index repaired",
			"kind", kind,
			"adopted", len(k.Adopted),
			"dropped", len(k.Dropped),
			"duplicates", k.Duplicates,
			"unreadable", len(k.Unreadable),
		)
	}

	if changed && s.search != nil {
		if err := s.search.ReindexAll(ctx); err != nil {
			s.logger.Warn("search reindex after repair failed", "error", err)
		}
	}

	return report, nil
}

// CheckStorage performs a cheap read against the blob store.
func (s *DraftService) CheckStorage(ctx context.Context) error {
	_, err := s.drafts.MealPlans.IDs(ctx)
	return err
}

// SearchStatus reports whether search is enabled and how many drafts it holds.
func (s *DraftService) SearchStatus() (enabled bool, documents uint64, err error) {
	if s.search == nil {
		return false, 0, nil
	}
	documents, err = s.search.DocumentCount()
	return true, documents, err
}
