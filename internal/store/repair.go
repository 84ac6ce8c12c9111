package store

import (
	"context"
	"slices"

	"github.com/listenupapp/pantry/internal/domain"
	domainerrors "github.com/listenupapp/pantry/internal/errors"
)

// KindRepair lists what Repair changed for one kind.
type KindRepair struct {
	// Adopted are draft blobs that were missing from the index and now appear in it.
	Adopted []string `json:"adopted,omitempty"`
	// Dropped are index entries removed because their blob no longer exists.
	Dropped []string `json:"dropped,omitempty"`
	// Unreadable are orphaned blobs that could not be decoded and were left alone.
	Unreadable []string `json:"unreadable,omitempty"`
	// Duplicates counts repeated index entries that were collapsed.
	Duplicates int `json:"duplicates,omitempty"`
}

// Changed reports whether the kind's index was rewritten.
func (k KindRepair) Changed() bool {
	return len(k.Adopted) > 0 || len(k.Dropped) > 0 || k.Duplicates > 0
}

// RepairReport is the result of reconciling indexes with stored blobs.
type RepairReport struct {
	Kinds map[domain.Kind]KindRepair `json:"kinds"`
}

// Repair reconciles each kind's index with the draft blobs actually stored:
// dangling entries are dropped and decodable orphans are adopted.
func (d *Drafts) Repair(ctx context.Context) (*RepairReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &RepairReport{Kinds: make(map[domain.Kind]KindRepair, len(domain.Kinds))}

	mp, err := d.MealPlans.repair(ctx)
	if err != nil {
		return nil, err
	}
	report.Kinds[domain.KindMealPlan] = mp

	gl, err := d.GroceryLists.repair(ctx)
	if err != nil {
		return nil, err
	}
	report.Kinds[domain.KindGroceryList] = gl

	return report, nil
}

func (e *Entity[P]) repair(ctx context.Context) (KindRepair, error) {
	var r KindRepair

	e.mu.Lock()
	defer e.mu.Unlock()

	keys, err := e.blobs.ListKeys(ctx, DraftKeyPrefix(e.kind))
	if err != nil {
		return r, domainerrors.StorageFailuref(err, "list %s drafts", e.kind)
	}
	stored := make(map[string]bool, len(keys))
	for _, key := range keys {
		if draftID, ok := idFromDraftKey(e.kind, key); ok {
			stored[draftID] = true
		}
	}

	ids, err := e.readIndex(ctx)
	if err != nil {
		return r, err
	}

	seen := make(map[string]bool, len(ids))
	kept := make([]string, 0, len(ids))
	for _, draftID := range ids {
		if seen[draftID] {
			r.Duplicates++
			continue
		}
		seen[draftID] = true
		if !stored[draftID] {
			r.Dropped = append(r.Dropped, draftID)
			continue
		}
		kept = append(kept, draftID)
	}

	orphans := make([]string, 0)
	for draftID := range stored {
		if !seen[draftID] {
			orphans = append(orphans, draftID)
		}
	}
	slices.Sort(orphans)

	for _, draftID := range orphans {
		if _, err := e.load(ctx, draftID); err != nil {
			e.logger.Warn("leaving unreadable orphaned draft in place", "id", draftID, "error", err)
			r.Unreadable = append(r.Unreadable, draftID)
			continue
		}
		r.Adopted = append(r.Adopted, draftID)
		kept = append(kept, draftID)
	}

	if r.Changed() {
		if err := e.writeIndex(ctx, kept); err != nil {
			return r, err
		}
		e.logger.Info("draft index repaired",
			"adopted", len(r.Adopted),
			"dropped", len(r.Dropped),
			"duplicates", r.Duplicates,
		)
	}
	return r, nil
}
