package store

import (
	"context"
	"errors"

	domainerrors "github.com/listenupapp/pantry/internal/errors"
)

// Reindex feeds every readable draft of both kinds to indexer and returns how
// many were indexed. Used to populate a fresh search index on startup.
func (d *Drafts) Reindex(ctx context.Context, indexer Indexer) (int, error) {
	mp, err := d.MealPlans.reindex(ctx, indexer)
	if err != nil {
		return mp, err
	}
	gl, err := d.GroceryLists.reindex(ctx, indexer)
	return mp + gl, err
}

func (e *Entity[P]) reindex(ctx context.Context, indexer Indexer) (int, error) {
	ids, err := e.IDs(ctx)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, draftID := range ids {
		if err := ctx.Err(); err != nil {
			return n, err
		}

		draft, err := e.load(ctx, draftID)
		if errors.Is(err, domainerrors.ErrNotFound) || errors.Is(err, domainerrors.ErrCorruptDraft) {
			continue
		}
		if err != nil {
			return n, err
		}

		if err := indexer.IndexDraft(ctx, e.projection(draft)); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
