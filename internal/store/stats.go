package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/listenupapp/pantry/internal/domain"
)

// StorageStats summarizes what the repository holds.
type StorageStats struct {
	// DraftCounts holds, per kind, the number of drafts a listing would return.
	DraftCounts map[domain.Kind]int `json:"draft_counts"`
	// ApproximateTotalBytes sums the sizes of index blobs and every draft blob
	// that could be read.
	ApproximateTotalBytes int64 `json:"approximate_total_bytes"`
	// Unreadable counts indexed drafts whose blob exists but cannot be decoded.
	Unreadable int `json:"unreadable"`
}

type probeStatus int

const (
	probeOK probeStatus = iota
	probeMissing
	probeCorrupt
	probeFailed
)

// probe reads one draft blob and reports its size and whether it decodes.
func (e *Entity[P]) probe(ctx context.Context, draftID string) (int, probeStatus) {
	data, err := e.blobs.Get(ctx, DraftKey(e.kind, draftID))
	if errors.Is(err, ErrKeyNotFound) {
		return 0, probeMissing
	}
	if err != nil {
		e.logger.Warn("failed to read draft blob for stats", "id", draftID, "error", err)
		return 0, probeFailed
	}
	if _, err := e.decode(draftID, data); err != nil {
		return len(data), probeCorrupt
	}
	return len(data), probeOK
}

type kindStats struct {
	count      int
	bytes      int64
	unreadable int
}

func (e *Entity[P]) stats(ctx context.Context, limit int) (kindStats, error) {
	var ks kindStats

	// One locked read so the counted ids and the index size agree.
	e.mu.Lock()
	ids, indexSize, err := e.readIndexSized(ctx)
	e.mu.Unlock()
	if err != nil {
		return ks, err
	}
	ks.bytes += int64(indexSize)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, draftID := range ids {
		g.Go(func() error {
			size, status := e.probe(gctx, draftID)

			mu.Lock()
			defer mu.Unlock()
			switch status {
			case probeOK:
				ks.count++
				ks.bytes += int64(size)
			case probeCorrupt:
				ks.unreadable++
				ks.bytes += int64(size)
			case probeMissing:
				e.logger.Warn("index entry has no draft blob", "id", draftID)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ks, err
	}
	return ks, ctx.Err()
}

// GetStorageStats counts drafts per kind and approximates the bytes they use.
// Blobs that cannot be read are logged and left out; only an unreadable index fails the call.
func (d *Drafts) GetStorageStats(ctx context.Context) (*StorageStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := &StorageStats{DraftCounts: make(map[domain.Kind]int, len(domain.Kinds))}

	mp, err := d.MealPlans.stats(ctx, d.statsConcurrency)
	if err != nil {
		return nil, err
	}
	gl, err := d.GroceryLists.stats(ctx, d.statsConcurrency)
	if err != nil {
		return nil, err
	}

	for kind, ks := range map[domain.Kind]kindStats{domain.KindMealPlan: mp, domain.KindGroceryList: gl} {
		stats.DraftCounts[kind] = ks.count
		stats.ApproximateTotalBytes += ks.bytes
		stats.Unreadable += ks.unreadable
	}

	d.logger.Debug("storage stats computed",
		slog.Int("meal_plans", mp.count),
		slog.Int("grocery_lists", gl.count),
		slog.Int64("bytes", stats.ApproximateTotalBytes),
	)
	return stats, nil
}
