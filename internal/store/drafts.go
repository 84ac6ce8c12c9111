package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/listenupapp/pantry/internal/domain"
	"github.com/listenupapp/pantry/internal/id"
)

// Options tunes a Drafts repository. Zero values select defaults.
type Options struct {
	// IDAttempts bounds id generation retries on collision.
	IDAttempts int
	// StatsConcurrency bounds parallel blob reads while computing stats.
	StatsConcurrency int
	// Clock overrides time.Now for timestamps.
	Clock func() time.Time
}

const defaultStatsConcurrency = 8

// Drafts is the draft repository: one Entity per kind over a shared blob store.
type Drafts struct {
	blobs  Blobs
	logger *slog.Logger

	statsConcurrency int

	MealPlans    *Entity[domain.MealPlan]
	GroceryLists *Entity[domain.GroceryList]
}

// NewDrafts creates a repository over blobs.
func NewDrafts(blobs Blobs, logger *slog.Logger, opts Options) *Drafts {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.IDAttempts <= 0 {
		opts.IDAttempts = id.DefaultMaxAttempts
	}
	if opts.StatsConcurrency <= 0 {
		opts.StatsConcurrency = defaultStatsConcurrency
	}

	d := &Drafts{
		blobs:            blobs,
		logger:           logger,
		statsConcurrency: opts.StatsConcurrency,
		MealPlans: NewEntity[domain.MealPlan](blobs, domain.KindMealPlan, logger).
			WithSearchText((*domain.MealPlan).SearchText),
		GroceryLists: NewEntity[domain.GroceryList](blobs, domain.KindGroceryList, logger).
			WithSearchText(func(g *domain.GroceryList) []string {
				return append([]string{g.Title}, g.SearchText()...)
			}),
	}

	d.MealPlans.configure(opts.IDAttempts, opts.Clock)
	d.GroceryLists.configure(opts.IDAttempts, opts.Clock)
	return d
}

func (e *Entity[P]) configure(idAttempts int, clock func() time.Time) {
	e.idAttempts = idAttempts
	if clock != nil {
		e.clock = clock
	}
}

// SetIndexer sets the search indexer for both kinds.
// This is set after repository creation since the search index is built on top of it.
func (d *Drafts) SetIndexer(indexer Indexer) {
	if indexer == nil {
		indexer = NoopIndexer{}
	}
	d.MealPlans.mu.Lock()
	d.MealPlans.indexer = indexer
	d.MealPlans.mu.Unlock()

	d.GroceryLists.mu.Lock()
	d.GroceryLists.indexer = indexer
	d.GroceryLists.mu.Unlock()
}

// Blobs returns the underlying blob store.
func (d *Drafts) Blobs() Blobs {
	return d.blobs
}

// SaveMealPlanDraft persists a meal plan and returns its id.
func (d *Drafts) SaveMealPlanDraft(ctx context.Context, plan domain.MealPlan, opts SaveOptions) (SaveResult, error) {
	return d.MealPlans.Save(ctx, plan, opts)
}

// LoadMealPlanDraft returns a stored meal plan draft.
func (d *Drafts) LoadMealPlanDraft(ctx context.Context, draftID string) (*domain.Draft[domain.MealPlan], error) {
	return d.MealPlans.Load(ctx, draftID)
}

// GetMealPlanDrafts lists meal plan drafts, most recently updated first.
func (d *Drafts) GetMealPlanDrafts(ctx context.Context) ([]domain.DraftMeta, error) {
	return d.MealPlans.List(ctx)
}

// DeleteMealPlanDraft removes a meal plan draft.
func (d *Drafts) DeleteMealPlanDraft(ctx context.Context, draftID string) error {
	return d.MealPlans.Delete(ctx, draftID)
}

// SaveGroceryListDraft persists a grocery list and returns its id.
func (d *Drafts) SaveGroceryListDraft(ctx context.Context, list domain.GroceryList, opts SaveOptions) (SaveResult, error) {
	return d.GroceryLists.Save(ctx, list, opts)
}

// LoadGroceryListDraft returns a stored grocery list draft.
func (d *Drafts) LoadGroceryListDraft(ctx context.Context, draftID string) (*domain.Draft[domain.GroceryList], error) {
	return d.GroceryLists.Load(ctx, draftID)
}

// GetGroceryListDrafts lists grocery list drafts, most recently updated first.
func (d *Drafts) GetGroceryListDrafts(ctx context.Context) ([]domain.DraftMeta, error) {
	return d.GroceryLists.List(ctx)
}

// DeleteGroceryListDraft removes a grocery list draft.
func (d *Drafts) DeleteGroceryListDraft(ctx context.Context, draftID string) error {
	return d.GroceryLists.Delete(ctx, draftID)
}
