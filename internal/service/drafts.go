// Package service composes the draft repository, recipe catalog, dirty
// tracker and search index into the operations the HTTP layer exposes.
package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/listenupapp/pantry/internal/dirty"
	"github.com/listenupapp/pantry/internal/domain"
	"github.com/listenupapp/pantry/internal/recipe"
	"github.com/listenupapp/pantry/internal/search"
	"github.com/listenupapp/pantry/internal/store"
	"github.com/listenupapp/pantry/internal/validation"
)

const maxDraftNameLength = 200

// DraftService orchestrates draft operations.
type DraftService struct {
	drafts    *store.Drafts
	catalog   *recipe.Catalog
	lookup    recipe.Lookup
	tracker   *dirty.Tracker
	search    *SearchService
	validator *validation.Validator
	logger    *slog.Logger
}

// NewDraftService creates a new draft service.
// search may be nil when the index is disabled. Ingredients are resolved
// through catalog unless WithLookup replaces it.
func NewDraftService(
	drafts *store.Drafts,
	catalog *recipe.Catalog,
	tracker *dirty.Tracker,
	searchService *SearchService,
	validator *validation.Validator,
	logger *slog.Logger,
) *DraftService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if tracker == nil {
		tracker = dirty.New()
	}
	if validator == nil {
		validator = validation.New()
	}
	s := &DraftService{
		drafts:    drafts,
		catalog:   catalog,
		tracker:   tracker,
		search:    searchService,
		validator: validator,
		logger:    logger,
	}
	if catalog != nil {
		s.lookup = catalog
	}
	return s
}

// WithLookup replaces the ingredient source used by grocery generation.
func (s *DraftService) WithLookup(lookup recipe.Lookup) *DraftService {
	s.lookup = lookup
	return s
}

// SaveMealPlan validates and persists a meal plan draft.
func (s *DraftService) SaveMealPlan(ctx context.Context, plan domain.MealPlan, opts store.SaveOptions) (store.SaveResult, error) {
	if err := s.validateSave(&plan, opts); err != nil {
		return store.SaveResult{}, err
	}

	res, err := s.drafts.SaveMealPlanDraft(ctx, plan, opts)
	if err != nil {
		return store.SaveResult{}, err
	}

	s.logger.Info("meal plan saved",
		"id", res.ID,
		"created", res.Created,
		"days", len(plan.Days),
	)
	return res, nil
}

// LoadMealPlan returns a meal plan draft.
func (s *DraftService) LoadMealPlan(ctx context.Context, draftID string) (*domain.Draft[domain.MealPlan], error) {
	if err := s.validator.ValidateID("id", draftID); err != nil {
		return nil, err
	}
	return s.drafts.LoadMealPlanDraft(ctx, draftID)
}

// ListMealPlans returns meal plan metadata, most recently updated first.
func (s *DraftService) ListMealPlans(ctx context.Context) ([]domain.DraftMeta, error) {
	return s.drafts.GetMealPlanDrafts(ctx)
}

// DeleteMealPlan removes a meal plan draft. Deleting a missing draft succeeds.
func (s *DraftService) DeleteMealPlan(ctx context.Context, draftID string) error {
	if err := s.validator.ValidateID("id", draftID); err != nil {
		return err
	}
	if err := s.drafts.DeleteMealPlanDraft(ctx, draftID); err != nil {
		return err
	}
	s.logger.Info("meal plan deleted", "id", draftID)
	return nil
}

// SaveGroceryList validates and persists a grocery list draft.
func (s *DraftService) SaveGroceryList(ctx context.Context, list domain.GroceryList, opts store.SaveOptions) (store.SaveResult, error) {
	if err := s.validateSave(&list, opts); err != nil {
		return store.SaveResult{}, err
	}

	res, err := s.drafts.SaveGroceryListDraft(ctx, list, opts)
	if err != nil {
		return store.SaveResult{}, err
	}

	s.logger.Info("grocery list saved",
		"id", res.ID,
		"created", res.Created,
		"items", len(list.Items),
	)
	return res, nil
}

// LoadGroceryList returns a grocery list draft.
func (s *DraftService) LoadGroceryList(ctx context.Context, draftID string) (*domain.Draft[domain.GroceryList], error) {
	if err := s.validator.ValidateID("id", draftID); err != nil {
		return nil, err
	}
	return s.drafts.LoadGroceryListDraft(ctx, draftID)
}

// ListGroceryLists returns grocery list metadata, most recently updated first.
func (s *DraftService) ListGroceryLists(ctx context.Context) ([]domain.DraftMeta, error) {
	return s.drafts.GetGroceryListDrafts(ctx)
}

// DeleteGroceryList removes a grocery list draft. Deleting a missing draft succeeds.
func (s *DraftService) DeleteGroceryList(ctx context.Context, draftID string) error {
	if err := s.validator.ValidateID("id", draftID); err != nil {
		return err
	}
	if err := s.drafts.DeleteGroceryListDraft(ctx, draftID); err != nil {
		return err
	}
	s.logger.Info("grocery list deleted", "id", draftID)
	return nil
}

// Search finds drafts by name and content. With the index disabled it
// returns an empty result.
func (s *DraftService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	if s.search == nil {
		s.logger.Debug("search requested with index disabled", "query", params.Query)
		return &search.SearchResult{Query: params.Query, Hits: []search.SearchHit{}}, nil
	}
	return s.search.Search(ctx, params)
}

func (s *DraftService) validateSave(payload any, opts store.SaveOptions) error {
	if opts.ID != "" {
		if err := s.validator.ValidateID("id", opts.ID); err != nil {
			return err
		}
	}
	if err := s.validator.ValidateVar("name", strings.TrimSpace(opts.Name), "max="+strconv.Itoa(maxDraftNameLength)); err != nil {
		return err
	}
	return s.validator.Validate(payload)
}
