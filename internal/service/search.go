package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/listenupapp/pantry/internal/domain"
	domainerrors "github.com/listenupapp/pantry/internal/errors"
	"github.com/listenupapp/pantry/internal/search"
	"github.com/listenupapp/pantry/internal/store"
)

const maxSearchLimit = 100

// SearchService bridges the search index with the draft repository.
// The repository pushes every save and delete into the index through its
// Indexer hook; SearchService owns queries and full rebuilds.
type SearchService struct {
	index  *search.SearchIndex
	drafts *store.Drafts
	logger *slog.Logger
}

// NewSearchService creates a search service and hooks the index into the repository.
func NewSearchService(index *search.SearchIndex, drafts *store.Drafts, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	drafts.SetIndexer(index)
	return &SearchService{
		index:  index,
		drafts: drafts,
		logger: logger,
	}
}

// Search runs a draft search. Limits are clamped to [1, 100].
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	params.Query = strings.TrimSpace(params.Query)
	if params.Limit <= 0 {
		params.Limit = search.DefaultSearchParams().Limit
	}
	params.Limit = min(params.Limit, maxSearchLimit)
	params.Offset = max(params.Offset, 0)

	for _, k := range params.Kinds {
		if !k.Valid() {
			return nil, domainerrors.Validationf("unknown draft kind %q", k)
		}
	}

	return s.index.Search(ctx, params)
}

// DocumentCount returns the number of indexed drafts.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// ReindexAll clears the index and feeds it every readable draft.
func (s *SearchService) ReindexAll(ctx context.Context) error {
	start := time.Now()

	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	n, err := s.drafts.Reindex(ctx, s.index)
	if err != nil {
		return fmt.Errorf("reindex drafts: %w", err)
	}

	s.logger.Info("search index rebuilt",
		"drafts", n,
		"duration", time.Since(start),
	)
	return nil
}

// EnsureIndexed rebuilds the index when it holds fewer documents than the
// repository lists, e.g. on first start or after the index directory was removed.
func (s *SearchService) EnsureIndexed(ctx context.Context) error {
	count, err := s.index.DocumentCount()
	if err != nil {
		return fmt.Errorf("count documents: %w", err)
	}

	var listed uint64
	for _, kind := range domain.Kinds {
		ids, err := s.idsOf(ctx, kind)
		if err != nil {
			return err
		}
		listed += uint64(len(ids))
	}

	if count >= listed {
		s.logger.Debug("search index up to date", "documents", count)
		return nil
	}

	s.logger.Info("search index behind repository, rebuilding",
		"documents", count,
		"drafts", listed,
	)
	return s.ReindexAll(ctx)
}

func (s *SearchService) idsOf(ctx context.Context, kind domain.Kind) ([]string, error) {
	switch kind {
	case domain.KindMealPlan:
		return s.drafts.MealPlans.IDs(ctx)
	case domain.KindGroceryList:
		return s.drafts.GroceryLists.IDs(ctx)
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
}
