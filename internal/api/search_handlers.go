package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/pantry/internal/domain"
	"github.com/listenupapp/pantry/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchDrafts",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search drafts",
		Description: "Full-text search over draft names and contents. An empty query matches every draft.",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// === DTOs ===

// SearchInput contains parameters for searching drafts.
type SearchInput struct {
	Query     string `query:"q" maxLength:"200" doc:"Search query"`
	Kinds     string `query:"kinds" maxLength:"100" doc:"Comma-separated kinds to search (meal_plan,grocery_list). Omit for all."`
	Limit     int    `query:"limit" minimum:"0" maximum:"100" doc:"Max results (default 20)"`
	Offset    int    `query:"offset" minimum:"0" doc:"Pagination offset"`
	Highlight bool   `query:"highlight" doc:"Include highlighted name fragments"`
}

// SearchOutput wraps the search response for Huma.
type SearchOutput struct {
	Body *search.SearchResult
}

// === Handlers ===

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	params := search.SearchParams{
		Query:     input.Query,
		Limit:     input.Limit,
		Offset:    input.Offset,
		Highlight: input.Highlight,
	}

	if input.Kinds != "" {
		for k := range strings.SplitSeq(input.Kinds, ",") {
			k = strings.TrimSpace(k)
			if k == "" {
				continue
			}
			params.Kinds = append(params.Kinds, domain.Kind(k))
		}
	}

	s.logger.Debug("search request received",
		"query", params.Query,
		"kinds", input.Kinds,
		"limit", params.Limit,
	)

	result, err := s.drafts.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Body: result}, nil
}
