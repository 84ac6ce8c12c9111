package recipe

import (
	"context"
	"slices"
	"sync"

	"github.com/listenupapp/pantry/internal/domain"
	domainerrors "github.com/listenupapp/pantry/internal/errors"
)

// StaticLookup is an in-memory Lookup.
type StaticLookup struct {
	mu       sync.RWMutex
	recipes  map[string][]domain.Ingredient
	failures map[string]error
	calls    map[string]int
}

var _ Lookup = (*StaticLookup)(nil)

// NewStaticLookup creates a lookup serving the given recipes.
func NewStaticLookup(recipes ...domain.Recipe) *StaticLookup {
	s := &StaticLookup{
		recipes:  make(map[string][]domain.Ingredient, len(recipes)),
		failures: make(map[string]error),
		calls:    make(map[string]int),
	}
	for _, r := range recipes {
		s.recipes[r.ID] = slices.Clone(r.Ingredients)
	}
	return s
}

// Fail makes lookups of recipeID return err.
func (s *StaticLookup) Fail(recipeID string, err error) *StaticLookup {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[recipeID] = err
	return s
}

// Calls returns how many times recipeID was looked up.
func (s *StaticLookup) Calls(recipeID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls[recipeID]
}

// Ingredients returns a copy of the recipe's ingredients.
func (s *StaticLookup) Ingredients(_ context.Context, recipeID string) ([]domain.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls[recipeID]++
	if err, ok := s.failures[recipeID]; ok {
		return nil, domainerrors.RecipeUnavailablef(err, "recipe %s unavailable", recipeID)
	}
	ings, ok := s.recipes[recipeID]
	if !ok {
		return nil, domainerrors.RecipeUnavailablef(nil, "recipe %s not found", recipeID)
	}
	return slices.Clone(ings), nil
}
