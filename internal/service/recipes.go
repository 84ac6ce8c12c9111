package service

import (
	"context"

	"github.com/listenupapp/pantry/internal/domain"
	domainerrors "github.com/listenupapp/pantry/internal/errors"
)

// PutRecipe creates or replaces a catalog recipe.
func (s *DraftService) PutRecipe(ctx context.Context, r *domain.Recipe) error {
	if s.catalog == nil {
		return domainerrors.Internalf("recipe catalog not configured")
	}
	if err := s.validator.ValidateID("id", r.ID); err != nil {
		return err
	}
	if err := s.validator.Validate(r); err != nil {
		return err
	}
	if err := s.catalog.Put(ctx, r); err != nil {
		return err
	}

	s.logger.Info("recipe stored",
		"recipe_id", r.ID,
		"ingredients", len(r.Ingredients),
	)
	return nil
}

// GetRecipe returns a catalog recipe.
func (s *DraftService) GetRecipe(ctx context.Context, recipeID string) (*domain.Recipe, error) {
	if s.catalog == nil {
		return nil, domainerrors.Internalf("recipe catalog not configured")
	}
	if err := s.validator.ValidateID("id", recipeID); err != nil {
		return nil, err
	}
	return s.catalog.Get(ctx, recipeID)
}

// ListRecipes returns every readable catalog recipe.
func (s *DraftService) ListRecipes(ctx context.Context) ([]*domain.Recipe, error) {
	if s.catalog == nil {
		return nil, domainerrors.Internalf("recipe catalog not configured")
	}
	return s.catalog.List(ctx)
}

// DeleteRecipe removes a catalog recipe. Meal plans referencing it will have
// it skipped on generation.
func (s *DraftService) DeleteRecipe(ctx context.Context, recipeID string) error {
	if s.catalog == nil {
		return domainerrors.Internalf("recipe catalog not configured")
	}
	if err := s.validator.ValidateID("id", recipeID); err != nil {
		return err
	}
	if err := s.catalog.Delete(ctx, recipeID); err != nil {
		return err
	}
	s.logger.Info("recipe deleted", "recipe_id", recipeID)
	return nil
}
