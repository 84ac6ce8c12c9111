// Package recipe stores the recipe catalog that meal plans reference and
// resolves recipe ids to ingredients for grocery list derivation.
package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/listenupapp/pantry/internal/domain"
	domainerrors "github.com/listenupapp/pantry/internal/errors"
	"github.com/listenupapp/pantry/internal/grocery"
	"github.com/listenupapp/pantry/internal/store"
)

// Lookup resolves recipe ids to ingredients.
type Lookup = grocery.RecipeLookup

// Catalog keeps recipes as JSON blobs under store.RecipePrefix.
type Catalog struct {
	blobs  store.Blobs
	logger *slog.Logger
}

var _ Lookup = (*Catalog)(nil)

// NewCatalog creates a catalog over blobs.
func NewCatalog(blobs store.Blobs, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Catalog{blobs: blobs, logger: logger}
}

func recipeKey(recipeID string) string {
	return store.RecipePrefix + recipeID
}

// Put creates or replaces a recipe.
func (c *Catalog) Put(ctx context.Context, r *domain.Recipe) error {
	if strings.TrimSpace(r.ID) == "" {
		return domainerrors.Validation("recipe id is required")
	}

	data, err := json.Marshal(r)
	if err != nil {
		return domainerrors.StorageFailuref(err, "serialize recipe %s", r.ID)
	}
	if err := c.blobs.Set(ctx, recipeKey(r.ID), data); err != nil {
		return domainerrors.StorageFailuref(err, "write recipe %s", r.ID)
	}

	c.logger.Debug("recipe stored", "recipe_id", r.ID, "ingredients", len(r.Ingredients))
	return nil
}

// Get returns the recipe stored under recipeID.
func (c *Catalog) Get(ctx context.Context, recipeID string) (*domain.Recipe, error) {
	data, err := c.blobs.Get(ctx, recipeKey(recipeID))
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, domainerrors.NotFoundf("recipe %s not found", recipeID)
	}
	if err != nil {
		return nil, domainerrors.StorageFailuref(err, "read recipe %s", recipeID)
	}

	var r domain.Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, domainerrors.RecipeUnavailablef(err, "recipe %s is unreadable", recipeID)
	}
	return &r, nil
}

// List returns every readable recipe ordered by id. Unreadable entries are logged and skipped.
func (c *Catalog) List(ctx context.Context) ([]*domain.Recipe, error) {
	keys, err := c.blobs.ListKeys(ctx, store.RecipePrefix)
	if err != nil {
		return nil, domainerrors.StorageFailure(err, "list recipes")
	}

	recipes := make([]*domain.Recipe, 0, len(keys))
	for _, key := range keys {
		r, err := c.Get(ctx, strings.TrimPrefix(key, store.RecipePrefix))
		if err != nil {
			if domainerrors.CodeOf(err) == domainerrors.CodeStorageFailure {
				return nil, err
			}
			c.logger.Warn("skipping recipe", "key", key, "error", err)
			continue
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}

// Delete removes a recipe. Deleting an unknown id succeeds.
func (c *Catalog) Delete(ctx context.Context, recipeID string) error {
	if err := c.blobs.Delete(ctx, recipeKey(recipeID)); err != nil {
		return domainerrors.StorageFailuref(err, "delete recipe %s", recipeID)
	}
	return nil
}

// Ingredients implements grocery.RecipeLookup. Any failure to produce the
// recipe is reported as RecipeUnavailable.
func (c *Catalog) Ingredients(ctx context.Context, recipeID string) ([]domain.Ingredient, error) {
	r, err := c.Get(ctx, recipeID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrRecipeUnavailable) {
			return nil, err
		}
		return nil, domainerrors.RecipeUnavailablef(err, "recipe %s unavailable", recipeID)
	}
	return r.Ingredients, nil
}
