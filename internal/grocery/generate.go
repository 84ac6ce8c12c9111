// Package grocery derives grocery lists from meal plans.
package grocery

import (
	"context"
	"fmt"
	"strings"

	"github.com/listenupapp/pantry/internal/domain"
	domainerrors "github.com/listenupapp/pantry/internal/errors"
	"github.com/listenupapp/pantry/internal/id"
)

// AnnotationSeparator joins the quantity annotations of merged ingredients.
const AnnotationSeparator = " + "

const itemIDAttempts = 5

// RecipeLookup resolves a recipe id to its ingredient lines.
type RecipeLookup interface {
	Ingredients(ctx context.Context, recipeID string) ([]domain.Ingredient, error)
}

// Options tunes a derivation.
type Options struct {
	// Title overrides the derived list title.
	Title string
}

// Result is a derived grocery list plus the recipes that could not contribute.
type Result struct {
	List             domain.GroceryList `json:"list"`
	SkippedRecipeIDs []string           `json:"skipped_recipe_ids"`
	Warnings         []string           `json:"warnings,omitempty"`
}

// Title derives a grocery list title from a meal plan name.
func Title(planName string) string {
	planName = strings.TrimSpace(planName)
	if planName == "" {
		return "Groceries"
	}
	return "Groceries for " + planName
}

type aggregate struct {
	item        domain.GroceryItem
	annotations []string
}

// Generate builds a grocery list from every recipe the plan references.
//
// Ingredients merge on their normalized name. Quantities are never added up:
// each contribution's annotation is kept and joined with AnnotationSeparator.
// A recipe whose ingredients cannot be resolved is recorded in
// SkippedRecipeIDs and the rest of the plan is still processed.
//
// Generate does not persist anything.
func Generate(ctx context.Context, plan domain.MealPlan, planName string, lookup RecipeLookup, opts Options) (*Result, error) {
	if lookup == nil {
		return nil, domainerrors.Internalf("grocery: nil recipe lookup")
	}

	result := &Result{
		SkippedRecipeIDs: []string{},
	}

	var order []string
	byKey := make(map[string]*aggregate)

	for _, ref := range plan.RecipeRefs() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ingredients, err := lookup.Ingredients(ctx, ref.RecipeID)
		if err != nil {
			result.SkippedRecipeIDs = append(result.SkippedRecipeIDs, ref.RecipeID)
			result.Warnings = append(result.Warnings, skipWarning(ref, err))
			continue
		}

		for _, ing := range ingredients {
			key := NormalizeName(ing.Name)
			if key == "" {
				continue
			}

			agg, ok := byKey[key]
			if !ok {
				agg = &aggregate{item: domain.GroceryItem{
					Name:            strings.TrimSpace(ing.Name),
					SourceRecipeIDs: []string{},
				}}
				byKey[key] = agg
				order = append(order, key)
			}
			agg.item.AddSource(ref.RecipeID)
			if a := ing.Annotation(); a != "" {
				agg.annotations = append(agg.annotations, a)
			}
		}
	}

	title := opts.Title
	if strings.TrimSpace(title) == "" {
		title = Title(planName)
	}

	items := make([]domain.GroceryItem, 0, len(order))
	used := make(map[string]bool, len(order))
	for _, key := range order {
		agg := byKey[key]

		itemID, err := id.NewDraftID("item", itemIDAttempts, func(candidate string) bool {
			return used[candidate]
		})
		if err != nil {
			return nil, err
		}
		used[itemID] = true

		item := agg.item
		item.ID = itemID
		if len(agg.annotations) > 0 {
			q := strings.Join(agg.annotations, AnnotationSeparator)
			item.Quantity = &q
		}
		items = append(items, item)
	}

	result.List = domain.GroceryList{Title: title, Items: items}
	return result, nil
}

func skipWarning(ref domain.RecipeRef, err error) string {
	label := ref.RecipeID
	if ref.Title != "" {
		label = fmt.Sprintf("%q (%s)", ref.Title, ref.RecipeID)
	}
	return fmt.Sprintf("skipped recipe %s: %v", label, err)
}
