package service

import (
	"context"
	"strings"

	"github.com/listenupapp/pantry/internal/domain"
	domainerrors "github.com/listenupapp/pantry/internal/errors"
	"github.com/listenupapp/pantry/internal/grocery"
	"github.com/listenupapp/pantry/internal/store"
)

// GenerateRequest controls a grocery list derivation.
type GenerateRequest struct {
	// Title overrides the derived list title.
	Title string `json:"title,omitempty" validate:"max=200"`
	// Save persists the derived list as a new grocery list draft.
	Save bool `json:"save,omitempty"`
	// Name names the saved draft. Defaults to the list title.
	Name string `json:"name,omitempty" validate:"max=200"`
}

// GenerateResult is a derived grocery list and, when saved, its draft.
type GenerateResult struct {
	Draft            *store.SaveResult  `json:"draft,omitempty"`
	List             domain.GroceryList `json:"list"`
	SkippedRecipeIDs []string           `json:"skipped_recipe_ids"`
	Warnings         []string           `json:"warnings,omitempty"`
}

// GenerateGroceryList derives a grocery list from a stored meal plan draft.
func (s *DraftService) GenerateGroceryList(ctx context.Context, mealPlanID string, req GenerateRequest) (*GenerateResult, error) {
	plan, err := s.LoadMealPlan(ctx, mealPlanID)
	if err != nil {
		return nil, err
	}

	res, err := s.generate(ctx, plan.Payload, plan.Name, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("grocery list generated",
		"meal_plan_id", mealPlanID,
		"items", len(res.List.Items),
		"skipped", len(res.SkippedRecipeIDs),
		"saved", res.Draft != nil,
	)
	return res, nil
}

// GenerateFromPayload derives a grocery list from a meal plan that was never saved.
func (s *DraftService) GenerateFromPayload(ctx context.Context, plan domain.MealPlan, planName string, req GenerateRequest) (*GenerateResult, error) {
	if err := s.validator.Validate(&plan); err != nil {
		return nil, err
	}

	res, err := s.generate(ctx, plan, planName, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("grocery list generated from payload",
		"items", len(res.List.Items),
		"skipped", len(res.SkippedRecipeIDs),
		"saved", res.Draft != nil,
	)
	return res, nil
}

func (s *DraftService) generate(ctx context.Context, plan domain.MealPlan, planName string, req GenerateRequest) (*GenerateResult, error) {
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}
	if s.lookup == nil {
		return nil, domainerrors.Internalf("no recipe lookup configured")
	}

	derived, err := grocery.Generate(ctx, plan, planName, s.lookup, grocery.Options{Title: strings.TrimSpace(req.Title)})
	if err != nil {
		return nil, err
	}

	for _, w := range derived.Warnings {
		s.logger.Warn("recipe skipped during generation", "detail", w)
	}

	res := &GenerateResult{
		List:             derived.List,
		SkippedRecipeIDs: derived.SkippedRecipeIDs,
		Warnings:         derived.Warnings,
	}
	if res.SkippedRecipeIDs == nil {
		res.SkippedRecipeIDs = []string{}
	}

	if req.Save {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = derived.List.Title
		}
		saved, err := s.SaveGroceryList(ctx, derived.List, store.SaveOptions{Name: name})
		if err != nil {
			return nil, err
		}
		res.Draft = &saved
	}

	return res, nil
}
