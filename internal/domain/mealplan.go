package domain

// RecipeRef points at a recipe from a meal-plan day.
type RecipeRef struct {
	RecipeID string `json:"recipe_id" validate:"required"`
	Title    string `json:"title"`
}

// Day is one labeled entry of a meal plan. Labels need not be unique.
type Day struct {
	Label   string      `json:"label" validate:"required"`
	Recipes []RecipeRef `json:"recipes" validate:"dive"`
}

// MealPlan is the payload of a meal-plan draft.
// Day order and recipe order within a day are meaningful and preserved.
type MealPlan struct {
	Days []Day `json:"days" validate:"dive"`
}

// RecipeRefs flattens every recipe reference across all days,
// keeping the first occurrence of each recipe id in plan order.
func (m *MealPlan) RecipeRefs() []RecipeRef {
	seen := make(map[string]bool)
	var refs []RecipeRef
	for _, day := range m.Days {
		for _, ref := range day.Recipes {
			if seen[ref.RecipeID] {
				continue
			}
			seen[ref.RecipeID] = true
			refs = append(refs, ref)
		}
	}
	return refs
}

// SearchText returns the recipe titles referenced by the plan.
func (m *MealPlan) SearchText() []string {
	var titles []string
	for _, ref := range m.RecipeRefs() {
		if ref.Title != "" {
			titles = append(titles, ref.Title)
		}
	}
	return titles
}
