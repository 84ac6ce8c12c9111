package dto

import (
	"time"

	"github.com/listenupapp/pantry/internal/domain"
)

// RecipeRef points at a catalog recipe from a meal plan day.
type RecipeRef struct {
	RecipeID string `json:"recipe_id" doc:"Catalog recipe ID"`
	Title    string `json:"title,omitempty" doc:"Display title"`
}

// Day is one labeled entry of a meal plan.
type Day struct {
	Label   string      `json:"label" doc:"Day label, need not be unique"`
	Recipes []RecipeRef `json:"recipes,omitempty" doc:"Recipes in display order"`
}

// MealPlan is a meal plan payload as sent by clients.
type MealPlan struct {
	Days []Day `json:"days,omitempty" doc:"Days in display order"`
}

// ToDomain converts the request payload to the domain type.
func (m MealPlan) ToDomain() domain.MealPlan {
	plan := domain.MealPlan{}
	if len(m.Days) == 0 {
		return plan
	}
	plan.Days = make([]domain.Day, len(m.Days))
	for i, d := range m.Days {
		day := domain.Day{Label: d.Label}
		for _, r := range d.Recipes {
			day.Recipes = append(day.Recipes, domain.RecipeRef{RecipeID: r.RecipeID, Title: r.Title})
		}
		plan.Days[i] = day
	}
	return plan
}

// GroceryItem is one grocery list line as sent by clients.
type GroceryItem struct {
	ID              string   `json:"id" doc:"Item ID, unique within the list"`
	Name            string   `json:"name" doc:"Display name"`
	IsCompleted     bool     `json:"is_completed,omitempty" doc:"Checked off"`
	Quantity        *string  `json:"quantity,omitempty" doc:"Free-text quantity annotation"`
	SourceRecipeIDs []string `json:"source_recipe_ids,omitempty" doc:"Recipes that contributed the item"`
}

// GroceryList is a grocery list payload as sent by clients.
type GroceryList struct {
	Title string        `json:"title,omitempty" doc:"List title"`
	Items []GroceryItem `json:"items,omitempty" doc:"Items in display order"`
}

// ToDomain converts the request payload to the domain type.
func (g GroceryList) ToDomain() domain.GroceryList {
	list := domain.GroceryList{Title: g.Title}
	if len(g.Items) == 0 {
		return list
	}
	list.Items = make([]domain.GroceryItem, len(g.Items))
	for i, it := range g.Items {
		sources := it.SourceRecipeIDs
		if sources == nil {
			sources = []string{}
		}
		list.Items[i] = domain.GroceryItem{
			ID:              it.ID,
			Name:            it.Name,
			IsCompleted:     it.IsCompleted,
			Quantity:        it.Quantity,
			SourceRecipeIDs: sources,
		}
	}
	return list
}

// SaveMealPlanRequest creates or replaces a meal plan draft.
type SaveMealPlanRequest struct {
	Name string   `json:"name,omitempty" maxLength:"200" doc:"Draft name; empty keeps the current name or derives one"`
	Plan MealPlan `json:"plan" doc:"Meal plan payload"`
}

// SaveGroceryListRequest creates or replaces a grocery list draft.
type SaveGroceryListRequest struct {
	Name string      `json:"name,omitempty" maxLength:"200" doc:"Draft name; empty keeps the current name or derives one"`
	List GroceryList `json:"list" doc:"Grocery list payload"`
}

// SaveResponse reports the outcome of a draft save.
type SaveResponse struct {
	ID        string    `json:"id" doc:"Draft ID"`
	Created   bool      `json:"created" doc:"Whether a new draft was created"`
	UpdatedAt time.Time `json:"updated_at" doc:"Update timestamp assigned by the save"`
}

// DraftListResponse enumerates drafts of one kind, most recent first.
type DraftListResponse struct {
	Drafts []domain.DraftMeta `json:"drafts" doc:"Draft metadata"`
}

// MealPlanDraft is a stored meal plan draft.
type MealPlanDraft struct {
	ID        string          `json:"id" doc:"Draft ID"`
	Kind      domain.Kind     `json:"kind" doc:"Always meal_plan"`
	Name      string          `json:"name" doc:"Draft name"`
	Plan      domain.MealPlan `json:"plan" doc:"Meal plan payload"`
	CreatedAt time.Time       `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time       `json:"updated_at" doc:"Last save time"`
}

// NewMealPlanDraft converts a stored draft.
func NewMealPlanDraft(d *domain.Draft[domain.MealPlan]) MealPlanDraft {
	return MealPlanDraft{
		ID:        d.ID,
		Kind:      d.Kind,
		Name:      d.Name,
		Plan:      d.Payload,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// GroceryListDraft is a stored grocery list draft.
type GroceryListDraft struct {
	ID        string             `json:"id" doc:"Draft ID"`
	Kind      domain.Kind        `json:"kind" doc:"Always grocery_list"`
	Name      string             `json:"name" doc:"Draft name"`
	List      domain.GroceryList `json:"list" doc:"Grocery list payload"`
	CreatedAt time.Time          `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time          `json:"updated_at" doc:"Last save time"`
}

// NewGroceryListDraft converts a stored draft.
func NewGroceryListDraft(d *domain.Draft[domain.GroceryList]) GroceryListDraft {
	return GroceryListDraft{
		ID:        d.ID,
		Kind:      d.Kind,
		Name:      d.Name,
		List:      d.Payload,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// GenerateRequest controls grocery list derivation.
type GenerateRequest struct {
	Title string `json:"title,omitempty" maxLength:"200" doc:"Overrides the derived list title"`
	Save  bool   `json:"save,omitempty" doc:"Persist the result as a new grocery list draft"`
	Name  string `json:"name,omitempty" maxLength:"200" doc:"Name for the saved draft; defaults to the title"`
}

// GenerateFromPayloadRequest derives a grocery list from an unsaved meal plan.
type GenerateFromPayloadRequest struct {
	GenerateRequest
	PlanName string   `json:"plan_name,omitempty" maxLength:"200" doc:"Meal plan name used in the derived title"`
	Plan     MealPlan `json:"plan" doc:"Meal plan payload"`
}

// GenerateResponse is a derived grocery list.
type GenerateResponse struct {
	Draft            *SaveResponse      `json:"draft,omitempty" doc:"Saved draft, when save was requested"`
	List             domain.GroceryList `json:"list" doc:"Derived grocery list"`
	SkippedRecipeIDs []string           `json:"skipped_recipe_ids" doc:"Recipes whose ingredients could not be resolved"`
	Warnings         []string           `json:"warnings,omitempty" doc:"One line per skipped recipe"`
}

// Ingredient is one recipe ingredient line.
type Ingredient struct {
	Name     string `json:"name" doc:"Ingredient name"`
	Quantity string `json:"quantity,omitempty" doc:"Free-text quantity"`
	Unit     string `json:"unit,omitempty" doc:"Free-text unit"`
}

// RecipeRequest creates or replaces a catalog recipe.
type RecipeRequest struct {
	Title       string       `json:"title,omitempty" doc:"Recipe title"`
	Ingredients []Ingredient `json:"ingredients,omitempty" doc:"Ingredient lines"`
}

// ToDomain converts the request to a recipe stored under recipeID.
func (r RecipeRequest) ToDomain(recipeID string) *domain.Recipe {
	rec := &domain.Recipe{ID: recipeID, Title: r.Title}
	for _, in := range r.Ingredients {
		rec.Ingredients = append(rec.Ingredients, domain.Ingredient{Name: in.Name, Quantity: in.Quantity, Unit: in.Unit})
	}
	return rec
}
