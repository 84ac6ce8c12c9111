package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	k, err := ParseKind("meal_plan")
	require.NoError(t, err)
	assert.Equal(t, KindMealPlan, k)

	k, err = ParseKind("grocery_list")
	require.NoError(t, err)
	assert.Equal(t, KindGroceryList, k)

	_, err = ParseKind("pantry")
	assert.Error(t, err)
}

func TestDefaultDraftName(t *testing.T) {
	at := time.Date(2026, 10, 17, 18, 4, 0, 0, time.UTC)
	assert.Equal(t, "Meal plan 2026-10-17 18:04", DefaultDraftName(KindMealPlan, at))
	assert.Equal(t, "Grocery list 2026-10-17 18:04", DefaultDraftName(KindGroceryList, at))
}

func TestMealPlan_RecipeRefs_FirstSeenOrder(t *testing.T) {
	plan := MealPlan{Days: []Day{
		{Label: "Monday", Recipes: []RecipeRef{{RecipeID: "r2", Title: "Soup"}, {RecipeID: "r1", Title: "Bread"}}},
		{Label: "Tuesday", Recipes: []RecipeRef{{RecipeID: "r1", Title: "Bread"}, {RecipeID: "r3", Title: "Salad"}}},
	}}

	refs := plan.RecipeRefs()
	require.Len(t, refs, 3)
	assert.Equal(t, "r2", refs[0].RecipeID)
	assert.Equal(t, "r1", refs[1].RecipeID)
	assert.Equal(t, "r3", refs[2].RecipeID)
	assert.Equal(t, []string{"Soup", "Bread", "Salad"}, plan.SearchText())
}

func TestGroceryItem_AddSource(t *testing.T) {
	item := GroceryItem{ID: "item-1", Name: "Flour"}
	assert.True(t, item.AddSource("r1"))
	assert.False(t, item.AddSource("r1"))
	assert.True(t, item.AddSource("r2"))
	assert.Equal(t, []string{"r1", "r2"}, item.SourceRecipeIDs)
}

func TestIngredient_Annotation(t *testing.T) {
	assert.Equal(t, "2 cups", Ingredient{Name: "Flour", Quantity: "2", Unit: "cups"}.Annotation())
	assert.Equal(t, "3", Ingredient{Name: "Eggs", Quantity: "3"}.Annotation())
	assert.Equal(t, "pinch", Ingredient{Name: "Salt", Unit: " pinch "}.Annotation())
	assert.Equal(t, "", Ingredient{Name: "Pepper"}.Annotation())
}
