package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/pantry/internal/api/dto"
	"github.com/listenupapp/pantry/internal/domain"
	"github.com/listenupapp/pantry/internal/store"
)

func mealPlanBody(name string, labels ...string) map[string]any {
	days := make([]map[string]any, 0, len(labels))
	for _, l := range labels {
		days = append(days, map[string]any{
			"label":   l,
			"recipes": []map[string]any{{"recipe_id": "pancakes", "title": "Pancakes"}},
		})
	}
	return map[string]any{"name": name, "plan": map[string]any{"days": days}}
}

func TestMealPlanHandlers_Lifecycle(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	created := ts.api.Post("/api/v1/meal-plans", mealPlanBody("Week one", "Monday", "Tuesday"))
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	saved := decode[dto.SaveResponse](t, created)
	assert.True(t, saved.Success)
	assert.True(t, saved.Data.Created)
	require.NotEmpty(t, saved.Data.ID)
	id := saved.Data.ID

	get := ts.api.Get("/api/v1/meal-plans/" + id)
	require.Equal(t, http.StatusOK, get.Code)
	draft := decode[dto.MealPlanDraft](t, get).Data
	assert.Equal(t, "Week one", draft.Name)
	assert.Equal(t, domain.KindMealPlan, draft.Kind)
	require.Len(t, draft.Plan.Days, 2)
	assert.Equal(t, "Monday", draft.Plan.Days[0].Label)
	assert.Equal(t, "pancakes", draft.Plan.Days[0].Recipes[0].RecipeID)

	// Re-saving without a name keeps the existing one.
	put := ts.api.Put("/api/v1/meal-plans/"+id, mealPlanBody("", "Friday"))
	require.Equal(t, http.StatusOK, put.Code, put.Body.String())
	assert.False(t, decode[dto.SaveResponse](t, put).Data.Created)

	draft = decode[dto.MealPlanDraft](t, ts.api.Get("/api/v1/meal-plans/"+id)).Data
	assert.Equal(t, "Week one", draft.Name)
	require.Len(t, draft.Plan.Days, 1)
	assert.Equal(t, "Friday", draft.Plan.Days[0].Label)

	list := decode[dto.DraftListResponse](t, ts.api.Get("/api/v1/meal-plans")).Data
	require.Len(t, list.Drafts, 1)
	assert.Equal(t, id, list.Drafts[0].ID)

	del := ts.api.Delete("/api/v1/meal-plans/" + id)
	require.Equal(t, http.StatusOK, del.Code)
	assert.Equal(t, "Meal plan deleted", decode[dto.MessageResponse](t, del).Data.Message)

	missing := ts.api.Get("/api/v1/meal-plans/" + id)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "NOT_FOUND", decode[any](t, missing).Code)

	// Deleting again still succeeds.
	assert.Equal(t, http.StatusOK, ts.api.Delete("/api/v1/meal-plans/"+id).Code)
}

func TestMealPlanHandlers_PutCreatesUnderExplicitID(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Put("/api/v1/meal-plans/mp-custom", mealPlanBody("Custom", "Sunday"))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	saved := decode[dto.SaveResponse](t, resp).Data
	assert.Equal(t, "mp-custom", saved.ID)
	assert.True(t, saved.Created)
}

func TestMealPlanHandlers_Validation(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	tests := []struct {
		name string
		path string
		body any
	}{
		{
			name: "id with separator",
			path: "/api/v1/meal-plans/a:b",
			body: mealPlanBody("x", "Monday"),
		},
		{
			name: "empty day label",
			path: "/api/v1/meal-plans/mp-1",
			body: mealPlanBody("x", ""),
		},
		{
			name: "missing recipe id",
			path: "/api/v1/meal-plans/mp-1",
			body: map[string]any{"plan": map[string]any{"days": []map[string]any{
				{"label": "Monday", "recipes": []map[string]any{{"title": "No id"}}},
			}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Put(tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
			env := decode[any](t, resp)
			assert.False(t, env.Success)
			assert.Equal(t, "VALIDATION", env.Code)
		})
	}

	// Nothing was written.
	assert.Empty(t, decode[dto.DraftListResponse](t, ts.api.Get("/api/v1/meal-plans")).Data.Drafts)
}

func TestMealPlanHandlers_CorruptDraft(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Put("/api/v1/meal-plans/mp-1", mealPlanBody("Week", "Monday"))
	require.Equal(t, http.StatusOK, resp.Code)

	require.NoError(t, ts.blobs.Set(context.Background(), store.DraftKey(domain.KindMealPlan, "mp-1"), []byte("{not json")))

	get := ts.api.Get("/api/v1/meal-plans/mp-1")
	assert.Equal(t, http.StatusUnprocessableEntity, get.Code)
	assert.Equal(t, "CORRUPT_DRAFT", decode[any](t, get).Code)

	// Listing skips the unreadable draft.
	list := ts.api.Get("/api/v1/meal-plans")
	require.Equal(t, http.StatusOK, list.Code)
	assert.Empty(t, decode[dto.DraftListResponse](t, list).Data.Drafts)
}

func TestMealPlanHandlers_StorageFailure(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.blobs.FailGet = func(string) error { return errors.New("disk unavailable") }

	resp := ts.api.Get("/api/v1/meal-plans")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	env := decode[any](t, resp)
	assert.Equal(t, "STORAGE_FAILURE", env.Code)
	assert.NotContains(t, env.Message, "disk unavailable")
}

func TestGroceryListHandlers_Lifecycle(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	body := map[string]any{
		"name": "Saturday shop",
		"list": map[string]any{
			"title": "Saturday",
			"items": []map[string]any{
				{"id": "i1", "name": "Milk", "quantity": "2 l"},
				{"id": "i2", "name": "Eggs", "is_completed": true},
			},
		},
	}

	created := ts.api.Post("/api/v1/grocery-lists", body)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	id := decode[dto.SaveResponse](t, created).Data.ID
	require.NotEmpty(t, id)

	draft := decode[dto.GroceryListDraft](t, ts.api.Get("/api/v1/grocery-lists/"+id)).Data
	assert.Equal(t, "Saturday shop", draft.Name)
	assert.Equal(t, domain.KindGroceryList, draft.Kind)
	require.Len(t, draft.List.Items, 2)
	require.NotNil(t, draft.List.Items[0].Quantity)
	assert.Equal(t, "2 l", *draft.List.Items[0].Quantity)
	assert.True(t, draft.List.Items[1].IsCompleted)
	// Items sent without sources come back with an empty set.
	assert.NotNil(t, draft.List.Items[0].SourceRecipeIDs)
	assert.Empty(t, draft.List.Items[0].SourceRecipeIDs)

	list := decode[dto.DraftListResponse](t, ts.api.Get("/api/v1/grocery-lists")).Data
	require.Len(t, list.Drafts, 1)

	// Meal plans are a separate namespace.
	assert.Empty(t, decode[dto.DraftListResponse](t, ts.api.Get("/api/v1/meal-plans")).Data.Drafts)
	assert.Equal(t, http.StatusNotFound, ts.api.Get("/api/v1/meal-plans/"+id).Code)

	require.Equal(t, http.StatusOK, ts.api.Delete("/api/v1/grocery-lists/"+id).Code)
	assert.Equal(t, http.StatusNotFound, ts.api.Get("/api/v1/grocery-lists/"+id).Code)
}

func TestGroceryListHandlers_DuplicateItemIDs(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	body := map[string]any{"list": map[string]any{"items": []map[string]any{
		{"id": "i1", "name": "Milk"},
		{"id": "i1", "name": "Eggs"},
	}}}

	resp := ts.api.Put("/api/v1/grocery-lists/gl-1", body)
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
	assert.Equal(t, "VALIDATION", decode[any](t, resp).Code)
}
