package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/pantry/internal/api/dto"
	"github.com/listenupapp/pantry/internal/store"
)

func (s *Server) registerMealPlanRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listMealPlans",
		Method:      http.MethodGet,
		Path:        "/api/v1/meal-plans",
		Summary:     "List meal plan drafts",
		Description: "Returns meal plan draft metadata, most recently updated first",
		Tags:        []string{"Meal Plans"},
	}, s.handleListMealPlans)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createMealPlan",
		Method:        http.MethodPost,
		Path:          "/api/v1/meal-plans",
		Summary:       "Create meal plan draft",
		Description:   "Saves a new meal plan draft under a generated ID",
		Tags:          []string{"Meal Plans"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateMealPlan)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMealPlan",
		Method:      http.MethodGet,
		Path:        "/api/v1/meal-plans/{id}",
		Summary:     "Get meal plan draft",
		Tags:        []string{"Meal Plans"},
	}, s.handleGetMealPlan)

	huma.Register(s.api, huma.Operation{
		OperationID: "saveMealPlan",
		Method:      http.MethodPut,
		Path:        "/api/v1/meal-plans/{id}",
		Summary:     "Save meal plan draft",
		Description: "Replaces the draft with this ID, creating it if it does not exist",
		Tags:        []string{"Meal Plans"},
	}, s.handleSaveMealPlan)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteMealPlan",
		Method:      http.MethodDelete,
		Path:        "/api/v1/meal-plans/{id}",
		Summary:     "Delete meal plan draft",
		Description: "Deletes the draft; deleting a missing draft succeeds",
		Tags:        []string{"Meal Plans"},
	}, s.handleDeleteMealPlan)
}

func (s *Server) registerGroceryListRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listGroceryLists",
		Method:      http.MethodGet,
		Path:        "/api/v1/grocery-lists",
		Summary:     "List grocery list drafts",
		Description: "Returns grocery list draft metadata, most recently updated first",
		Tags:        []string{"Grocery Lists"},
	}, s.handleListGroceryLists)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createGroceryList",
		Method:        http.MethodPost,
		Path:          "/api/v1/grocery-lists",
		Summary:       "Create grocery list draft",
		Tags:          []string{"Grocery Lists"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateGroceryList)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGroceryList",
		Method:      http.MethodGet,
		Path:        "/api/v1/grocery-lists/{id}",
		Summary:     "Get grocery list draft",
		Tags:        []string{"Grocery Lists"},
	}, s.handleGetGroceryList)

	huma.Register(s.api, huma.Operation{
		OperationID: "saveGroceryList",
		Method:      http.MethodPut,
		Path:        "/api/v1/grocery-lists/{id}",
		Summary:     "Save grocery list draft",
		Description: "Replaces the draft with this ID, creating it if it does not exist",
		Tags:        []string{"Grocery Lists"},
	}, s.handleSaveGroceryList)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteGroceryList",
		Method:      http.MethodDelete,
		Path:        "/api/v1/grocery-lists/{id}",
		Summary:     "Delete grocery list draft",
		Description: "Deletes the draft; deleting a missing draft succeeds",
		Tags:        []string{"Grocery Lists"},
	}, s.handleDeleteGroceryList)
}

// === DTOs ===

// DraftListOutput wraps a draft listing for Huma.
type DraftListOutput struct {
	Body dto.DraftListResponse
}

// SaveOutput wraps a save result for Huma.
type SaveOutput struct {
	Body dto.SaveResponse
}

// CreateMealPlanInput wraps the create request.
type CreateMealPlanInput struct {
	Body dto.SaveMealPlanRequest
}

// SaveMealPlanInput wraps the save request.
type SaveMealPlanInput struct {
	dto.IDParam
	Body dto.SaveMealPlanRequest
}

// MealPlanOutput wraps a meal plan draft for Huma.
type MealPlanOutput struct {
	Body dto.MealPlanDraft
}

// CreateGroceryListInput wraps the create request.
type CreateGroceryListInput struct {
	Body dto.SaveGroceryListRequest
}

// SaveGroceryListInput wraps the save request.
type SaveGroceryListInput struct {
	dto.IDParam
	Body dto.SaveGroceryListRequest
}

// GroceryListOutput wraps a grocery list draft for Huma.
type GroceryListOutput struct {
	Body dto.GroceryListDraft
}

func saveOutput(res store.SaveResult) *SaveOutput {
	return &SaveOutput{Body: dto.SaveResponse{ID: res.ID, Created: res.Created, UpdatedAt: res.UpdatedAt}}
}

// === Meal plan handlers ===

func (s *Server) handleListMealPlans(ctx context.Context, _ *struct{}) (*DraftListOutput, error) {
	metas, err := s.drafts.ListMealPlans(ctx)
	if err != nil {
		return nil, err
	}
	return &DraftListOutput{Body: dto.DraftListResponse{Drafts: metas}}, nil
}

func (s *Server) handleCreateMealPlan(ctx context.Context, input *CreateMealPlanInput) (*SaveOutput, error) {
	res, err := s.drafts.SaveMealPlan(ctx, input.Body.Plan.ToDomain(), store.SaveOptions{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}
	return saveOutput(res), nil
}

func (s *Server) handleGetMealPlan(ctx context.Context, input *dto.IDParam) (*MealPlanOutput, error) {
	draft, err := s.drafts.LoadMealPlan(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &MealPlanOutput{Body: dto.NewMealPlanDraft(draft)}, nil
}

func (s *Server) handleSaveMealPlan(ctx context.Context, input *SaveMealPlanInput) (*SaveOutput, error) {
	res, err := s.drafts.SaveMealPlan(ctx, input.Body.Plan.ToDomain(), store.SaveOptions{ID: input.ID, Name: input.Body.Name})
	if err != nil {
		return nil, err
	}
	return saveOutput(res), nil
}

func (s *Server) handleDeleteMealPlan(ctx context.Context, input *dto.IDParam) (*dto.MessageOutput, error) {
	if err := s.drafts.DeleteMealPlan(ctx, input.ID); err != nil {
		return nil, err
	}
	return dto.NewMessage("Meal plan deleted"), nil
}

// === Grocery list handlers ===

func (s *Server) handleListGroceryLists(ctx context.Context, _ *struct{}) (*DraftListOutput, error) {
	metas, err := s.drafts.ListGroceryLists(ctx)
	if err != nil {
		return nil, err
	}
	return &DraftListOutput{Body: dto.DraftListResponse{Drafts: metas}}, nil
}

func (s *Server) handleCreateGroceryList(ctx context.Context, input *CreateGroceryListInput) (*SaveOutput, error) {
	res, err := s.drafts.SaveGroceryList(ctx, input.Body.List.ToDomain(), store.SaveOptions{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}
	return saveOutput(res), nil
}

func (s *Server) handleGetGroceryList(ctx context.Context, input *dto.IDParam) (*GroceryListOutput, error) {
	draft, err := s.drafts.LoadGroceryList(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GroceryListOutput{Body: dto.NewGroceryListDraft(draft)}, nil
}

func (s *Server) handleSaveGroceryList(ctx context.Context, input *SaveGroceryListInput) (*SaveOutput, error) {
	res, err := s.drafts.SaveGroceryList(ctx, input.Body.List.ToDomain(), store.SaveOptions{ID: input.ID, Name: input.Body.Name})
	if err != nil {
		return nil, err
	}
	return saveOutput(res), nil
}

func (s *Server) handleDeleteGroceryList(ctx context.Context, input *dto.IDParam) (*dto.MessageOutput, error) {
	if err := s.drafts.DeleteGroceryList(ctx, input.ID); err != nil {
		return nil, err
	}
	return dto.NewMessage("Grocery list deleted"), nil
}
