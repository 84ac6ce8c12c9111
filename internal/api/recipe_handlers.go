package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/pantry/internal/api/dto"
	"github.com/listenupapp/pantry/internal/domain"
)

func (s *Server) registerRecipeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes",
		Summary:     "List recipes",
		Tags:        []string{"Recipes"},
	}, s.handleListRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecipe",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Get recipe",
		Tags:        []string{"Recipes"},
	}, s.handleGetRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "putRecipe",
		Method:      http.MethodPut,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Create or replace recipe",
		Description: "Stores a recipe in the catalog that meal plans reference",
		Tags:        []string{"Recipes"},
	}, s.handlePutRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteRecipe",
		Method:      http.MethodDelete,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Delete recipe",
		Tags:        []string{"Recipes"},
	}, s.handleDeleteRecipe)
}

// PutRecipeInput wraps the recipe request.
type PutRecipeInput struct {
	dto.IDParam
	Body dto.RecipeRequest
}

// RecipeOutput wraps a recipe for Huma.
type RecipeOutput struct {
	Body *domain.Recipe
}

// RecipeListResponse lists catalog recipes.
type RecipeListResponse struct {
	Recipes []*domain.Recipe `json:"recipes" doc:"Catalog recipes ordered by ID"`
}

// RecipeListOutput wraps the recipe list for Huma.
type RecipeListOutput struct {
	Body RecipeListResponse
}

func (s *Server) handleListRecipes(ctx context.Context, _ *struct{}) (*RecipeListOutput, error) {
	recipes, err := s.drafts.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	if recipes == nil {
		recipes = []*domain.Recipe{}
	}
	return &RecipeListOutput{Body: RecipeListResponse{Recipes: recipes}}, nil
}

func (s *Server) handleGetRecipe(ctx context.Context, input *dto.IDParam) (*RecipeOutput, error) {
	r, err := s.drafts.GetRecipe(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &RecipeOutput{Body: r}, nil
}

func (s *Server) handlePutRecipe(ctx context.Context, input *PutRecipeInput) (*RecipeOutput, error) {
	r := input.Body.ToDomain(input.ID)
	if err := s.drafts.PutRecipe(ctx, r); err != nil {
		return nil, err
	}
	return &RecipeOutput{Body: r}, nil
}

func (s *Server) handleDeleteRecipe(ctx context.Context, input *dto.IDParam) (*dto.MessageOutput, error) {
	if err := s.drafts.DeleteRecipe(ctx, input.ID); err != nil {
		return nil, err
	}
	return dto.NewMessage("Recipe deleted"), nil
}
