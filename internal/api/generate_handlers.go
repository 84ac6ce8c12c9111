package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/pantry/internal/api/dto"
	"github.com/listenupapp/pantry/internal/service"
)

func (s *Server) registerGenerateRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "generateGroceryList",
		Method:      http.MethodPost,
		Path:        "/api/v1/meal-plans/{id}/grocery-list",
		Summary:     "Generate grocery list from meal plan",
		Description: "Derives a grocery list from a stored meal plan draft. Recipes that cannot be resolved are reported, not fatal.",
		Tags:        []string{"Grocery Lists"},
	}, s.handleGenerateGroceryList)

	huma.Register(s.api, huma.Operation{
		OperationID: "generateGroceryListFromPayload",
		Method:      http.MethodPost,
		Path:        "/api/v1/grocery-lists/generate",
		Summary:     "Generate grocery list from unsaved meal plan",
		Description: "Derives a grocery list from a meal plan sent in the request body",
		Tags:        []string{"Grocery Lists"},
	}, s.handleGenerateFromPayload)
}

// GenerateInput wraps a derivation from a stored plan.
type GenerateInput struct {
	dto.IDParam
	Body dto.GenerateRequest `required:"false"`
}

// GenerateFromPayloadInput wraps a derivation from a plan payload.
type GenerateFromPayloadInput struct {
	Body dto.GenerateFromPayloadRequest
}

// GenerateOutput wraps a derived list for Huma.
type GenerateOutput struct {
	Body dto.GenerateResponse
}

func toServiceRequest(r dto.GenerateRequest) service.GenerateRequest {
	return service.GenerateRequest{Title: r.Title, Save: r.Save, Name: r.Name}
}

func toGenerateOutput(res *service.GenerateResult) *GenerateOutput {
	out := &GenerateOutput{Body: dto.GenerateResponse{
		List:             res.List,
		SkippedRecipeIDs: res.SkippedRecipeIDs,
		Warnings:         res.Warnings,
	}}
	if res.Draft != nil {
		out.Body.Draft = &dto.SaveResponse{ID: res.Draft.ID, Created: res.Draft.Created, UpdatedAt: res.Draft.UpdatedAt}
	}
	return out
}

func (s *Server) handleGenerateGroceryList(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	res, err := s.drafts.GenerateGroceryList(ctx, input.ID, toServiceRequest(input.Body))
	if err != nil {
		return nil, err
	}
	return toGenerateOutput(res), nil
}

func (s *Server) handleGenerateFromPayload(ctx context.Context, input *GenerateFromPayloadInput) (*GenerateOutput, error) {
	res, err := s.drafts.GenerateFromPayload(ctx, input.Body.Plan.ToDomain(), input.Body.PlanName, toServiceRequest(input.Body.GenerateRequest))
	if err != nil {
		return nil, err
	}
	return toGenerateOutput(res), nil
}
