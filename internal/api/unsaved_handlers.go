package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/pantry/internal/api/dto"
)

func (s *Server) registerUnsavedRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUnsavedChanges",
		Method:      http.MethodGet,
		Path:        "/api/v1/unsaved",
		Summary:     "List keys with unsaved changes",
		Tags:        []string{"Unsaved Changes"},
	}, s.handleListUnsaved)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUnsavedChanges",
		Method:      http.MethodGet,
		Path:        "/api/v1/unsaved/{key}",
		Summary:     "Check unsaved changes",
		Description: "Unknown keys report no unsaved changes",
		Tags:        []string{"Unsaved Changes"},
	}, s.handleGetUnsaved)

	huma.Register(s.api, huma.Operation{
		OperationID: "setUnsavedChanges",
		Method:      http.MethodPut,
		Path:        "/api/v1/unsaved/{key}",
		Summary:     "Flag or clear unsaved changes",
		Tags:        []string{"Unsaved Changes"},
	}, s.handleSetUnsaved)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearUnsavedChanges",
		Method:      http.MethodDelete,
		Path:        "/api/v1/unsaved",
		Summary:     "Clear all unsaved change flags",
		Tags:        []string{"Unsaved Changes"},
	}, s.handleClearUnsaved)
}

// UnsavedKeyParam identifies an unsaved-changes flag.
type UnsavedKeyParam struct {
	Key string `path:"key" maxLength:"256" doc:"Caller-defined key, typically kind:id"`
}

// SetUnsavedInput sets or clears one flag.
type SetUnsavedInput struct {
	UnsavedKeyParam
	Body struct {
		Unsaved bool `json:"unsaved" doc:"True when the key has unsaved edits"`
	}
}

// UnsavedResponse reports one flag.
type UnsavedResponse struct {
	Key     string `json:"key" doc:"Flag key"`
	Unsaved bool   `json:"unsaved" doc:"True when the key has unsaved edits"`
}

// UnsavedOutput wraps one flag for Huma.
type UnsavedOutput struct {
	Body UnsavedResponse
}

// UnsavedKeysResponse lists flagged keys.
type UnsavedKeysResponse struct {
	Keys []string `json:"keys" doc:"Keys with unsaved edits, sorted"`
}

// UnsavedKeysOutput wraps flagged keys for Huma.
type UnsavedKeysOutput struct {
	Body UnsavedKeysResponse
}

func (s *Server) handleListUnsaved(_ context.Context, _ *struct{}) (*UnsavedKeysOutput, error) {
	keys := s.drafts.UnsavedKeys()
	if keys == nil {
		keys = []string{}
	}
	return &UnsavedKeysOutput{Body: UnsavedKeysResponse{Keys: keys}}, nil
}

func (s *Server) handleGetUnsaved(_ context.Context, input *UnsavedKeyParam) (*UnsavedOutput, error) {
	return &UnsavedOutput{Body: UnsavedResponse{
		Key:     input.Key,
		Unsaved: s.drafts.HasUnsavedChanges(input.Key),
	}}, nil
}

func (s *Server) handleSetUnsaved(_ context.Context, input *SetUnsavedInput) (*UnsavedOutput, error) {
	if err := s.drafts.SetUnsavedChanges(input.Key, input.Body.Unsaved); err != nil {
		return nil, err
	}
	return &UnsavedOutput{Body: UnsavedResponse{Key: input.Key, Unsaved: input.Body.Unsaved}}, nil
}

func (s *Server) handleClearUnsaved(_ context.Context, _ *struct{}) (*dto.MessageOutput, error) {
	s.drafts.ClearUnsavedChanges()
	return dto.NewMessage("Unsaved changes cleared"), nil
}
