// Package dto provides request and response types for the Pantry API.
// These types are used by huma to generate OpenAPI documentation and perform validation.
package dto

// IDParam is a path parameter for draft and recipe IDs.
type IDParam struct {
	ID string `path:"id" maxLength:"128" doc:"Resource identifier"`
}

// MessageResponse is a simple success message response.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps a message response for huma.
type MessageOutput struct {
	Body MessageResponse
}

// NewMessage builds a MessageOutput.
func NewMessage(msg string) *MessageOutput {
	return &MessageOutput{Body: MessageResponse{Message: msg}}
}
