package api

import (
	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/listenupapp/pantry/internal/errors"
	"github.com/listenupapp/pantry/internal/http/response"
)

// EnvelopeVersion is the envelope format version sent as "v".
const EnvelopeVersion = response.Version

// APIEnvelope wraps successful responses and plain errors.
type APIEnvelope = response.Envelope //nolint:revive // API prefix is intentional for clarity

// APIErrorEnvelope wraps coded errors.
type APIErrorEnvelope = response.ErrorEnvelope //nolint:revive // API prefix is intentional for clarity

// EnvelopeTransformer wraps every huma response body in the shared envelope.
// Coded errors keep their code and details; other errors become a plain error string.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	switch body := v.(type) {
	case APIEnvelope, APIErrorEnvelope, *APIEnvelope, *APIErrorEnvelope:
		return v, nil
	case *APIError:
		return response.NewErrorEnvelope(body.Code, body.Message, body.Details), nil
	case *domainerrors.Error:
		apiErr := fromDomainError(body)
		return response.NewErrorEnvelope(apiErr.Code, apiErr.Message, apiErr.Details), nil
	case error:
		return APIEnvelope{Version: EnvelopeVersion, Success: false, Error: body.Error()}, nil
	}

	return APIEnvelope{
		Version: EnvelopeVersion,
		Success: len(status) > 0 && status[0] < '4',
		Data:    v,
	}, nil
}
