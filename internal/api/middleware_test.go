package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/listenupapp/pantry/internal/errors"
	"github.com/listenupapp/pantry/internal/ratelimit"
)

func TestEnvelopeTransformer_AlwaysIncludesVersion(t *testing.T) {
	tests := []struct {
		name   string
		status string
		input  any
	}{
		{
			name:   "success response",
			status: "200",
			input:  map[string]string{"key": "value"},
		},
		{
			name:   "created response",
			status: "201",
			input:  map[string]string{"id": "mp-123"},
		},
		{
			name:   "no content response",
			status: "204",
			input:  nil,
		},
		{
			name:   "bad request error",
			status: "400",
			input:  errors.New("invalid input"),
		},
		{
			name:   "coded error with details",
			status: "400",
			input: &APIError{
				Code:    "VALIDATION",
				Message: "name too long",
				Details: map[string]string{"name": "must not exceed 200 characters"},
			},
		},
		{
			name:   "domain error",
			status: "422",
			input:  domainerrors.CorruptDraftf(nil, "draft mp-1 is unreadable"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := EnvelopeTransformer(nil, tt.status, tt.input)
			require.NoError(t, err)

			jsonBytes, err := json.Marshal(result)
			require.NoError(t, err)

			var envelope map[string]any
			require.NoError(t, json.Unmarshal(jsonBytes, &envelope))

			require.Contains(t, envelope, "v", "Envelope must contain version field 'v'")
			assert.Equal(t, float64(EnvelopeVersion), envelope["v"])
		})
	}
}

func TestEnvelopeTransformer_SuccessResponse(t *testing.T) {
	data := map[string]string{"name": "Week one"}

	result, err := EnvelopeTransformer(nil, "200", data)
	require.NoError(t, err)

	envelope, ok := result.(APIEnvelope)
	require.True(t, ok, "Expected APIEnvelope type")

	assert.Equal(t, EnvelopeVersion, envelope.Version)
	assert.True(t, envelope.Success)
	assert.Equal(t, data, envelope.Data)
	assert.Empty(t, envelope.Error)
}

func TestEnvelopeTransformer_ErrorResponse(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "400", errors.New("validation failed"))
	require.NoError(t, err)

	envelope, ok := result.(APIEnvelope)
	require.True(t, ok, "Expected APIEnvelope type")

	assert.False(t, envelope.Success)
	assert.Nil(t, envelope.Data)
	assert.Equal(t, "validation failed", envelope.Error)
}

func TestEnvelopeTransformer_ErrorWithDetails(t *testing.T) {
	apiErr := &APIError{
		Code:    "VALIDATION",
		Message: "request invalid",
		Details: []string{"option1", "option2"},
	}

	result, err := EnvelopeTransformer(nil, "400", apiErr)
	require.NoError(t, err)

	envelope, ok := result.(APIErrorEnvelope)
	require.True(t, ok, "Expected APIErrorEnvelope type")

	assert.Equal(t, EnvelopeVersion, envelope.Version)
	assert.False(t, envelope.Success)
	assert.Equal(t, "VALIDATION", envelope.Code)
	assert.Equal(t, "request invalid", envelope.Message)
	assert.Equal(t, "request invalid", envelope.Error)
	assert.Equal(t, []string{"option1", "option2"}, envelope.Details)
}

func TestEnvelopeTransformer_DomainErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         *domainerrors.Error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "storage failure hides cause",
			err:         domainerrors.StorageFailure(errors.New("io timeout"), "read meal_plan index"),
			wantCode:    "STORAGE_FAILURE",
			wantMessage: "read meal_plan index",
		},
		{
			name:        "internal message masked",
			err:         domainerrors.Internalf("nil pointer in %s", "catalog"),
			wantCode:    "INTERNAL",
			wantMessage: "internal server error",
		},
		{
			name:        "not found",
			err:         domainerrors.NotFound("meal plan mp-1 not found"),
			wantCode:    "NOT_FOUND",
			wantMessage: "meal plan mp-1 not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := EnvelopeTransformer(nil, "500", tt.err)
			require.NoError(t, err)

			envelope, ok := result.(APIErrorEnvelope)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, envelope.Code)
			assert.Equal(t, tt.wantMessage, envelope.Message)
		})
	}
}

func TestEnvelopeTransformer_PassesEnvelopesThrough(t *testing.T) {
	in := APIEnvelope{Version: EnvelopeVersion, Success: true, Data: "x"}

	result, err := EnvelopeTransformer(nil, "200", in)
	require.NoError(t, err)
	assert.Equal(t, in, result)
}

func TestRequestLogger_LevelsByStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"ok", http.StatusOK, "DEBUG"},
		{"client error", http.StatusNotFound, "WARN"},
		{"server error", http.StatusServiceUnavailable, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			h := requestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/meal-plans", nil))

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "/api/v1/meal-plans", entry["path"])
			assert.Equal(t, float64(tt.status), entry["status"])
		})
	}
}

func TestRateLimitMiddleware_PerClient(t *testing.T) {
	limiter := ratelimit.PerMinute(1, 1)
	defer limiter.Stop()

	logger := slog.New(slog.DiscardHandler)
	h := RateLimitMiddleware(limiter, logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func(method, remote string) int {
		req := httptest.NewRequest(method, "/api/v1/meal-plans", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, send(http.MethodPost, "10.0.0.1:5000"))
	assert.Equal(t, http.StatusTooManyRequests, send(http.MethodPut, "10.0.0.1:5001"))
	assert.Equal(t, http.StatusNoContent, send(http.MethodPost, "10.0.0.2:5000"))
	assert.Equal(t, http.StatusNoContent, send(http.MethodGet, "10.0.0.1:5000"))
}
