package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/health")

	assert.Equal(t, http.StatusOK, resp.Code)

	health := decode[HealthResponse](t, resp).Data
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "healthy", health.Components["storage"].Status)
	assert.Equal(t, "search disabled", health.Components["search"].Message)
}

func TestHealthCheck_WithSearch(t *testing.T) {
	ts := setupTestServerWith(t, testOptions{search: true})
	defer ts.cleanup()

	require.Equal(t, http.StatusOK, ts.api.Put("/api/v1/meal-plans/mp-1", mealPlanBody("Week", "Monday")).Code)

	health := decode[HealthResponse](t, ts.api.Get("/health")).Data
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "1 draft indexed", health.Components["search"].Message)
}

func TestHealthCheck_StorageDown(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.blobs.FailGet = func(string) error { return errors.New("disk unavailable") }

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	health := decode[HealthResponse](t, resp).Data
	assert.Equal(t, "unhealthy", health.Status)
	assert.Equal(t, "unhealthy", health.Components["storage"].Status)
}
