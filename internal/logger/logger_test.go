package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/pantry/internal/domain"
)

func TestNew_FormatAutoDetection(t *testing.T) {
	tests := []struct {
		env      string
		wantJSON bool
	}{
		{"production", true},
		{"development", false},
		{"staging", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(Config{Writer: &buf, Environment: tt.env, Level: slog.LevelInfo})
			l.Info("hello", "k", "v")

			var decoded map[string]any
			isJSON := json.Unmarshal(buf.Bytes(), &decoded) == nil
			assert.Equal(t, tt.wantJSON, isJSON, buf.String())
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewPrettyHandler(&buf, nil))

	l.Info("draft saved", "id", "mp-1", "name", "Week one")

	out := buf.String()
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "draft saved")
	assert.Contains(t, out, "id=mp-1")
	assert.Contains(t, out, `name="Week one"`)
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestPrettyHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WRN")
}

func TestPrettyHandler_GroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewPrettyHandler(&buf, nil)).
		With("component", "store").
		WithGroup("stats").
		With("kind", "meal_plan")

	l.Info("computed", "count", 3, slog.Group("bytes", "index", 10))

	out := buf.String()
	assert.Contains(t, out, "component=store")
	assert.Contains(t, out, "stats.kind=meal_plan")
	assert.Contains(t, out, "stats.count=3")
	assert.Contains(t, out, "stats.bytes.index=10")
}

func TestLogger_Helpers(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Format: formatJSON, Level: slog.LevelDebug})

	l.WithComponent("api").
		WithDraft(domain.KindGroceryList, "gl-1").
		WithError(errors.New("boom")).
		WithField("attempt", 2).
		Debug("retrying")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "api", decoded["component"])
	assert.Equal(t, "grocery_list", decoded["kind"])
	assert.Equal(t, "gl-1", decoded["draft_id"])
	assert.Equal(t, "boom", decoded["error"])
	assert.Equal(t, float64(2), decoded["attempt"])
}

func TestLogger_WithNilError(t *testing.T) {
	l := Discard()
	assert.Same(t, l, l.WithError(nil))
}
