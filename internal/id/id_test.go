package id

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/listenupapp/pantry/internal/errors"
)

func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = orig })
}

func TestGenerate_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	count := 1000

	for i := 0; i < count; i++ {
		id, err := Generate("test")
		require.NoError(t, err)
		assert.False(t, ids[id], "ID should be unique: %s", id)
		ids[id] = true
	}

	assert.Len(t, ids, count)
}

func TestGenerate_SameMillisecond(t *testing.T) {
	freezeClock(t, time.UnixMilli(1_700_000_000_000))

	a, err := Generate("mp")
	require.NoError(t, err)
	b, err := Generate("mp")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)

	// Same timestamp component, different suffix.
	partsA := strings.SplitN(a, "-", 3)
	partsB := strings.SplitN(b, "-", 3)
	require.Len(t, partsA, 3)
	require.Len(t, partsB, 3)
	assert.Equal(t, partsA[1], partsB[1])
	assert.NotEqual(t, partsA[2], partsB[2])
}

func TestGenerate_Format(t *testing.T) {
	freezeClock(t, time.UnixMilli(1_700_000_000_000))

	tests := []struct {
		name   string
		prefix string
	}{
		{"meal plan", "mp"},
		{"grocery list", "gl"},
		{"item", "item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Generate(tt.prefix)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(id, tt.prefix+"-"))

			rest := strings.TrimPrefix(id, tt.prefix+"-")
			ts, _, ok := strings.Cut(rest, "-")
			require.True(t, ok, "ID: %s", id)
			assert.Equal(t, "loyw3v28", ts)

			// The suffix may itself contain '-', so measure what follows the timestamp.
			assert.Len(t, rest[len(ts)+1:], suffixLength)
		})
	}
}

func TestNewDraftID_RetriesOnCollision(t *testing.T) {
	calls := 0
	id, err := NewDraftID("mp", 3, func(string) bool {
		calls++
		return calls < 3
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "mp-"))
	assert.Equal(t, 3, calls)
}

func TestNewDraftID_Exhausted(t *testing.T) {
	_, err := NewDraftID("mp", 2, func(string) bool { return true })
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrIDGenerationFailure)
}

func TestNewDraftID_DefaultAttempts(t *testing.T) {
	calls := 0
	_, err := NewDraftID("gl", 0, func(string) bool {
		calls++
		return true
	})
	require.Error(t, err)
	assert.Equal(t, DefaultMaxAttempts, calls)
}
