// Package dirty tracks which open documents have unsaved edits.
package dirty

import (
	"slices"
	"sync"
)

// Tracker is an in-memory set of keys flagged as having unsaved changes.
// Keys are caller-chosen, e.g. "meal_plan:mp-123". Nothing is persisted.
// The zero value is ready to use.
type Tracker struct {
	mu    sync.RWMutex
	dirty map[string]struct{}
}

// New creates an empty Tracker.
func New() *Tracker {
	return &Tracker{dirty: make(map[string]struct{})}
}

// SetUnsavedChanges flags or clears key. Clearing removes the key entirely.
func (t *Tracker) SetUnsavedChanges(key string, unsaved bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !unsaved {
		delete(t.dirty, key)
		return
	}
	if t.dirty == nil {
		t.dirty = make(map[string]struct{})
	}
	t.dirty[key] = struct{}{}
}

// HasUnsavedChanges reports whether key is flagged. Unknown keys are clean.
func (t *Tracker) HasUnsavedChanges(key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.dirty[key]
	return ok
}

// ClearAll forgets every flag.
func (t *Tracker) ClearAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	clear(t.dirty)
}

// Keys returns the flagged keys, sorted.
func (t *Tracker) Keys() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]string, 0, len(t.dirty))
	for k := range t.dirty {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
