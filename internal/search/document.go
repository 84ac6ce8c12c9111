// Package search provides full-text search over draft names and contents using Bleve.
package search

import (
	"strings"

	"github.com/listenupapp/pantry/internal/domain"
	"github.com/listenupapp/pantry/internal/store"
)

// DraftDocument is the structure indexed for every draft.
//
// Contents holds the recipe titles of a meal plan, or the title and item
// names of a grocery list.
type DraftDocument struct {
	ID        string      `json:"id"`
	Kind      domain.Kind `json:"kind"`
	Name      string      `json:"name"`
	Contents  string      `json:"contents,omitempty"`
	UpdatedAt int64       `json:"updated_at"` // Unix millis
}

// DocumentFromDraft builds the index document for a draft projection.
func DocumentFromDraft(d store.IndexedDraft) *DraftDocument {
	return &DraftDocument{
		ID:        d.ID,
		Kind:      d.Kind,
		Name:      d.Name,
		Contents:  strings.Join(d.Text, "\n"),
		UpdatedAt: d.UpdatedAt.UnixMilli(),
	}
}

// docID returns the index key for a draft. Ids are only unique within a kind.
func docID(kind domain.Kind, id string) string {
	return string(kind) + ":" + id
}

// ToMap converts the document to a map with lowercase field names.
// This ensures field names match the Bleve index mapping.
func (d *DraftDocument) ToMap() map[string]any {
	m := map[string]any{
		"id":         d.ID,
		"kind":       string(d.Kind),
		"name":       d.Name,
		"updated_at": d.UpdatedAt,
	}
	if d.Contents != "" {
		m["contents"] = d.Contents
	}
	return m
}
