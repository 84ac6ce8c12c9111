package store

import (
	"strings"

	"github.com/listenupapp/pantry/internal/domain"
)

// Key layout:
//
//	draft:<kind>:<id>    serialized Draft document
//	idx:draft:<kind>     JSON array of the ids known for a kind
//	recipe:<id>          serialized Recipe
const (
	draftPrefix      = "draft:"
	draftIndexPrefix = "idx:draft:"

	// RecipePrefix namespaces recipe catalog entries.
	RecipePrefix = "recipe:"
)

// DraftKey returns the blob key for a draft document.
func DraftKey(kind domain.Kind, id string) string {
	return draftPrefix + string(kind) + ":" + id
}

// DraftKeyPrefix returns the prefix shared by every draft blob of a kind.
func DraftKeyPrefix(kind domain.Kind) string {
	return draftPrefix + string(kind) + ":"
}

// IndexKey returns the blob key of a kind's id index.
func IndexKey(kind domain.Kind) string {
	return draftIndexPrefix + string(kind)
}

// idFromDraftKey extracts the draft id from a key built by DraftKey.
func idFromDraftKey(kind domain.Kind, key string) (string, bool) {
	id, ok := strings.CutPrefix(key, DraftKeyPrefix(kind))
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
