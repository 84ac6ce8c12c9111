// Package store persists meal-plan and grocery-list drafts on top of a
// key-value blob store.
package store

import (
	"context"
	"errors"

	"github.com/listenupapp/pantry/internal/domain"
)

// ErrKeyNotFound is returned by Blobs.Get when the key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// Blobs is the key-value contract the draft repository is written against.
// Keys are opaque strings, values are opaque bytes.
//
// Implementations must be safe for concurrent use. Get returns ErrKeyNotFound
// for a missing key. Delete of a missing key is not an error. ListKeys
// returns the keys carrying prefix in ascending byte order.
type Blobs interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	ListKeys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Indexer keeps a secondary search index in sync with draft writes.
// Store uses this to keep search in sync without depending on the search implementation.
// Failures are logged and never fail the write that triggered them.
type Indexer interface {
	IndexDraft(ctx context.Context, doc IndexedDraft) error
	DeleteDraft(ctx context.Context, kind domain.Kind, id string) error
}

// NoopIndexer is a no-op implementation of Indexer.
type NoopIndexer struct{}

// IndexDraft is a no-op.
func (NoopIndexer) IndexDraft(context.Context, IndexedDraft) error { return nil }

// DeleteDraft is a no-op.
func (NoopIndexer) DeleteDraft(context.Context, domain.Kind, string) error { return nil }
