package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/pantry/internal/domain"
	domainerrors "github.com/listenupapp/pantry/internal/errors"
	"github.com/listenupapp/pantry/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Verify WAL mode is set.
	var journalMode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	require.NoError(t, err)
	assert.Equal(t, "wal", journalMode)

	var name string
	err = s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='blobs'").Scan(&name)
	require.NoError(t, err)
}

func TestStore_GetSetDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "k", []byte("v1")))
	require.NoError(t, s.Set(ctx, "k", []byte("v2")))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestStore_ListKeys(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, k := range []string{"draft:meal_plan:b", "draft:meal_plan:a", "draft:grocery_list:c", "idx:draft:meal_plan"} {
		require.NoError(t, s.Set(ctx, k, []byte("x")))
	}

	keys, err := s.ListKeys(ctx, "draft:meal_plan:")
	require.NoError(t, err)
	assert.Equal(t, []string{"draft:meal_plan:a", "draft:meal_plan:b"}, keys)

	all, err := s.ListKeys(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := s.ListKeys(ctx, "recipe:")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_BacksDraftRepository(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	d := store.NewDrafts(s, nil, store.Options{})

	list := domain.GroceryList{Title: "Party", Items: []domain.GroceryItem{{ID: "i1", Name: "Chips"}}}
	res, err := d.SaveGroceryListDraft(ctx, list, store.SaveOptions{Name: "Saturday"})
	require.NoError(t, err)

	draft, err := d.LoadGroceryListDraft(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, list, draft.Payload)

	metas, err := d.GetGroceryListDrafts(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, "Saturday", metas[0].Name)

	require.NoError(t, d.DeleteGroceryListDraft(ctx, res.ID))
	_, err = d.LoadGroceryListDraft(ctx, res.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
