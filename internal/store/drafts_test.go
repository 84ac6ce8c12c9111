package store_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/pantry/internal/domain"
	domainerrors "github.com/listenupapp/pantry/internal/errors"
	"github.com/listenupapp/pantry/internal/store"
)

func setupDrafts(t *testing.T) (*store.Drafts, *store.MemoryStore) {
	t.Helper()
	blobs := store.NewMemoryStore()
	return store.NewDrafts(blobs, nil, store.Options{}), blobs
}

func samplePlan() domain.MealPlan {
	return domain.MealPlan{Days: []domain.Day{
		{Label: "Monday", Recipes: []domain.RecipeRef{{RecipeID: "r1", Title: "Pancakes"}, {RecipeID: "r2", Title: "Soup"}}},
		{Label: "Tuesday", Recipes: []domain.RecipeRef{{RecipeID: "r3", Title: "Salad"}}},
		{Label: "Monday", Recipes: nil},
	}}
}

func sampleList() domain.GroceryList {
	qty := "2 cups"
	return domain.GroceryList{
		Title: "Weekend",
		Items: []domain.GroceryItem{
			{ID: "item-1", Name: "Flour", Quantity: &qty, SourceRecipeIDs: []string{"r1"}},
			{ID: "item-2", Name: "Milk", IsCompleted: true},
		},
	}
}

func TestDrafts_MealPlanRoundTrip(t *testing.T) {
	d, _ := setupDrafts(t)
	ctx := context.Background()

	plan := samplePlan()
	res, err := d.SaveMealPlanDraft(ctx, plan, store.SaveOptions{Name: "Week 1"})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.True(t, strings.HasPrefix(res.ID, "mp-"))

	draft, err := d.LoadMealPlanDraft(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, draft.ID)
	assert.Equal(t, domain.KindMealPlan, draft.Kind)
	assert.Equal(t, "Week 1", draft.Name)
	assert.True(t, res.UpdatedAt.Equal(draft.UpdatedAt))
	if diff := cmp.Diff(plan, draft.Payload); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestDrafts_GroceryListRoundTrip(t *testing.T) {
	d, _ := setupDrafts(t)
	ctx := context.Background()

	list := sampleList()
	// A hand-added item has no source recipes; the empty set must come back empty, not nil.
	list.Items = append(list.Items, domain.GroceryItem{ID: "item-3", Name: "Salt", SourceRecipeIDs: []string{}})
	res, err := d.SaveGroceryListDraft(ctx, list, store.SaveOptions{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.ID, "gl-"))

	draft, err := d.LoadGroceryListDraft(ctx, res.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(list, draft.Payload); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, strings.HasPrefix(draft.Name, "Grocery list "))
}

func TestDrafts_SameMillisecondSavesGetDistinctIDs(t *testing.T) {
	frozen := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	d := store.NewDrafts(store.NewMemoryStore(), nil, store.Options{Clock: func() time.Time { return frozen }})
	ctx := context.Background()

	a, err := d.SaveMealPlanDraft(ctx, samplePlan(), store.SaveOptions{})
	require.NoError(t, err)
	b, err := d.SaveMealPlanDraft(ctx, samplePlan(), store.SaveOptions{})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)

	metas, err := d.GetMealPlanDrafts(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 2)
	// b was stamped after a even though the clock did not move.
	assert.Equal(t, b.ID, metas[0].ID)
	assert.Equal(t, a.ID, metas[1].ID)
}

func TestDrafts_ResaveReplacesAndMovesToFront(t *testing.T) {
	d, _ := setupDrafts(t)
	ctx := context.Background()

	first, err := d.SaveMealPlanDraft(ctx, samplePlan(), store.SaveOptions{Name: "First"})
	require.NoError(t, err)
	second, err := d.SaveMealPlanDraft(ctx, samplePlan(), store.SaveOptions{Name: "Second"})
	require.NoError(t, err)

	metas, err := d.GetMealPlanDrafts(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, second.ID, metas[0].ID)

	before, err := d.LoadMealPlanDraft(ctx, first.ID)
	require.NoError(t, err)

	updated := domain.MealPlan{Days: []domain.Day{{Label: "Friday"}}}
	res, err := d.SaveMealPlanDraft(ctx, updated, store.SaveOptions{ID: first.ID})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, first.ID, res.ID)

	after, err := d.LoadMealPlanDraft(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", after.Name, "name is kept when not overridden")
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt))
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
	if diff := cmp.Diff(updated, after.Payload); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}

	metas, err = d.GetMealPlanDrafts(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, first.ID, metas[0].ID)
	assert.Equal(t, second.ID, metas[1].ID)
}

func TestDrafts_SaveUnderUnknownIDCreates(t *testing.T) {
	d, _ := setupDrafts(t)
	ctx := context.Background()

	res, err := d.SaveGroceryListDraft(ctx, sampleList(), store.SaveOptions{ID: "gl-imported"})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "gl-imported", res.ID)

	metas, err := d.GetGroceryListDrafts(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, "gl-imported", metas[0].ID)
}

func TestDrafts_LoadUnknownIsNotFound(t *testing.T) {
	d, _ := setupDrafts(t)

	_, err := d.LoadMealPlanDraft(context.Background(), "mp-missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestDrafts_KindsAreIsolated(t *testing.T) {
	d, _ := setupDrafts(t)
	ctx := context.Background()

	res, err := d.SaveMealPlanDraft(ctx, samplePlan(), store.SaveOptions{})
	require.NoError(t, err)

	_, err = d.LoadGroceryListDraft(ctx, res.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	lists, err := d.GetGroceryListDrafts(ctx)
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestDrafts_DeleteIsIdempotent(t *testing.T) {
	d, blobs := setupDrafts(t)
	ctx := context.Background()

	res, err := d.SaveMealPlanDraft(ctx, samplePlan(), store.SaveOptions{})
	require.NoError(t, err)

	require.NoError(t, d.DeleteMealPlanDraft(ctx, res.ID))
	require.NoError(t, d.DeleteMealPlanDraft(ctx, res.ID))
	require.NoError(t, d.DeleteMealPlanDraft(ctx, "mp-never-existed"))
	require.NoError(t, d.DeleteGroceryListDraft(ctx, "gl-never-existed"))

	_, err = d.LoadMealPlanDraft(ctx, res.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	metas, err := d.GetMealPlanDrafts(ctx)
	require.NoError(t, err)
	assert.Empty(t, metas)

	_, err = blobs.Get(ctx, store.DraftKey(domain.KindMealPlan, res.ID))
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestDrafts_CorruptBlob(t *testing.T) {
	d, blobs := setupDrafts(t)
	ctx := context.Background()

	good, err := d.SaveMealPlanDraft(ctx, samplePlan(), store.SaveOptions{})
	require.NoError(t, err)
	bad, err := d.SaveMealPlanDraft(ctx, samplePlan(), store.SaveOptions{})
	require.NoError(t, err)

	require.NoError(t, blobs.Set(ctx, store.DraftKey(domain.KindMealPlan, bad.ID), []byte("{not json")))

	_, err = d.LoadMealPlanDraft(ctx, bad.ID)
	assert.ErrorIs(t, err, domainerrors.ErrCorruptDraft)

	metas, err := d.GetMealPlanDrafts(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, good.ID, metas[0].ID)
}

func TestDrafts_WrongKindDocumentIsCorrupt(t *testing.T) {
	d, blobs := setupDrafts(t)
	ctx := context.Background()

	res, err := d.SaveMealPlanDraft(ctx, samplePlan(), store.SaveOptions{})
	require.NoError(t, err)

	data, err := blobs.Get(ctx, store.DraftKey(domain.KindMealPlan, res.ID))
	require.NoError(t, err)
	require.NoError(t, blobs.Set(ctx, store.DraftKey(domain.KindGroceryList, res.ID), data))

	_, err = d.LoadGroceryListDraft(ctx, res.ID)
	assert.ErrorIs(t, err, domainerrors.ErrCorruptDraft)
}

func TestDrafts_DanglingIndexEntryIsSkipped(t *testing.T) {
	d, blobs := setupDrafts(t)
	ctx := context.Background()

	kept, err := d.SaveGroceryListDraft(ctx, sampleList(), store.SaveOptions{})
	require.NoError(t, err)
	gone, err := d.SaveGroceryListDraft(ctx, sampleList(), store.SaveOptions{})
	require.NoError(t, err)

	require.NoError(t, blobs.Delete(ctx, store.DraftKey(domain.KindGroceryList, gone.ID)))

	metas, err := d.GetGroceryListDrafts(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, kept.ID, metas[0].ID)
}

func TestDrafts_BlobWriteFailure(t *testing.T) {
	d, blobs := setupDrafts(t)
	ctx := context.Background()

	blobs.FailSet = func(key string) error {
		if strings.HasPrefix(key, "draft:") {
			return errors.New("disk full")
		}
		return nil
	}

	_, err := d.SaveMealPlanDraft(ctx, samplePlan(), store.SaveOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrStorageFailure)
	assert.Equal(t, 0, blobs.Len())
}

func TestDrafts_IndexWriteFailureRollsBackBlob(t *testing.T) {
	d, blobs := setupDrafts(t)
	ctx := context.Background()

	blobs.FailSet = func(key string) error {
		if strings.HasPrefix(key, "idx:") {
			return errors.New("disk full")
		}
		return nil
	}

	_, err := d.SaveMealPlanDraft(ctx, samplePlan(), store.SaveOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrStorageFailure)

	keys, err := blobs.ListKeys(ctx, "draft:")
	require.NoError(t, err)
	assert.Empty(t, keys, "draft blob should be rolled back")
}

func TestDrafts_IndexWriteFailureRestoresOrphanBlob(t *testing.T) {
	d, blobs := setupDrafts(t)
	ctx := context.Background()

	// A blob left behind by an interrupted save: present, but not in the index.
	key := store.DraftKey(domain.KindMealPlan, "mp-orphan")
	orphan := []byte(`{"id":"mp-orphan","kind":"meal_plan","name":"Recovered","payload":{"days":[]}}`)
	require.NoError(t, blobs.Set(ctx, key, orphan))

	blobs.FailSet = func(key string) error {
		if strings.HasPrefix(key, "idx:") {
			return errors.New("disk full")
		}
		return nil
	}

	_, err := d.SaveMealPlanDraft(ctx, samplePlan(), store.SaveOptions{ID: "mp-orphan", Name: "Replacement"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrStorageFailure)

	got, err := blobs.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, string(orphan), string(got), "overwritten blob should be restored")

	blobs.FailSet = nil
	ids, err := d.MealPlans.IDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestDrafts_UnreadableIndexIsStorageFailure(t *testing.T) {
	d, blobs := setupDrafts(t)
	ctx := context.Background()

	blobs.FailGet = func(key string) error {
		if key == store.IndexKey(domain.KindMealPlan) {
			return errors.New("io error")
		}
		return nil
	}

	_, err := d.GetMealPlanDrafts(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrStorageFailure)

	_, err = d.SaveMealPlanDraft(ctx, samplePlan(), store.SaveOptions{})
	assert.ErrorIs(t, err, domainerrors.ErrStorageFailure)

	_, err = d.GetStorageStats(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrStorageFailure)
}

func TestDrafts_ConcurrentSavesOfDistinctDrafts(t *testing.T) {
	d, _ := setupDrafts(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.SaveMealPlanDraft(ctx, samplePlan(), store.SaveOptions{Name: fmt.Sprintf("plan %d", i)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	metas, err := d.GetMealPlanDrafts(ctx)
	require.NoError(t, err)
	assert.Len(t, metas, n)
}

type recordingIndexer struct {
	mu      sync.Mutex
	indexed []store.IndexedDraft
	deleted []string
}

func (r *recordingIndexer) IndexDraft(_ context.Context, doc store.IndexedDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexed = append(r.indexed, doc)
	return nil
}

func (r *recordingIndexer) DeleteDraft(_ context.Context, _ domain.Kind, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, id)
	return nil
}

func TestDrafts_IndexerHook(t *testing.T) {
	d, _ := setupDrafts(t)
	idx := &recordingIndexer{}
	d.SetIndexer(idx)
	ctx := context.Background()

	res, err := d.SaveGroceryListDraft(ctx, sampleList(), store.SaveOptions{Name: "Party"})
	require.NoError(t, err)
	require.NoError(t, d.DeleteGroceryListDraft(ctx, res.ID))

	require.Len(t, idx.indexed, 1)
	assert.Equal(t, res.ID, idx.indexed[0].ID)
	assert.Equal(t, "Party", idx.indexed[0].Name)
	assert.Equal(t, []string{"Weekend", "Flour", "Milk"}, idx.indexed[0].Text)
	assert.Equal(t, []string{res.ID}, idx.deleted)
}

func TestDrafts_IndexerFailureDoesNotFailSave(t *testing.T) {
	d, _ := setupDrafts(t)
	d.SetIndexer(failingIndexer{})

	res, err := d.SaveMealPlanDraft(context.Background(), samplePlan(), store.SaveOptions{})
	require.NoError(t, err)
	require.NoError(t, d.DeleteMealPlanDraft(context.Background(), res.ID))
}

type failingIndexer struct{}

func (failingIndexer) IndexDraft(context.Context, store.IndexedDraft) error {
	return errors.New("index offline")
}

func (failingIndexer) DeleteDraft(context.Context, domain.Kind, string) error {
	return errors.New("index offline")
}
