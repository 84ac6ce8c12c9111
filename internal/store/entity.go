package store

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/listenupapp/pantry/internal/domain"
	domainerrors "github.com/listenupapp/pantry/internal/errors"
	"github.com/listenupapp/pantry/internal/id"
)

// SaveOptions controls a draft save.
type SaveOptions struct {
	// ID re-saves an existing draft (or creates one under that id) when set.
	// Empty means create a new draft with a generated id.
	ID string

	// Name overrides the draft name. Empty keeps the existing name on a
	// re-save, or derives one from the creation time on a create.
	Name string
}

// SaveResult reports the outcome of a save.
type SaveResult struct {
	ID        string    `json:"id"`
	Created   bool      `json:"created"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IndexedDraft is the searchable projection of a draft handed to an Indexer.
type IndexedDraft struct {
	ID        string
	Kind      domain.Kind
	Name      string
	Text      []string
	UpdatedAt time.Time
}

// Entity stores drafts of a single kind.
//
// Every draft lives in its own blob; the kind's index blob lists the ids.
// Writes go blob first, index second, so an interrupted save can leave an
// orphaned blob but never an index entry without a blob.
type Entity[P domain.Payload] struct {
	blobs      Blobs
	kind       domain.Kind
	logger     *slog.Logger
	idAttempts int
	textOf     func(*P) []string
	indexer    Indexer

	// mu serializes read-modify-write cycles on the index blob.
	mu        sync.Mutex
	clock     func() time.Time
	lastStamp time.Time
}

// NewEntity creates an Entity for kind over blobs.
func NewEntity[P domain.Payload](blobs Blobs, kind domain.Kind, logger *slog.Logger) *Entity[P] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Entity[P]{
		blobs:      blobs,
		kind:       kind,
		logger:     logger.With("kind", string(kind)),
		idAttempts: id.DefaultMaxAttempts,
		indexer:    NoopIndexer{},
		clock:      time.Now,
	}
}

// WithSearchText sets the function that extracts searchable text from a payload.
func (e *Entity[P]) WithSearchText(fn func(*P) []string) *Entity[P] {
	e.textOf = fn
	return e
}

// Kind returns the draft kind this entity stores.
func (e *Entity[P]) Kind() domain.Kind {
	return e.kind
}

// Save persists payload as a draft and returns its id.
//
// Without opts.ID a new id is generated; with it the stored document under
// that id is replaced wholesale, keeping its original creation time.
func (e *Entity[P]) Save(ctx context.Context, payload P, opts SaveOptions) (SaveResult, error) {
	if err := ctx.Err(); err != nil {
		return SaveResult{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ids, err := e.readIndex(ctx)
	if err != nil {
		return SaveResult{}, err
	}

	now := e.stamp()
	draft := domain.Draft[P]{
		Kind:      e.kind,
		Name:      opts.Name,
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}

	existed := false
	// prevData holds the blob being replaced so a failed index write can restore it.
	var prevData []byte
	if opts.ID == "" {
		known := make(map[string]bool, len(ids))
		for _, v := range ids {
			known[v] = true
		}
		draft.ID, err = id.NewDraftID(e.kind.IDPrefix(), e.idAttempts, func(candidate string) bool {
			return known[candidate]
		})
		if err != nil {
			return SaveResult{}, err
		}
	} else {
		draft.ID = opts.ID
		prevData, err = e.blobs.Get(ctx, DraftKey(e.kind, opts.ID))
		switch {
		case err == nil:
			existed = true
			prev, decErr := e.decode(opts.ID, prevData)
			if decErr != nil {
				e.logger.Warn("overwriting unreadable draft", "id", opts.ID, "error", decErr)
				break
			}
			draft.CreatedAt = prev.CreatedAt
			if draft.Name == "" {
				draft.Name = prev.Name
			}
		case errors.Is(err, ErrKeyNotFound):
			prevData = nil
		default:
			return SaveResult{}, domainerrors.StorageFailuref(err, "read %s draft %s", e.kind, opts.ID)
		}
	}
	if draft.Name == "" {
		draft.Name = domain.DefaultDraftName(e.kind, draft.CreatedAt)
	}

	data, err := json.Marshal(&draft)
	if err != nil {
		return SaveResult{}, domainerrors.StorageFailuref(err, "serialize %s draft %s", e.kind, draft.ID)
	}

	key := DraftKey(e.kind, draft.ID)
	if err := e.blobs.Set(ctx, key, data); err != nil {
		return SaveResult{}, domainerrors.StorageFailuref(err, "write %s draft %s", e.kind, draft.ID)
	}

	if !slices.Contains(ids, draft.ID) {
		if err := e.writeIndex(ctx, append(ids, draft.ID)); err != nil {
			e.rollback(context.WithoutCancel(ctx), key, prevData)
			return SaveResult{}, err
		}
	}

	e.index(ctx, &draft)

	e.logger.Debug("draft saved", "id", draft.ID, "created", !existed)

	return SaveResult{
		ID:        draft.ID,
		Created:   !existed,
		UpdatedAt: draft.UpdatedAt,
	}, nil
}

// rollback undoes a blob write whose index update failed. An unindexed blob
// that was overwritten gets its previous bytes back; a new blob is removed.
func (e *Entity[P]) rollback(ctx context.Context, key string, prevData []byte) {
	var err error
	if prevData != nil {
		err = e.blobs.Set(ctx, key, prevData)
	} else {
		err = e.blobs.Delete(ctx, key)
	}
	if err != nil {
		e.logger.Warn("failed to roll back draft blob", "key", key, "error", err)
	}
}

// Load returns the draft stored under draftID.
// It fails with NotFound if no blob exists and CorruptDraft if it cannot be decoded.
func (e *Entity[P]) Load(ctx context.Context, draftID string) (*domain.Draft[P], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.load(ctx, draftID)
}

func (e *Entity[P]) load(ctx context.Context, draftID string) (*domain.Draft[P], error) {
	data, err := e.blobs.Get(ctx, DraftKey(e.kind, draftID))
	if errors.Is(err, ErrKeyNotFound) {
		return nil, domainerrors.NotFoundf("%s draft %s not found", e.kind.Label(), draftID)
	}
	if err != nil {
		return nil, domainerrors.StorageFailuref(err, "read %s draft %s", e.kind, draftID)
	}

	return e.decode(draftID, data)
}

func (e *Entity[P]) decode(draftID string, data []byte) (*domain.Draft[P], error) {
	var draft domain.Draft[P]
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, domainerrors.CorruptDraftf(err, "decode %s draft %s", e.kind, draftID)
	}
	if draft.Kind != e.kind || draft.ID != draftID {
		return nil, domainerrors.CorruptDraftf(nil, "%s draft %s holds a %q document with id %q", e.kind, draftID, draft.Kind, draft.ID)
	}
	return &draft, nil
}

// List returns the metadata of every readable draft, most recently updated
// first. Ties are broken by id. Index entries whose blob is missing or
// unreadable are logged and skipped.
func (e *Entity[P]) List(ctx context.Context) ([]domain.DraftMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids, err := e.IDs(ctx)
	if err != nil {
		return nil, err
	}

	metas := make([]domain.DraftMeta, 0, len(ids))
	for _, draftID := range ids {
		draft, err := e.load(ctx, draftID)
		switch {
		case err == nil:
			metas = append(metas, draft.Meta())
		case errors.Is(err, domainerrors.ErrNotFound):
			e.logger.Warn("index entry has no draft blob", "id", draftID)
		case errors.Is(err, domainerrors.ErrCorruptDraft):
			e.logger.Warn("skipping unreadable draft", "id", draftID, "error", err)
		default:
			return nil, err
		}
	}

	slices.SortFunc(metas, func(a, b domain.DraftMeta) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return metas, nil
}

// Delete removes a draft. Deleting an unknown id succeeds.
// The index entry goes first so a failure part way leaves at most an orphaned blob.
func (e *Entity[P]) Delete(ctx context.Context, draftID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ids, err := e.readIndex(ctx)
	if err != nil {
		return err
	}

	if i := slices.Index(ids, draftID); i >= 0 {
		if err := e.writeIndex(ctx, slices.Delete(ids, i, i+1)); err != nil {
			return err
		}
	}

	if err := e.blobs.Delete(ctx, DraftKey(e.kind, draftID)); err != nil {
		return domainerrors.StorageFailuref(err, "delete %s draft %s", e.kind, draftID)
	}

	if err := e.indexer.DeleteDraft(ctx, e.kind, draftID); err != nil {
		e.logger.Warn("failed to remove draft from search index", "id", draftID, "error", err)
	}

	e.logger.Debug("draft deleted", "id", draftID)
	return nil
}

// IDs returns the ids recorded in the kind's index, in insertion order.
func (e *Entity[P]) IDs(ctx context.Context) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.readIndex(ctx)
}

// readIndex loads the index blob. A missing index is an empty one.
// Callers must hold e.mu.
func (e *Entity[P]) readIndex(ctx context.Context) ([]string, error) {
	ids, _, err := e.readIndexSized(ctx)
	return ids, err
}

// readIndexSized is readIndex plus the stored size of the index blob.
// Callers must hold e.mu.
func (e *Entity[P]) readIndexSized(ctx context.Context) ([]string, int, error) {
	data, err := e.blobs.Get(ctx, IndexKey(e.kind))
	if errors.Is(err, ErrKeyNotFound) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, domainerrors.StorageFailuref(err, "read %s index", e.kind)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, 0, domainerrors.StorageFailuref(err, "decode %s index", e.kind)
	}
	return ids, len(data), nil
}

// writeIndex replaces the index blob. Callers must hold e.mu.
func (e *Entity[P]) writeIndex(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return domainerrors.StorageFailuref(err, "serialize %s index", e.kind)
	}
	if err := e.blobs.Set(ctx, IndexKey(e.kind), data); err != nil {
		return domainerrors.StorageFailuref(err, "write %s index", e.kind)
	}
	return nil
}

// stamp returns the current time, nudged forward so that successive saves
// through this entity never share an updatedAt. Callers must hold e.mu.
func (e *Entity[P]) stamp() time.Time {
	now := e.clock().UTC()
	if !now.After(e.lastStamp) {
		now = e.lastStamp.Add(time.Nanosecond)
	}
	e.lastStamp = now
	return now
}

func (e *Entity[P]) projection(draft *domain.Draft[P]) IndexedDraft {
	doc := IndexedDraft{
		ID:        draft.ID,
		Kind:      draft.Kind,
		Name:      draft.Name,
		UpdatedAt: draft.UpdatedAt,
	}
	if e.textOf != nil {
		doc.Text = e.textOf(&draft.Payload)
	}
	return doc
}

func (e *Entity[P]) index(ctx context.Context, draft *domain.Draft[P]) {
	if err := e.indexer.IndexDraft(ctx, e.projection(draft)); err != nil {
		e.logger.Warn("failed to index draft", "id", draft.ID, "error", err)
	}
}
