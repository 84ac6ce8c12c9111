package providers

import (
	"fmt"
	"io"
	"os"

	"github.com/samber/do/v2"

	"github.com/listenupapp/pantry/internal/config"
	"github.com/listenupapp/pantry/internal/dirty"
	"github.com/listenupapp/pantry/internal/logger"
	"github.com/listenupapp/pantry/internal/recipe"
	"github.com/listenupapp/pantry/internal/store"
	"github.com/listenupapp/pantry/internal/store/sqlite"
	"github.com/listenupapp/pantry/internal/validation"
)

// BlobStoreHandle wraps the configured blob store with shutdown capability.
type BlobStoreHandle struct {
	store.Blobs
	closer io.Closer
}

// Shutdown implements do.Shutdownable.
func (h *BlobStoreHandle) Shutdown() error {
	if h.closer == nil {
		return nil
	}
	return h.closer.Close()
}

// ProvideBlobStore opens the blob store selected by configuration.
func ProvideBlobStore(i do.Injector) (*BlobStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	storeLog := log.WithComponent("store")

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		log.Warn("Using in-memory storage, drafts will not survive a restart")
		return &BlobStoreHandle{Blobs: store.NewMemoryStore()}, nil

	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.Storage.DataPath, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		path := cfg.Storage.SQLitePath()
		db, err := sqlite.Open(path, storeLog.Logger)
		if err != nil {
			return nil, err
		}
		log.Info("SQLite blob store opened", "path", path)
		return &BlobStoreHandle{Blobs: db, closer: db}, nil

	default:
		path := cfg.Storage.BadgerPath()
		db, err := store.New(path, storeLog.Logger)
		if err != nil {
			return nil, err
		}
		log.Info("Badger blob store opened", "path", path)
		return &BlobStoreHandle{Blobs: db, closer: db}, nil
	}
}

// ProvideDrafts provides the draft repository.
func ProvideDrafts(i do.Injector) (*store.Drafts, error) {
	cfg := do.MustInvoke[*config.Config](i)
	blobs := do.MustInvoke[*BlobStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return store.NewDrafts(blobs.Blobs, log.WithComponent("drafts").Logger, store.Options{
		IDAttempts:       cfg.Drafts.IDAttempts,
		StatsConcurrency: cfg.Drafts.StatsConcurrency,
	}), nil
}

// ProvideCatalog provides the recipe catalog.
func ProvideCatalog(i do.Injector) (*recipe.Catalog, error) {
	blobs := do.MustInvoke[*BlobStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return recipe.NewCatalog(blobs.Blobs, log.WithComponent("recipes").Logger), nil
}

// ProvideTracker provides the in-memory unsaved-changes tracker.
func ProvideTracker(i do.Injector) (*dirty.Tracker, error) {
	return dirty.New(), nil
}

// ProvideValidator provides the shared struct validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
