package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/listenupapp/pantry/internal/config"
	"github.com/listenupapp/pantry/internal/logger"
	"github.com/listenupapp/pantry/internal/search"
	"github.com/listenupapp/pantry/internal/service"
	"github.com/listenupapp/pantry/internal/store"
)

// SearchIndexHandle wraps the search index with shutdown capability.
// SearchIndex is nil when search is disabled.
type SearchIndexHandle struct {
	*search.SearchIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	if h.SearchIndex == nil {
		return nil
	}
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index. The memory backend
// keeps the index in memory too.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Search.Enabled {
		log.Info("Search index disabled by configuration")
		return &SearchIndexHandle{}, nil
	}

	dataPath := ""
	if cfg.Storage.Backend != config.BackendMemory {
		dataPath = cfg.Storage.SearchPath()
	}

	index, err := search.NewSearchIndex(search.Options{
		DataPath: dataPath,
		Logger:   log.WithComponent("search").Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{SearchIndex: index}, nil
}

// ProvideSearchService provides the search service, or nil when search is disabled.
// Creating the service wires the index into the draft repository.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	drafts := do.MustInvoke[*store.Drafts](i)
	log := do.MustInvoke[*logger.Logger](i)

	if indexHandle.SearchIndex == nil {
		return nil, nil
	}

	return service.NewSearchService(indexHandle.SearchIndex, drafts, log.Logger), nil
}

// TriggerSearchReindexIfNeeded rebuilds the index in the background when it
// holds fewer documents than the repository lists.
func TriggerSearchReindexIfNeeded(i do.Injector) {
	searchService := do.MustInvoke[*service.SearchService](i)
	log := do.MustInvoke[*logger.Logger](i)

	if searchService == nil {
		return
	}

	go func() {
		if err := searchService.EnsureIndexed(context.Background()); err != nil {
			log.Error("Initial search reindex failed", "error", err)
			return
		}
		count, _ := searchService.DocumentCount()
		log.Info("Search index ready", "documents", count)
	}()
}
