// Package di provides dependency injection configuration for the Pantry server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/pantry/internal/config"
	"github.com/listenupapp/pantry/internal/di/providers"
	"github.com/listenupapp/pantry/internal/dirty"
	"github.com/listenupapp/pantry/internal/logger"
	"github.com/listenupapp/pantry/internal/recipe"
	"github.com/listenupapp/pantry/internal/service"
	"github.com/listenupapp/pantry/internal/store"
	"github.com/listenupapp/pantry/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Storage layer
	do.Provide(injector, providers.ProvideBlobStore)
	do.Provide(injector, providers.ProvideDrafts)
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvideTracker)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Business services
	do.Provide(injector, providers.ProvideDraftService)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)

	if _, err := do.Invoke[*providers.BlobStoreHandle](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*store.Drafts](injector)
	_ = do.MustInvoke[*recipe.Catalog](injector)
	_ = do.MustInvoke[*dirty.Tracker](injector)

	if _, err := do.Invoke[*providers.SearchIndexHandle](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*service.DraftService](injector)

	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Bring the search index up to date with stored drafts
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
