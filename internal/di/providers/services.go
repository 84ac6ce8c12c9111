package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/pantry/internal/dirty"
	"github.com/listenupapp/pantry/internal/logger"
	"github.com/listenupapp/pantry/internal/recipe"
	"github.com/listenupapp/pantry/internal/service"
	"github.com/listenupapp/pantry/internal/store"
	"github.com/listenupapp/pantry/internal/validation"
)

// ProvideDraftService provides the draft service behind every API operation.
func ProvideDraftService(i do.Injector) (*service.DraftService, error) {
	drafts := do.MustInvoke[*store.Drafts](i)
	catalog := do.MustInvoke[*recipe.Catalog](i)
	tracker := do.MustInvoke[*dirty.Tracker](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDraftService(drafts, catalog, tracker, searchService, validator, log.Logger), nil
}
