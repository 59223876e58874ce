package providers

import (
	"github.com/samber/do/v2"

	"github.com/ubugingoapp/ubugingo-server/internal/catalog"
	"github.com/ubugingoapp/ubugingo-server/internal/config"
	"github.com/ubugingoapp/ubugingo-server/internal/logger"
	"github.com/ubugingoapp/ubugingo-server/internal/service"
)

// ProvideContentService provides the content service.
func ProvideContentService(i do.Injector) (*service.ContentService, error) {
	handle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewContentService(handle.Store, log.Logger), nil
}

// ProvideCatalogClient provides the content API client used by playback sessions.
func ProvideCatalogClient(i do.Injector) (*catalog.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, log.Logger), nil
}
