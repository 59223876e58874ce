// Package di provides dependency injection configuration for the Ubugingo server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/ubugingoapp/ubugingo-server/internal/catalog"
	"github.com/ubugingoapp/ubugingo-server/internal/config"
	"github.com/ubugingoapp/ubugingo-server/internal/di/providers"
	"github.com/ubugingoapp/ubugingo-server/internal/logger"
	"github.com/ubugingoapp/ubugingo-server/internal/service"
	"github.com/ubugingoapp/ubugingo-server/internal/store"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideHistoryStore)
	do.Provide(injector, providers.ProvideNoteStore)

	// Services
	do.Provide(injector, providers.ProvideContentService)
	do.Provide(injector, providers.ProvideCatalogClient)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once lazy construction has run.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*store.HistoryStore](injector)
	_ = do.MustInvoke[*store.NoteStore](injector)
	_ = do.MustInvoke[*service.ContentService](injector)
	_ = do.MustInvoke[*catalog.Client](injector)
	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
