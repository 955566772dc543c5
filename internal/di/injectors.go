//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"paywall/internal"
	"paywall/internal/controllers"
	"paywall/internal/guard"
	"paywall/internal/providers"
	"paywall/internal/services"
	"paywall/internal/storage"
	"paywall/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewCompressor,
		storage.NewFileStore,
		storage.NewCachedStore,

		services.NewEngagementService,
		services.NewLedgerService,
		services.NewPreferencesService,
		services.NewOfferService,

		guard.NewActionGuard,

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
