//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"bgmix/internal"
	"bgmix/internal/bgg"
	"bgmix/internal/controllers"
	"bgmix/internal/providers"
	"bgmix/internal/services"
	"bgmix/internal/session"
	"bgmix/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		bgg.NewFetcher,
		services.NewCollectionService,
		services.NewSessionService,
		session.NewZstdCompressor,
		session.NewFileManager,
		session.NewScheduler,
		controllers.NewApiController,
		controllers.NewSessionController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
