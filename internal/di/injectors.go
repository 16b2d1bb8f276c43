//go:build wireinject
// +build wireinject

package di

import (
	"cookingapp/internal"
	"cookingapp/internal/catalog"
	"cookingapp/internal/controllers"
	"cookingapp/internal/providers"
	"cookingapp/internal/schedule"
	"cookingapp/internal/services"
	"cookingapp/internal/structures"
	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		catalog.NewClient,
		schedule.NewZstdCompressor,
		schedule.NewFileStore,
		services.NewCatalogViewState,
		wire.Bind(new(services.CatalogViewStateInterface), new(*services.CatalogViewState)),
		controllers.NewStateController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}
