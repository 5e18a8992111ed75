package fx

import (
	"context"

	"bfv-tracker/internal/api"
	"bfv-tracker/internal/config"
	"bfv-tracker/internal/logger"
	"bfv-tracker/internal/server"
	"bfv-tracker/internal/service"
	"bfv-tracker/internal/telegram"

	"go.uber.org/fx"
)

// closeFetcher releases the upstream connection pool on shutdown.
func closeFetcher(lc fx.Lifecycle, fetcher *api.Fetcher) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			fetcher.Close()
			return nil
		},
	})
}

// Core wires everything needed to answer queries: config, upstream client,
// caches and the search service.
var Core = fx.Options(
	logger.Module,
	config.Module,
	// api client
	fx.Provide(api.NewFetcher),
	fx.Provide(fx.Annotate(api.NewClient, fx.As(new(service.Provider)))),
	fx.Invoke(closeFetcher),
	// svc
	fx.Provide(service.NewCaches),
	fx.Provide(service.NewResolver),
	fx.Provide(service.NewAggregator),
	fx.Provide(service.NewSearchService),
)

var Module = fx.Options(
	Core,
	// server
	fx.Provide(server.NewSearchServer),
	// chat
	telegram.Module,
)
