// Package storage selects the offer store configured for the process.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/tidex114/est-backend/internal/config"
	"github.com/tidex114/est-backend/internal/domain/repository"
	"github.com/tidex114/est-backend/internal/storage/memory"
	"github.com/tidex114/est-backend/internal/storage/postgres"
)

// Module wires the configured storage driver and its repositories.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(func(f repository.Factory) repository.OfferRepository { return f.Offers() }),
	fx.Invoke(registerLifecycle),
)

type factoryParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newFactory(p factoryParams) (repository.Factory, error) {
	switch p.Config.StorageDriver {
	case config.DriverMemory:
		p.Logger.Warn("using in-memory offer storage, data is lost on restart")
		return memory.New(p.Logger), nil
	case config.DriverPostgres:
		return postgres.New(p.Ctx, p.Config.DatabaseURI, p.Config.TxMaxRetries, p.Logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", p.Config.StorageDriver)
	}
}

func registerLifecycle(lc fx.Lifecycle, f repository.Factory) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			f.Close()
			return nil
		},
	})
}
