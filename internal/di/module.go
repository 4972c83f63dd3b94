package di

import (
	"go.uber.org/fx"

	"github.com/tidex114/est-backend/internal/app"
	"github.com/tidex114/est-backend/internal/clock"
	"github.com/tidex114/est-backend/internal/config"
	"github.com/tidex114/est-backend/internal/logger"
	"github.com/tidex114/est-backend/internal/metrics"
	"github.com/tidex114/est-backend/internal/pkg/auth"
	"github.com/tidex114/est-backend/internal/server/http/router"
	"github.com/tidex114/est-backend/internal/storage"
	"github.com/tidex114/est-backend/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		clock.Module,
		metrics.Module,
		auth.Module,
		storage.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
