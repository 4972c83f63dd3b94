package auth

import (
	"go.uber.org/fx"

	"github.com/tidex114/est-backend/internal/clock"
	"github.com/tidex114/est-backend/internal/config"
)

// Module provides the token strategy used by the auth middleware.
var Module = fx.Provide(newTokenStrategy)

type strategyParams struct {
	fx.In

	Config *config.Config
	Clock  clock.Clock
}

// newTokenStrategy validates expiry against the same clock the lifecycle uses.
func newTokenStrategy(p strategyParams) Strategy {
	return NewJWTStrategy(p.Config.JWTSecret, Options{Now: p.Clock.Now})
}
