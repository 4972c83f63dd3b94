package usecase

import (
	"go.uber.org/fx"

	"github.com/tidex114/est-backend/internal/metrics"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewOfferUseCase,
	func(c *metrics.Collector) MetricsRecorder { return c },
)
