package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	domainErrors "github.com/tidex114/est-backend/internal/domain/errors"
)

const namespace = "catalog"

// Module provides the Prometheus collector.
var Module = fx.Provide(New)

// Collector records offer operation outcomes on a private registry.
type Collector struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	reserved   prometheus.Counter
	released   prometheus.Counter
}

// New creates a collector with Go runtime and process metrics attached.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offer_operations_total",
			Help:      "Offer operations by name and outcome kind.",
		}, []string{"operation", "outcome"}),
		reserved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offer_units_reserved_total",
			Help:      "Units taken by successful reservations.",
		}),
		released: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offer_units_released_total",
			Help:      "Units returned by successful releases.",
		}),
	}
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.operations,
		c.reserved,
		c.released,
	)
	return c
}

// ObserveOperation counts one call labelled with the failure kind, or "ok".
func (c *Collector) ObserveOperation(operation string, err error) {
	c.operations.WithLabelValues(operation, domainErrors.Kind(err)).Inc()
}

// ObserveReserved counts reserved units.
func (c *Collector) ObserveReserved(units int) {
	c.reserved.Add(float64(units))
}

// ObserveReleased counts released units.
func (c *Collector) ObserveReleased(units int) {
	c.released.Add(float64(units))
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
