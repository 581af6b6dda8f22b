package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tcfw/didreg/pkg/registry"
)

var _ registry.Recorder = (*Metrics)(nil)

// Metrics holds the registry's Prometheus collectors
type Metrics struct {
	Operations *prometheus.CounterVec
	Identities prometheus.Gauge
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "didreg_registry_operations_total",
			Help: "Registry operations by operation and outcome",
		}, []string{"op", "outcome"}),

		Identities: f.NewGauge(prometheus.GaugeOpts{
			Name: "didreg_registry_identities",
			Help: "Number of registered identities",
		}),
	}
}

func (m *Metrics) ObserveOperation(op, outcome string) {
	if m != nil {
		m.Operations.WithLabelValues(op, outcome).Inc()
	}
}

func (m *Metrics) SetIdentities(n uint64) {
	if m != nil {
		m.Identities.Set(float64(n))
	}
}
