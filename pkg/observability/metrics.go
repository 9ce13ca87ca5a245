package observability

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aretw0/numerology/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "numerology"

// Metrics holds the collectors fed by lifecycle hooks.
type Metrics struct {
	calculations prometheus.Counter
	numbers      *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	modeSwitches *prometheus.CounterVec
	gatherer     prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// uses a fresh private registry, which keeps tests isolated.
func NewMetrics(reg *prometheus.Registry) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		calculations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Total number of successful calculations.",
		}),
		numbers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "numbers_total",
			Help:      "Derived numbers by kind and value.",
		}, []string{"kind", "number"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Rejected submissions by offending field.",
		}, []string{"field"}),
		modeSwitches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mode_switches_total",
			Help:      "Display mode switches by target mode and whether a result was re-rendered.",
		}, []string{"mode", "rerendered"}),
		gatherer: reg,
	}

	for _, c := range []prometheus.Collector{m.calculations, m.numbers, m.rejections, m.modeSwitches} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCalculated: func(_ context.Context, e *domain.CalculationEvent) {
			m.calculations.Inc()
			for _, k := range domain.Kinds() {
				m.numbers.WithLabelValues(string(k), strconv.Itoa(e.Result.Get(k))).Inc()
			}
		},
		OnRejected: func(_ context.Context, e *domain.RejectionEvent) {
			m.rejections.WithLabelValues(e.Field).Inc()
		},
		OnModeSwitch: func(_ context.Context, e *domain.ModeEvent) {
			m.modeSwitches.WithLabelValues(string(e.To), strconv.FormatBool(e.Rerendered)).Inc()
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
