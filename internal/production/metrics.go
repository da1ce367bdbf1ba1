package production

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/comalice/fsmx/internal/core"
)

const (
	namespace = "fsmx"
)

// Metrics is a core.Observer that records transitions in Prometheus. Labels are
// bounded by the specification: spec ID, state and event names.
type Metrics struct {
	transitions *prometheus.CounterVec
	invalid     *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics registers the collectors with reg. A nil reg uses the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transitions_total",
				Help:      "Total number of completed transitions",
			},
			[]string{"spec", "from", "to", "event"},
		),
		invalid: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "invalid_events_total",
				Help:      "Total number of events rejected for lack of an eligible transition",
			},
			[]string{"spec", "state", "event"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "transition_duration_seconds",
				Help:      "Time spent selecting a transition and running the lifecycle hooks",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"spec"},
		),
	}
}

func (m *Metrics) Transitioned(rec core.TransitionRecord) {
	m.transitions.WithLabelValues(rec.SpecID, rec.From, rec.To, rec.Event).Inc()
	m.duration.WithLabelValues(rec.SpecID).Observe(rec.Duration.Seconds())
}

func (m *Metrics) Rejected(rec core.RejectionRecord) {
	m.invalid.WithLabelValues(rec.SpecID, rec.State, rec.Event).Inc()
}

// Transitions exposes the transition counter.
func (m *Metrics) Transitions() *prometheus.CounterVec { return m.transitions }

// InvalidEvents exposes the rejection counter.
func (m *Metrics) InvalidEvents() *prometheus.CounterVec { return m.invalid }
