package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "seniormoment"

// Funnel exports funnel activity as prometheus metrics. It implements
// funnel.Metrics.
type Funnel struct {
	submitted prometheus.Counter
	started   prometheus.Counter
	completed prometheus.Counter
	failed    prometheus.Counter
	requeued  prometheus.Counter
	pending   prometheus.Gauge
	runs      prometheus.Histogram
}

func NewFunnel(reg prometheus.Registerer) *Funnel {
	factory := promauto.With(reg)
	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "funnel",
			Name:      name,
			Help:      help,
		})
	}

	return &Funnel{
		submitted: counter("items_submitted_total", "Work items submitted to the funnel, re-submissions included."),
		started:   counter("items_started_total", "Work items started."),
		completed: counter("items_completed_total", "Runs that completed without error."),
		failed:    counter("items_failed_total", "Action bodies that returned an error or panicked."),
		requeued:  counter("items_requeued_total", "Work items re-queued with a lower priority value."),
		pending: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "funnel",
			Name:      "pending_items",
			Help:      "Work items waiting to start.",
		}),
		runs: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "funnel",
			Name:      "run_duration_seconds",
			Help:      "Time an item held the running slot.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}),
	}
}

func (m *Funnel) IncSubmitted()              { m.submitted.Inc() }
func (m *Funnel) IncStarted()                { m.started.Inc() }
func (m *Funnel) IncCompleted()              { m.completed.Inc() }
func (m *Funnel) IncFailed()                 { m.failed.Inc() }
func (m *Funnel) IncRequeued()               { m.requeued.Inc() }
func (m *Funnel) SetPending(n int)           { m.pending.Set(float64(n)) }
func (m *Funnel) ObserveRun(d time.Duration) { m.runs.Observe(d.Seconds()) }
