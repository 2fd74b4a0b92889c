// Package metrics records completion tracker outcomes as Prometheus metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cloudwait"

// Recorder holds the tracker's metric vectors. A nil *Recorder records
// nothing.
type Recorder struct {
	pollTotal     *prometheus.CounterVec
	pollDuration  *prometheus.HistogramVec
	pollAttempts  *prometheus.HistogramVec
	retryTotal    *prometheus.CounterVec
	retryAttempts *prometheus.HistogramVec
}

// New creates a Recorder and registers its metrics with reg.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		pollTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "poll",
				Name:      "outcomes_total",
				Help:      "Total number of completed waits by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		pollDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "poll",
				Name:      "duration_seconds",
				Help:      "Time spent waiting for convergence in seconds",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~34min
			},
			[]string{"kind"},
		),
		pollAttempts: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "poll",
				Name:      "fetches",
				Help:      "Number of state fetches per wait",
				Buckets:   []float64{1, 2, 3, 5, 10, 20, 50, 100},
			},
			[]string{"kind"},
		),
		retryTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "retry",
				Name:      "calls_total",
				Help:      "Total number of retried provider calls by operation and result",
			},
			[]string{"operation", "result"},
		),
		retryAttempts: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "retry",
				Name:      "attempts",
				Help:      "Number of attempts per provider call",
				Buckets:   []float64{1, 2, 3, 5, 10},
			},
			[]string{"operation"},
		),
	}

	for _, c := range []prometheus.Collector{r.pollTotal, r.pollDuration, r.pollAttempts, r.retryTotal, r.retryAttempts} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return r, nil
}

// ObservePoll records a finished wait.
func (r *Recorder) ObservePoll(kind, outcome string, attempts int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.pollTotal.WithLabelValues(kind, outcome).Inc()
	r.pollDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	r.pollAttempts.WithLabelValues(kind).Observe(float64(attempts))
}

// ObserveRetry records a provider call made through the retry wrapper.
// result is "success" or "error".
func (r *Recorder) ObserveRetry(operation string, attempts int, err error) {
	if r == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	r.retryTotal.WithLabelValues(operation, result).Inc()
	r.retryAttempts.WithLabelValues(operation).Observe(float64(attempts))
}
