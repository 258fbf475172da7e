package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fgibacktest"

const (
	Outcome_Hit     = "hit"
	Outcome_Empty   = "empty"
	Outcome_Error   = "error"
	Outcome_Skipped = "skipped"
)

// Recorder is the single place the app writes Prometheus series to. a nil
// *Recorder is valid and records nothing
type Recorder struct {
	fetches       *prometheus.CounterVec
	fetchLatency  *prometheus.HistogramVec
	retries       *prometheus.CounterVec
	exhausted     *prometheus.CounterVec
	backtests     *prometheus.CounterVec
	requests      *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// New registers every collector on reg. pass prometheus.DefaultRegisterer
// in binaries and a fresh registry in tests
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		fetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "series_fetch_total",
				Help:      "Series backend attempts by outcome",
			},
			[]string{"kind", "backend", "outcome"},
		),
		fetchLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "series_fetch_duration_seconds",
				Help:      "Time spent in a series backend, retries included",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"kind", "backend"},
		),
		retries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "series_fetch_retries_total",
				Help:      "Failed attempts that were retried or gave up",
			},
			[]string{"kind", "backend"},
		),
		exhausted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "series_exhausted_total",
				Help:      "Fetches where every backend failed and an empty series was returned",
			},
			[]string{"kind"},
		),
		backtests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "backtest_runs_total",
				Help:      "Backtest runs by result",
			},
			[]string{"result"},
		),
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route and status",
			},
			[]string{"route", "method", "status"},
		),
		requestLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
	}
}

func (r *Recorder) RecordFetch(kind, backend, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.fetches.WithLabelValues(kind, backend, outcome).Inc()
	if outcome != Outcome_Skipped {
		r.fetchLatency.WithLabelValues(kind, backend).Observe(elapsed.Seconds())
	}
}

func (r *Recorder) RecordRetry(kind, backend string) {
	if r == nil {
		return
	}
	r.retries.WithLabelValues(kind, backend).Inc()
}

func (r *Recorder) RecordExhausted(kind string) {
	if r == nil {
		return
	}
	r.exhausted.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordBacktest(result string) {
	if r == nil {
		return
	}
	r.backtests.WithLabelValues(result).Inc()
}

func (r *Recorder) RecordRequest(route, method, status string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(route, method, status).Inc()
	r.requestLatency.WithLabelValues(route, method).Observe(elapsed.Seconds())
}
