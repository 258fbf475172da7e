package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	t.Run("counts fetch outcomes per backend", func(t *testing.T) {
		r := New(prometheus.NewRegistry())
		r.RecordFetch("price", "yahoo", Outcome_Error, time.Second)
		r.RecordFetch("price", "yahoo", Outcome_Error, time.Second)
		r.RecordFetch("price", "coingecko", Outcome_Hit, time.Second)
		r.RecordRetry("price", "yahoo")
		r.RecordExhausted("sentiment")

		require.Equal(t, float64(2), testutil.ToFloat64(r.fetches.WithLabelValues("price", "yahoo", Outcome_Error)))
		require.Equal(t, float64(1), testutil.ToFloat64(r.fetches.WithLabelValues("price", "coingecko", Outcome_Hit)))
		require.Equal(t, float64(1), testutil.ToFloat64(r.retries.WithLabelValues("price", "yahoo")))
		require.Equal(t, float64(1), testutil.ToFloat64(r.exhausted.WithLabelValues("sentiment")))
	})

	t.Run("nil recorder is a no-op", func(t *testing.T) {
		var r *Recorder
		require.NotPanics(t, func() {
			r.RecordFetch("price", "cache", Outcome_Hit, 0)
			r.RecordBacktest("ok")
			r.RecordRequest("/backtest", "POST", "200", time.Millisecond)
		})
	})
}
