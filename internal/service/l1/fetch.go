package l1_service

import (
	"context"
	"time"

	"fgibacktest/internal/logger"
	"fgibacktest/internal/metrics"
	"fgibacktest/internal/util"
)

const cacheBackendName = "cache"

// backendRunner is the part both series services share: every remote call
// goes through the retry policy and every outcome is logged and counted
type backendRunner struct {
	Kind    string
	Retry   util.RetryPolicy
	Metrics *metrics.Recorder
}

// call runs fn under the retry policy. the returned error is only for the
// caller's fallthrough decision, it never leaves the service
func (r backendRunner) call(ctx context.Context, backend string, fn func() error) error {
	log := logger.FromContext(ctx)
	start := time.Now()
	err := r.Retry.Do(ctx, fn, func(a util.RetryAttempt) {
		r.Metrics.RecordRetry(r.Kind, backend)
		if a.Delay > 0 {
			log.Warnf("%s backend %s failed on attempt %d, retrying in %s: %v", r.Kind, backend, a.Attempt, a.Delay, a.Err)
		} else {
			log.Warnf("%s backend %s failed on attempt %d: %v", r.Kind, backend, a.Attempt, a.Err)
		}
	})
	if err != nil {
		r.Metrics.RecordFetch(r.Kind, backend, metrics.Outcome_Error, time.Since(start))
		log.Warnf("abandoning %s backend %s: %v", r.Kind, backend, err)
		return err
	}
	return nil
}

func (r backendRunner) hit(backend string, elapsed time.Duration) {
	r.Metrics.RecordFetch(r.Kind, backend, metrics.Outcome_Hit, elapsed)
}

func (r backendRunner) empty(ctx context.Context, backend string, elapsed time.Duration) {
	r.Metrics.RecordFetch(r.Kind, backend, metrics.Outcome_Empty, elapsed)
	logger.FromContext(ctx).Warnf("%s backend %s returned no usable rows", r.Kind, backend)
}

func (r backendRunner) skipped(ctx context.Context, backend string, reason string) {
	r.Metrics.RecordFetch(r.Kind, backend, metrics.Outcome_Skipped, 0)
	logger.FromContext(ctx).Debugf("skipping %s %s: %s", r.Kind, backend, reason)
}

func (r backendRunner) exhausted(ctx context.Context) {
	r.Metrics.RecordExhausted(r.Kind)
	logger.FromContext(ctx).Errorf("every %s backend failed, returning an empty series", r.Kind)
}
