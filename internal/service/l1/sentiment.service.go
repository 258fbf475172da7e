package l1_service

import (
	"context"
	"errors"
	"time"

	"fgibacktest/internal/domain"
	"fgibacktest/internal/logger"
	"fgibacktest/internal/metrics"
	"fgibacktest/internal/repository"
	"fgibacktest/internal/util"
)

// SentimentService pulls the full index history. it never fails: when no
// backend produces rows the series comes back empty
type SentimentService interface {
	GetSentiment(ctx context.Context) domain.SentimentSeries
}

type sentimentServiceHandler struct {
	Cache    repository.SeriesCacheRepository
	Backends []repository.SentimentSourceRepository
	// CacheTTL of 0 means the cache never goes stale
	CacheTTL time.Duration
	Now      func() time.Time
	runner   backendRunner
}

func NewSentimentService(
	cache repository.SeriesCacheRepository,
	backends []repository.SentimentSourceRepository,
	cacheTTL time.Duration,
	retry util.RetryPolicy,
	recorder *metrics.Recorder,
) SentimentService {
	return sentimentServiceHandler{
		Cache:    cache,
		Backends: backends,
		CacheTTL: cacheTTL,
		Now:      time.Now,
		runner: backendRunner{
			Kind:    string(domain.SeriesKind_Sentiment),
			Retry:   retry,
			Metrics: recorder,
		},
	}
}

func (h sentimentServiceHandler) GetSentiment(ctx context.Context) domain.SentimentSeries {
	if points, ok := h.fromCache(ctx); ok {
		return domain.SentimentSeries{
			Points: points,
			Source: cacheBackendName,
		}
	}

	for _, backend := range h.Backends {
		name := backend.Name()
		start := time.Now()

		var raw []domain.SentimentPoint
		err := h.runner.call(ctx, name, func() error {
			var fetchErr error
			raw, fetchErr = backend.FetchSentiment(ctx)
			return fetchErr
		})
		if err != nil {
			continue
		}

		points := NormalizeSentiment(raw)
		if len(points) == 0 {
			h.runner.empty(ctx, name, time.Since(start))
			continue
		}
		h.runner.hit(name, time.Since(start))
		h.writeCache(ctx, points)

		return domain.SentimentSeries{
			Points: points,
			Source: name,
		}
	}

	h.runner.exhausted(ctx)
	return domain.SentimentSeries{
		Points: []domain.SentimentPoint{},
	}
}

func (h sentimentServiceHandler) fromCache(ctx context.Context) ([]domain.SentimentPoint, bool) {
	if h.Cache == nil {
		return nil, false
	}
	start := time.Now()
	cached, err := h.Cache.ReadSentiment()
	if errors.Is(err, repository.ErrCacheMiss) {
		h.runner.skipped(ctx, cacheBackendName, "no cache file")
		return nil, false
	}
	if err != nil {
		h.runner.Metrics.RecordFetch(h.runner.Kind, cacheBackendName, metrics.Outcome_Error, time.Since(start))
		logger.FromContext(ctx).Warnf("failed to read sentiment cache, skipping it: %v", err)
		return nil, false
	}
	if h.CacheTTL > 0 && h.Now().Sub(cached.ModifiedAt) > h.CacheTTL {
		h.runner.skipped(ctx, cacheBackendName, "stale")
		return nil, false
	}

	points := NormalizeSentiment(cached.Points)
	if len(points) == 0 {
		h.runner.skipped(ctx, cacheBackendName, "empty")
		return nil, false
	}
	h.runner.hit(cacheBackendName, time.Since(start))
	return points, true
}

func (h sentimentServiceHandler) writeCache(ctx context.Context, points []domain.SentimentPoint) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.WriteSentiment(points); err != nil {
		logger.FromContext(ctx).Warnf("failed to write sentiment cache: %v", err)
	}
}
