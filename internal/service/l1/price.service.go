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

// PriceService returns daily bars for [start, end]. like SentimentService
// it reports total failure as an empty series
type PriceService interface {
	GetPrices(ctx context.Context, start, end time.Time) domain.PriceSeries
}

type priceServiceHandler struct {
	Cache    repository.SeriesCacheRepository
	Backends []repository.PriceSourceRepository
	// CoverageTolerance is how far the cache may fall short of either end of
	// the window and still be used. weekends and a late daily close mean the
	// edges are rarely exact
	CoverageTolerance time.Duration
	Now               func() time.Time
	runner            backendRunner
}

func NewPriceService(
	cache repository.SeriesCacheRepository,
	backends []repository.PriceSourceRepository,
	coverageTolerance time.Duration,
	retry util.RetryPolicy,
	recorder *metrics.Recorder,
) PriceService {
	return priceServiceHandler{
		Cache:             cache,
		Backends:          backends,
		CoverageTolerance: coverageTolerance,
		Now:               time.Now,
		runner: backendRunner{
			Kind:    string(domain.SeriesKind_Price),
			Retry:   retry,
			Metrics: recorder,
		},
	}
}

func emptyPrices() domain.PriceSeries {
	return domain.PriceSeries{
		Points: []domain.PricePoint{},
	}
}

func (h priceServiceHandler) GetPrices(ctx context.Context, start, end time.Time) domain.PriceSeries {
	log := logger.FromContext(ctx)

	start = util.DateOnly(start)
	end = util.DateOnly(end)
	if start.After(end) {
		log.Warnf("price window start %s is after end %s, returning no prices", util.FormatDate(start), util.FormatDate(end))
		return emptyPrices()
	}
	today := util.DateOnly(h.Now())
	if end.After(today) {
		log.Infof("clamping price window end %s to today %s", util.FormatDate(end), util.FormatDate(today))
		end = today
	}
	if start.After(end) {
		log.Warnf("price window starts in the future (%s), returning no prices", util.FormatDate(start))
		return emptyPrices()
	}

	if points, ok := h.fromCache(ctx, start, end); ok {
		return domain.PriceSeries{
			Points: points,
			Source: cacheBackendName,
		}
	}

	for _, backend := range h.Backends {
		name := backend.Name()
		fetchStart := time.Now()

		var raw []domain.PricePoint
		err := h.runner.call(ctx, name, func() error {
			var fetchErr error
			raw, fetchErr = backend.FetchPrices(ctx, start, end)
			return fetchErr
		})
		if err != nil {
			continue
		}

		points := slicePrices(NormalizePrices(raw), start, end)
		if len(points) == 0 {
			h.runner.empty(ctx, name, time.Since(fetchStart))
			continue
		}
		h.runner.hit(name, time.Since(fetchStart))
		h.writeCache(ctx, points)

		return domain.PriceSeries{
			Points: points,
			Source: name,
		}
	}

	h.runner.exhausted(ctx)
	return emptyPrices()
}

// fromCache uses the cache only when it spans the whole window, give or
// take CoverageTolerance at each end and between consecutive rows
func (h priceServiceHandler) fromCache(ctx context.Context, start, end time.Time) ([]domain.PricePoint, bool) {
	if h.Cache == nil {
		return nil, false
	}
	readStart := time.Now()
	cached, err := h.Cache.ReadPrices()
	if errors.Is(err, repository.ErrCacheMiss) {
		h.runner.skipped(ctx, cacheBackendName, "no cache file")
		return nil, false
	}
	if err != nil {
		h.runner.Metrics.RecordFetch(h.runner.Kind, cacheBackendName, metrics.Outcome_Error, time.Since(readStart))
		logger.FromContext(ctx).Warnf("failed to read price cache, skipping it: %v", err)
		return nil, false
	}

	points := NormalizePrices(cached.Points)
	if len(points) == 0 {
		h.runner.skipped(ctx, cacheBackendName, "empty")
		return nil, false
	}
	first, last := points[0].Date, points[len(points)-1].Date
	if first.Sub(start) > h.CoverageTolerance || end.Sub(last) > h.CoverageTolerance {
		h.runner.skipped(ctx, cacheBackendName, "does not cover "+util.FormatDate(start)+" to "+util.FormatDate(end))
		return nil, false
	}

	points = slicePrices(points, start, end)
	if len(points) == 0 {
		h.runner.skipped(ctx, cacheBackendName, "no rows in window")
		return nil, false
	}
	// merged writes of disjoint windows leave holes the end checks cannot see
	if from, to, ok := findGap(points, h.CoverageTolerance); ok {
		h.runner.skipped(ctx, cacheBackendName, "missing rows between "+util.FormatDate(from)+" and "+util.FormatDate(to))
		return nil, false
	}
	h.runner.hit(cacheBackendName, time.Since(readStart))
	return points, true
}

// findGap returns the first pair of consecutive dates with more than
// tolerance worth of missing days between them
func findGap(points []domain.PricePoint, tolerance time.Duration) (time.Time, time.Time, bool) {
	for i := 1; i < len(points); i++ {
		prev, next := points[i-1].Date, points[i].Date
		if next.Sub(prev)-24*time.Hour > tolerance {
			return prev, next, true
		}
	}
	return time.Time{}, time.Time{}, false
}

func (h priceServiceHandler) writeCache(ctx context.Context, points []domain.PricePoint) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.WritePrices(points); err != nil {
		logger.FromContext(ctx).Warnf("failed to write price cache: %v", err)
	}
}
