package l1_service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fgibacktest/internal/domain"
	"fgibacktest/internal/metrics"
	"fgibacktest/internal/repository"
	mock_repository "fgibacktest/internal/repository/mocks"
	"fgibacktest/internal/util"
	"fgibacktest/pkg/httpclient"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testRetryPolicy() util.RetryPolicy {
	return util.RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Retryable:   httpclient.IsTransient,
		Sleep: func(ctx context.Context, d time.Duration) error {
			return nil
		},
	}
}

func sentimentPoint(y, m, d int, v int64) domain.SentimentPoint {
	return domain.SentimentPoint{Date: util.NewDate(y, m, d), Value: decimal.NewFromInt(v)}
}

func pricePoint(y, m, d int, close int64) domain.PricePoint {
	return domain.PricePoint{Date: util.NewDate(y, m, d), Close: decimal.NewFromInt(close)}
}

func TestSentimentService_GetSentiment(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	newHandler := func(cache repository.SeriesCacheRepository, backends ...repository.SentimentSourceRepository) sentimentServiceHandler {
		h := NewSentimentService(cache, backends, time.Hour, testRetryPolicy(), metrics.New(prometheus.NewRegistry())).(sentimentServiceHandler)
		h.Now = func() time.Time { return now }
		return h
	}

	t.Run("fresh cache short-circuits the chain", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mock_repository.NewMockSeriesCacheRepository(ctrl)
		remote := mock_repository.NewMockSentimentSourceRepository(ctrl)

		cache.EXPECT().ReadSentiment().Return(&repository.CachedSentiment{
			Points:     []domain.SentimentPoint{sentimentPoint(2024, 1, 1, 20)},
			ModifiedAt: now.Add(-time.Minute),
		}, nil)

		series := newHandler(cache, remote).GetSentiment(context.Background())
		require.Equal(t, "cache", series.Source)
		require.Len(t, series.Points, 1)
	})

	t.Run("transient failures fall through to the next backend, result is normalized and cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mock_repository.NewMockSeriesCacheRepository(ctrl)
		primary := mock_repository.NewMockSentimentSourceRepository(ctrl)
		fallback := mock_repository.NewMockSentimentSourceRepository(ctrl)

		cache.EXPECT().ReadSentiment().Return(nil, repository.ErrCacheMiss)
		primary.EXPECT().Name().Return("mirror").AnyTimes()
		primary.EXPECT().FetchSentiment(gomock.Any()).
			Return(nil, &httpclient.StatusError{Code: 503}).
			Times(3)
		fallback.EXPECT().Name().Return("alternative.me").AnyTimes()
		fallback.EXPECT().FetchSentiment(gomock.Any()).Return([]domain.SentimentPoint{
			{Date: time.Date(2024, 1, 2, 23, 0, 0, 0, time.UTC), Value: decimal.NewFromInt(120)},
			sentimentPoint(2024, 1, 1, 10),
			{Date: time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC), Value: decimal.NewFromInt(-4)},
		}, nil)

		expected := []domain.SentimentPoint{
			sentimentPoint(2024, 1, 1, 10),
			sentimentPoint(2024, 1, 2, 0),
		}
		cache.EXPECT().WriteSentiment(gomock.Any()).DoAndReturn(func(points []domain.SentimentPoint) error {
			require.Equal(t, "", cmp.Diff(expected, points))
			return nil
		})

		series := newHandler(cache, primary, fallback).GetSentiment(context.Background())
		require.Equal(t, "alternative.me", series.Source)
		require.Equal(t, "", cmp.Diff(expected, series.Points))
	})

	t.Run("stale cache, non-transient error and an empty backend give an empty series", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mock_repository.NewMockSeriesCacheRepository(ctrl)
		primary := mock_repository.NewMockSentimentSourceRepository(ctrl)
		fallback := mock_repository.NewMockSentimentSourceRepository(ctrl)

		cache.EXPECT().ReadSentiment().Return(&repository.CachedSentiment{
			Points:     []domain.SentimentPoint{sentimentPoint(2024, 1, 1, 20)},
			ModifiedAt: now.Add(-2 * time.Hour),
		}, nil)
		primary.EXPECT().Name().Return("mirror").AnyTimes()
		primary.EXPECT().FetchSentiment(gomock.Any()).
			Return(nil, &httpclient.StatusError{Code: 404}).
			Times(1)
		fallback.EXPECT().Name().Return("alternative.me").AnyTimes()
		fallback.EXPECT().FetchSentiment(gomock.Any()).Return([]domain.SentimentPoint{}, nil)

		series := newHandler(cache, primary, fallback).GetSentiment(context.Background())
		require.True(t, series.Empty())
		require.NotNil(t, series.Points)
		require.Equal(t, "", series.Source)
	})

	t.Run("cache write failure does not fail the fetch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mock_repository.NewMockSeriesCacheRepository(ctrl)
		remote := mock_repository.NewMockSentimentSourceRepository(ctrl)

		cache.EXPECT().ReadSentiment().Return(nil, errors.New("permission denied"))
		remote.EXPECT().Name().Return("alternative.me").AnyTimes()
		remote.EXPECT().FetchSentiment(gomock.Any()).Return([]domain.SentimentPoint{sentimentPoint(2024, 1, 1, 50)}, nil)
		cache.EXPECT().WriteSentiment(gomock.Any()).Return(errors.New("disk full"))

		series := newHandler(cache, remote).GetSentiment(context.Background())
		require.Equal(t, "alternative.me", series.Source)
		require.Len(t, series.Points, 1)
	})
}

func TestPriceService_GetPrices(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)

	newHandler := func(cache repository.SeriesCacheRepository, backends ...repository.PriceSourceRepository) priceServiceHandler {
		h := NewPriceService(cache, backends, 48*time.Hour, testRetryPolicy(), nil).(priceServiceHandler)
		h.Now = func() time.Time { return now }
		return h
	}

	t.Run("start after end returns empty without touching any backend", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mock_repository.NewMockSeriesCacheRepository(ctrl)
		remote := mock_repository.NewMockPriceSourceRepository(ctrl)

		series := newHandler(cache, remote).GetPrices(context.Background(), util.NewDate(2024, 1, 5), util.NewDate(2024, 1, 1))
		require.True(t, series.Empty())
		require.NotNil(t, series.Points)
	})

	t.Run("future end is clamped to today", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		remote := mock_repository.NewMockPriceSourceRepository(ctrl)

		remote.EXPECT().Name().Return("yahoo").AnyTimes()
		remote.EXPECT().FetchPrices(gomock.Any(), util.NewDate(2024, 1, 8), util.NewDate(2024, 1, 10)).Return([]domain.PricePoint{
			pricePoint(2024, 1, 7, 99),
			pricePoint(2024, 1, 8, 100),
			pricePoint(2024, 1, 9, 101),
			pricePoint(2024, 1, 10, 102),
		}, nil)

		series := newHandler(nil, remote).GetPrices(context.Background(), util.NewDate(2024, 1, 8), util.NewDate(2024, 6, 1))
		require.Equal(t, "yahoo", series.Source)
		require.Equal(t, "", cmp.Diff([]domain.PricePoint{
			pricePoint(2024, 1, 8, 100),
			pricePoint(2024, 1, 9, 101),
			pricePoint(2024, 1, 10, 102),
		}, series.Points))
	})

	t.Run("cache covering the window within tolerance is used", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mock_repository.NewMockSeriesCacheRepository(ctrl)
		remote := mock_repository.NewMockPriceSourceRepository(ctrl)

		cache.EXPECT().ReadPrices().Return(&repository.CachedPrices{
			Points: []domain.PricePoint{
				pricePoint(2024, 1, 2, 10),
				pricePoint(2024, 1, 3, 11),
				pricePoint(2024, 1, 4, 12),
			},
		}, nil)

		series := newHandler(cache, remote).GetPrices(context.Background(), util.NewDate(2024, 1, 1), util.NewDate(2024, 1, 5))
		require.Equal(t, "cache", series.Source)
		require.Len(t, series.Points, 3)
	})

	t.Run("cache short of the window falls through to remote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mock_repository.NewMockSeriesCacheRepository(ctrl)
		failing := mock_repository.NewMockPriceSourceRepository(ctrl)
		remote := mock_repository.NewMockPriceSourceRepository(ctrl)

		cache.EXPECT().ReadPrices().Return(&repository.CachedPrices{
			Points: []domain.PricePoint{pricePoint(2024, 1, 2, 10)},
		}, nil)
		failing.EXPECT().Name().Return("yahoo").AnyTimes()
		failing.EXPECT().FetchPrices(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, httpclient.MarkTransient(errors.New("throttled"))).
			Times(3)
		remote.EXPECT().Name().Return("binance").AnyTimes()
		remote.EXPECT().FetchPrices(gomock.Any(), gomock.Any(), gomock.Any()).Return([]domain.PricePoint{
			pricePoint(2024, 1, 2, 10),
			pricePoint(2024, 1, 9, 20),
		}, nil)
		cache.EXPECT().WritePrices(gomock.Any()).Return(nil)

		series := newHandler(cache, failing, remote).GetPrices(context.Background(), util.NewDate(2024, 1, 1), util.NewDate(2024, 1, 9))
		require.Equal(t, "binance", series.Source)
		require.Len(t, series.Points, 2)
	})

	t.Run("cache merged from disjoint windows falls through to remote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		remote := mock_repository.NewMockPriceSourceRepository(ctrl)

		cache := repository.NewSeriesCacheRepository(t.TempDir())
		require.NoError(t, cache.WritePrices([]domain.PricePoint{
			pricePoint(2024, 1, 1, 10),
			pricePoint(2024, 1, 2, 11),
		}))
		require.NoError(t, cache.WritePrices([]domain.PricePoint{
			pricePoint(2024, 6, 1, 60),
			pricePoint(2024, 6, 2, 61),
		}))

		start, end := util.NewDate(2024, 1, 1), util.NewDate(2024, 6, 2)
		remote.EXPECT().Name().Return("yahoo").AnyTimes()
		remote.EXPECT().FetchPrices(gomock.Any(), start, end).Return([]domain.PricePoint{
			pricePoint(2024, 1, 1, 10),
			pricePoint(2024, 3, 1, 30),
			pricePoint(2024, 6, 2, 61),
		}, nil)

		h := newHandler(cache, remote)
		h.Now = func() time.Time { return time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC) }
		series := h.GetPrices(context.Background(), start, end)
		require.Equal(t, "yahoo", series.Source)
		require.Len(t, series.Points, 3)
	})

	t.Run("gap within tolerance still uses the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mock_repository.NewMockSeriesCacheRepository(ctrl)
		remote := mock_repository.NewMockPriceSourceRepository(ctrl)

		cache.EXPECT().ReadPrices().Return(&repository.CachedPrices{
			Points: []domain.PricePoint{
				pricePoint(2024, 1, 1, 10),
				pricePoint(2024, 1, 4, 13),
				pricePoint(2024, 1, 5, 14),
			},
		}, nil)

		series := newHandler(cache, remote).GetPrices(context.Background(), util.NewDate(2024, 1, 1), util.NewDate(2024, 1, 5))
		require.Equal(t, "cache", series.Source)
		require.Len(t, series.Points, 3)
	})
}
