package repository

import (
	"context"
	"time"

	"fgibacktest/internal/domain"
)

// SentimentSourceRepository is one backend in the sentiment fallback
// chain. sentiment is always pulled as full history
type SentimentSourceRepository interface {
	Name() string
	FetchSentiment(ctx context.Context) ([]domain.SentimentPoint, error)
}

// PriceSourceRepository is one backend in the price fallback chain.
// implementations may return rows outside [start, end]
type PriceSourceRepository interface {
	Name() string
	FetchPrices(ctx context.Context, start, end time.Time) ([]domain.PricePoint, error)
}

func filterPrices(points []domain.PricePoint, start, end time.Time) []domain.PricePoint {
	out := []domain.PricePoint{}
	for _, p := range points {
		if p.Date.Before(start) || p.Date.After(end) {
			continue
		}
		out = append(out, p)
	}
	return out
}
