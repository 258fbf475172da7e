package repository

import (
	"context"
	"fmt"
	"time"

	"fgibacktest/internal/domain"
	"fgibacktest/internal/logger"
	"fgibacktest/pkg/httpclient"

	"github.com/gocarina/gocsv"
)

// mirrors are pre-aggregated csv datasets published by a maintainer. both
// are pulled as full history

type sentimentMirrorRepositoryHandler struct {
	Url    string
	Client *httpclient.Client
}

func NewSentimentMirrorRepository(url string, client *httpclient.Client) SentimentSourceRepository {
	return sentimentMirrorRepositoryHandler{
		Url:    url,
		Client: client,
	}
}

func (h sentimentMirrorRepositoryHandler) Name() string {
	return "sentiment-mirror"
}

func (h sentimentMirrorRepositoryHandler) FetchSentiment(ctx context.Context) ([]domain.SentimentPoint, error) {
	body, err := h.Client.Get(ctx, h.Url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download sentiment mirror: %w", err)
	}
	rows := []*sentimentCsvRow{}
	if err := gocsv.UnmarshalBytes(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse sentiment mirror: %w", err)
	}
	points, skipped := sentimentFromRows(rows)
	if skipped > 0 {
		logger.FromContext(ctx).Debugf("sentiment mirror: skipped %d malformed rows", skipped)
	}
	return points, nil
}

type priceMirrorRepositoryHandler struct {
	Url    string
	Client *httpclient.Client
}

func NewPriceMirrorRepository(url string, client *httpclient.Client) PriceSourceRepository {
	return priceMirrorRepositoryHandler{
		Url:    url,
		Client: client,
	}
}

func (h priceMirrorRepositoryHandler) Name() string {
	return "price-mirror"
}

func (h priceMirrorRepositoryHandler) FetchPrices(ctx context.Context, start, end time.Time) ([]domain.PricePoint, error) {
	body, err := h.Client.Get(ctx, h.Url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download price mirror: %w", err)
	}
	rows := []*priceCsvRow{}
	if err := gocsv.UnmarshalBytes(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse price mirror: %w", err)
	}
	points, skipped := priceFromRows(rows)
	if skipped > 0 {
		logger.FromContext(ctx).Debugf("price mirror: skipped %d malformed rows", skipped)
	}
	return filterPrices(points, start, end), nil
}
