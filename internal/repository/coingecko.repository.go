package repository

import (
	"context"
	"time"

	"fgibacktest/internal/domain"
	"fgibacktest/internal/logger"
	"fgibacktest/pkg/coingecko"

	"github.com/shopspring/decimal"
)

type coingeckoRepositoryHandler struct {
	Client     *coingecko.Client
	CoinID     string
	VsCurrency string
}

func NewCoingeckoRepository(client *coingecko.Client) PriceSourceRepository {
	return coingeckoRepositoryHandler{
		Client:     client,
		CoinID:     "bitcoin",
		VsCurrency: "usd",
	}
}

func (h coingeckoRepositoryHandler) Name() string {
	return "coingecko"
}

// FetchPrices maps each daily tick to one price. the endpoint has no separate
// open so the tick price serves as both open and close
func (h coingeckoRepositoryHandler) FetchPrices(ctx context.Context, start, end time.Time) ([]domain.PricePoint, error) {
	// the range is exclusive of the last day's tick otherwise
	ticks, skipped, err := h.Client.GetMarketChartRange(ctx, h.CoinID, h.VsCurrency, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		logger.FromContext(ctx).Debugf("coingecko: skipped %d malformed ticks", skipped)
	}

	out := make([]domain.PricePoint, 0, len(ticks))
	for _, t := range ticks {
		out = append(out, domain.PricePoint{
			Date:  t.Time,
			Open:  decimal.NewNullDecimal(t.Price),
			Close: t.Price,
		})
	}
	return out, nil
}
