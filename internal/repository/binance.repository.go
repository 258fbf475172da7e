package repository

import (
	"context"
	"time"

	"fgibacktest/internal/domain"
	"fgibacktest/internal/logger"
	"fgibacktest/pkg/binance"

	"github.com/shopspring/decimal"
)

type binanceRepositoryHandler struct {
	Client *binance.Client
	Symbol string
}

func NewBinanceRepository(client *binance.Client, symbol string) PriceSourceRepository {
	return binanceRepositoryHandler{
		Client: client,
		Symbol: symbol,
	}
}

func (h binanceRepositoryHandler) Name() string {
	return "binance"
}

func (h binanceRepositoryHandler) FetchPrices(ctx context.Context, start, end time.Time) ([]domain.PricePoint, error) {
	klines, skipped, err := h.Client.GetDailyKlines(ctx, h.Symbol, start, end)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		logger.FromContext(ctx).Debugf("binance: skipped %d malformed klines", skipped)
	}

	out := make([]domain.PricePoint, 0, len(klines))
	for _, k := range klines {
		out = append(out, domain.PricePoint{
			Date:  k.OpenTime,
			Open:  decimal.NewNullDecimal(k.Open),
			Close: k.Close,
		})
	}
	return out, nil
}
