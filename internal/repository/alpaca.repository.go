package repository

import (
	"context"
	"fmt"
	"time"

	"fgibacktest/internal/domain"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"
)

// alpacaRepositoryHandler serves daily crypto bars from the alpaca market
// data api. it is only wired in when keys are configured
type alpacaRepositoryHandler struct {
	MdClient *marketdata.Client
	Symbol   string
}

func NewAlpacaRepository(apiKey, apiSecret, endpoint, symbol string) PriceSourceRepository {
	mdClient := marketdata.NewClient(marketdata.ClientOpts{
		BaseURL:   endpoint,
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return alpacaRepositoryHandler{
		MdClient: mdClient,
		Symbol:   symbol,
	}
}

func (h alpacaRepositoryHandler) Name() string {
	return "alpaca"
}

func (h alpacaRepositoryHandler) FetchPrices(ctx context.Context, start, end time.Time) ([]domain.PricePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bars, err := h.MdClient.GetCryptoBars(h.Symbol, marketdata.GetCryptoBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     start,
		End:       end.AddDate(0, 0, 1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s crypto bars: %w", h.Symbol, err)
	}

	out := make([]domain.PricePoint, 0, len(bars))
	for _, b := range bars {
		if b.Close <= 0 {
			continue
		}
		out = append(out, domain.PricePoint{
			Date:  b.Timestamp.UTC(),
			Open:  decimal.NewNullDecimal(decimal.NewFromFloat(b.Open)),
			Close: decimal.NewFromFloat(b.Close),
		})
	}
	return out, nil
}
