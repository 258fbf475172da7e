package repository

import (
	"context"
	"fmt"
	"time"

	"fgibacktest/internal/domain"
	"fgibacktest/pkg/httpclient"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"
)

type yahooRepositoryHandler struct {
	Symbol  string
	Timeout time.Duration
}

func NewYahooRepository(symbol string, timeout time.Duration) PriceSourceRepository {
	return yahooRepositoryHandler{
		Symbol:  symbol,
		Timeout: timeout,
	}
}

func (h yahooRepositoryHandler) Name() string {
	return "yahoo"
}

type yahooResult struct {
	points []domain.PricePoint
	err    error
}

// FetchPrices reads the daily chart for the symbol. the chart iterator
// takes no context, so it runs in its own goroutine and the call gives up
// once the deadline passes
func (h yahooRepositoryHandler) FetchPrices(ctx context.Context, start, end time.Time) ([]domain.PricePoint, error) {
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	results := make(chan yahooResult, 1)
	go func() {
		points, err := h.readChart(start, end)
		results <- yahooResult{points: points, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, httpclient.MarkTransient(fmt.Errorf("yahoo chart for %s: %w", h.Symbol, ctx.Err()))
	case r := <-results:
		return r.points, r.err
	}
}

func (h yahooRepositoryHandler) readChart(start, end time.Time) ([]domain.PricePoint, error) {
	// chart end is exclusive
	chartEnd := end.AddDate(0, 0, 1)
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&chartEnd),
		Symbol:   h.Symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	out := []domain.PricePoint{}
	for iter.Next() {
		bar := iter.Bar()
		if bar == nil || bar.Close.IsZero() {
			continue
		}
		p := domain.PricePoint{
			Date:  time.Unix(int64(bar.Timestamp), 0).UTC(),
			Close: bar.Close,
		}
		if !bar.Open.IsZero() {
			p.Open = decimal.NewNullDecimal(bar.Open)
		}
		out = append(out, p)
	}
	if err := iter.Err(); err != nil {
		// the library hides status codes; yahoo failures are overwhelmingly
		// throttling or flaky upstream, so every one is retried
		return nil, httpclient.MarkTransient(fmt.Errorf("failed to get prices for %s: %w", h.Symbol, err))
	}
	return out, nil
}
