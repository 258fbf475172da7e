package calculator

import (
	"fmt"

	"fgibacktest/internal/domain"

	"github.com/shopspring/decimal"
)

type StrategyInput struct {
	Series domain.AlignedSeries
	// BuyBelow < SellAbove is the caller's job, see BacktestParams.Validate
	BuyBelow       decimal.Decimal
	SellAbove      decimal.Decimal
	InitialCapital decimal.Decimal
	FeeRate        decimal.Decimal
	ExecuteOnClose bool
}

// pendingOrder is a signal waiting for the next day's open
type pendingOrder struct {
	side      domain.Side
	sentiment decimal.Decimal
}

// RunStrategy simulates the threshold strategy from a flat book holding
// InitialCapital. there is one equity point per input day, marked at that
// day's close after any execution on that day. a next-open order waits
// through days without an open and is dropped if the series ends first. a
// position still open after the last day is sold at the last close
func RunStrategy(in StrategyInput) (*domain.RunResult, error) {
	if !in.InitialCapital.IsPositive() {
		return nil, &domain.InvalidParamsError{Field: "initialCapital", Reason: "must be positive"}
	}
	if err := checkSeries(in.Series); err != nil {
		return nil, err
	}

	result := &domain.RunResult{
		Trades: []domain.Trade{},
		Equity: make([]domain.EquityPoint, 0, len(in.Series)),
	}

	var position domain.Position = domain.FlatPosition{Cash: in.InitialCapital}
	var pending *pendingOrder

	for _, day := range in.Series {
		// a day without an open cannot fill; the order waits for the next one
		if pending != nil && day.Open.Valid {
			var trade domain.Trade
			position, trade = execute(position, pending.side, day, day.Open.Decimal, pending.sentiment, in.FeeRate)
			trade.Kind = domain.TradeKind_Signal
			result.Trades = append(result.Trades, trade)
			pending = nil
		}

		if pending == nil && day.Sentiment.Valid {
			if side, ok := signal(position, day.Sentiment.Decimal, in.BuyBelow, in.SellAbove); ok {
				if in.ExecuteOnClose {
					var trade domain.Trade
					position, trade = execute(position, side, day, day.Close, day.Sentiment.Decimal, in.FeeRate)
					trade.Kind = domain.TradeKind_Signal
					result.Trades = append(result.Trades, trade)
				} else {
					pending = &pendingOrder{
						side:      side,
						sentiment: day.Sentiment.Decimal,
					}
				}
			}
		}

		result.Equity = append(result.Equity, domain.EquityPoint{
			Date:   day.Date,
			Equity: position.MarkToMarket(day.Close),
		})
	}

	// a signal on the last day has no next open to fill at
	if long, ok := position.(domain.LongPosition); ok {
		last := in.Series[len(in.Series)-1]
		sentiment := decimal.Zero
		if last.Sentiment.Valid {
			sentiment = last.Sentiment.Decimal
		}
		flat := long.Exit(last.Close, in.FeeRate)
		result.Trades = append(result.Trades, domain.Trade{
			Date:                 last.Date,
			Side:                 domain.Side_Sell,
			Kind:                 domain.TradeKind_ForcedLiquidation,
			ExecutionPrice:       last.Close,
			SentimentAtExecution: sentiment,
			Quantity:             long.Quantity,
			CashAfter:            flat.Cash,
		})
		result.Equity[len(result.Equity)-1].Equity = flat.Cash
	}

	return result, nil
}

// signal only looks at the condition that can leave the current state
func signal(position domain.Position, sentiment, buyBelow, sellAbove decimal.Decimal) (domain.Side, bool) {
	switch position.(type) {
	case domain.FlatPosition:
		if sentiment.LessThan(buyBelow) {
			return domain.Side_Buy, true
		}
	case domain.LongPosition:
		if sentiment.GreaterThan(sellAbove) {
			return domain.Side_Sell, true
		}
	}
	return "", false
}

func execute(
	position domain.Position,
	side domain.Side,
	day domain.DailyPoint,
	price decimal.Decimal,
	sentiment decimal.Decimal,
	feeRate decimal.Decimal,
) (domain.Position, domain.Trade) {
	trade := domain.Trade{
		Date:                 day.Date,
		Side:                 side,
		ExecutionPrice:       price,
		SentimentAtExecution: sentiment,
	}
	switch p := position.(type) {
	case domain.FlatPosition:
		long := p.Enter(price, feeRate)
		trade.Quantity = long.Quantity
		trade.CashAfter = decimal.Zero
		return long, trade
	case domain.LongPosition:
		flat := p.Exit(price, feeRate)
		trade.Quantity = p.Quantity
		trade.CashAfter = flat.Cash
		return flat, trade
	}
	panic(fmt.Sprintf("unknown position type %T", position))
}

// checkSeries rejects input the engine cannot divide by or order
func checkSeries(series domain.AlignedSeries) error {
	for i, day := range series {
		if !day.Close.IsPositive() {
			return &domain.DataIntegrityError{Date: day.Date, Reason: fmt.Sprintf("non-positive close %s", day.Close)}
		}
		if day.Open.Valid && !day.Open.Decimal.IsPositive() {
			return &domain.DataIntegrityError{Date: day.Date, Reason: fmt.Sprintf("non-positive open %s", day.Open.Decimal)}
		}
		if i > 0 && !day.Date.After(series[i-1].Date) {
			return &domain.DataIntegrityError{Date: day.Date, Reason: "dates are not strictly increasing"}
		}
	}
	return nil
}
