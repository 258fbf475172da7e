package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var bpsPerUnit = decimal.NewFromInt(10000)

// FeeRateFromBps turns basis points into the proportional rate the engine
// uses, so 10 bps becomes 0.001
func FeeRateFromBps(bps decimal.Decimal) decimal.Decimal {
	return bps.Div(bpsPerUnit)
}

// BacktestParams is everything a single run needs. callers build one per
// request, there are no package level defaults
type BacktestParams struct {
	Start          time.Time
	End            time.Time
	BuyBelow       decimal.Decimal
	SellAbove      decimal.Decimal
	InitialCapital decimal.Decimal
	FeeRate        decimal.Decimal
	ExecuteOnClose bool
	FillPolicy     FillPolicy
}

func (p BacktestParams) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return &InvalidParamsError{Field: "window", Reason: "start and end are required"}
	}
	if p.Start.After(p.End) {
		return &InvalidParamsError{Field: "window", Reason: "start must not be after end"}
	}
	if p.BuyBelow.LessThan(MinSentiment) || p.BuyBelow.GreaterThanOrEqual(MaxSentiment) {
		return &InvalidParamsError{Field: "buyBelow", Reason: "must be in [0, 100)"}
	}
	if p.SellAbove.LessThanOrEqual(MinSentiment) || p.SellAbove.GreaterThan(MaxSentiment) {
		return &InvalidParamsError{Field: "sellAbove", Reason: "must be in (0, 100]"}
	}
	if !p.BuyBelow.LessThan(p.SellAbove) {
		return &InvalidParamsError{Field: "buyBelow", Reason: "must be below sellAbove"}
	}
	if !p.InitialCapital.IsPositive() {
		return &InvalidParamsError{Field: "initialCapital", Reason: "must be positive"}
	}
	if p.FeeRate.IsNegative() {
		return &InvalidParamsError{Field: "feeRate", Reason: "must not be negative"}
	}
	if p.FeeRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return &InvalidParamsError{Field: "feeRate", Reason: "must be below 1"}
	}
	if _, err := NewFillPolicy(string(p.FillPolicy)); err != nil {
		return &InvalidParamsError{Field: "fillPolicy", Reason: err.Error()}
	}
	return nil
}
