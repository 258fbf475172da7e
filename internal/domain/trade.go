package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	Side_Buy  Side = "BUY"
	Side_Sell Side = "SELL"
)

type TradeKind string

const (
	TradeKind_Signal TradeKind = "SIGNAL"
	// ForcedLiquidation closes a position still open when the series ends
	TradeKind_ForcedLiquidation TradeKind = "FORCED_LIQUIDATION"
)

// Trade is one executed leg. it is never modified after the engine
// appends it to the ledger
type Trade struct {
	Date                 time.Time       `json:"date"`
	Side                 Side            `json:"side"`
	Kind                 TradeKind       `json:"kind"`
	ExecutionPrice       decimal.Decimal `json:"executionPrice"`
	SentimentAtExecution decimal.Decimal `json:"sentimentAtExecution"`
	Quantity             decimal.Decimal `json:"quantity"`
	CashAfter            decimal.Decimal `json:"cashAfter"`
}

type EquityPoint struct {
	Date   time.Time       `json:"date"`
	Equity decimal.Decimal `json:"equityValue"`
}

// RunResult is everything one simulation produced. the engine keeps no
// state between runs, so equal inputs give equal results
type RunResult struct {
	Trades []Trade       `json:"trades"`
	Equity []EquityPoint `json:"equity"`
}

func (r RunResult) EndsFlat() bool {
	buys, sells := r.CountSides()
	return buys == sells
}

func (r RunResult) CountSides() (buys int, sells int) {
	for _, t := range r.Trades {
		if t.Side == Side_Buy {
			buys++
		} else {
			sells++
		}
	}
	return buys, sells
}

// RoundTrip is a completed buy -> sell cycle
type RoundTrip struct {
	Entry Trade
	Exit  Trade
}

func (r RoundTrip) Won() bool {
	return r.Exit.ExecutionPrice.GreaterThan(r.Entry.ExecutionPrice)
}

// RoundTrips pairs each sell with the buy that opened it. sells with no
// open buy and a trailing unmatched buy are left out
func RoundTrips(trades []Trade) []RoundTrip {
	out := []RoundTrip{}
	var open *Trade
	for i := range trades {
		t := trades[i]
		switch t.Side {
		case Side_Buy:
			open = &t
		case Side_Sell:
			if open != nil {
				out = append(out, RoundTrip{Entry: *open, Exit: t})
				open = nil
			}
		}
	}
	return out
}
