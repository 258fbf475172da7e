package calculator

import (
	"math"
	"testing"

	"fgibacktest/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func equityCurve(values ...float64) []domain.EquityPoint {
	out := []domain.EquityPoint{}
	for i, v := range values {
		out = append(out, domain.EquityPoint{Date: d(i), Equity: decimal.NewFromFloat(v)})
	}
	return out
}

func closeSeries(values ...int64) []domain.PricePoint {
	out := []domain.PricePoint{}
	for i, v := range values {
		out = append(out, domain.PricePoint{Date: d(i), Close: dec(v)})
	}
	return out
}

func TestSummarize(t *testing.T) {
	t.Run("degenerate input is all zero", func(t *testing.T) {
		require.Equal(t, domain.Metrics{}, Summarize(nil, closeSeries(100), dec(1000), nil))
		require.Equal(t, domain.Metrics{}, Summarize(equityCurve(1000), nil, dec(1000), nil))
	})

	t.Run("single point has no cagr", func(t *testing.T) {
		m := Summarize(equityCurve(1100), closeSeries(100), dec(1000), nil)
		require.InDelta(t, 0.1, m.StrategyReturn, 1e-12)
		require.Equal(t, 0.0, m.StrategyCAGR)
		require.Equal(t, 0.0, m.StrategyVolatility)
	})

	t.Run("drawdown uses the running peak", func(t *testing.T) {
		m := Summarize(
			equityCurve(100, 120, 90, 130, 65, 140),
			closeSeries(10, 10, 10, 10, 10, 10),
			dec(100),
			nil,
		)
		require.InDelta(t, 65.0/130-1, m.StrategyMaxDrawdown, 1e-12)
		require.Equal(t, 0.0, m.BuyHoldMaxDrawdown)
		require.Equal(t, 0.0, m.BuyHoldReturn)
	})

	t.Run("cagr over a calendar year", func(t *testing.T) {
		equity := []domain.EquityPoint{
			{Date: d(0), Equity: dec(100)},
			{Date: d(365), Equity: dec(121)},
		}
		closes := []domain.PricePoint{
			{Date: d(0), Close: dec(50)},
			{Date: d(365), Close: dec(100)},
		}
		m := Summarize(equity, closes, dec(100), nil)
		require.InDelta(t, math.Pow(1.21, 365.25/365)-1, m.StrategyCAGR, 1e-12)
		require.InDelta(t, 1.0, m.BuyHoldReturn, 1e-12)
		require.InDelta(t, math.Pow(2, 365.25/365)-1, m.BuyHoldCAGR, 1e-12)
	})

	t.Run("win rate pairs complete cycles only", func(t *testing.T) {
		trades := []domain.Trade{
			{Side: domain.Side_Buy, ExecutionPrice: dec(100)},
			{Side: domain.Side_Sell, ExecutionPrice: dec(120)},
			{Side: domain.Side_Buy, ExecutionPrice: dec(120)},
			{Side: domain.Side_Sell, ExecutionPrice: dec(110)},
			{Side: domain.Side_Buy, ExecutionPrice: dec(100)},
			{Side: domain.Side_Sell, Kind: domain.TradeKind_ForcedLiquidation, ExecutionPrice: dec(100)},
		}
		m := Summarize(equityCurve(1000, 1000), closeSeries(100, 100), dec(1000), trades)
		require.Equal(t, 6, m.TradeCount)
		require.Equal(t, 3, m.RoundTrips)
		require.InDelta(t, 1.0/3, m.WinRate, 1e-12)
	})

	t.Run("volatility and sharpe are annualized from daily returns", func(t *testing.T) {
		m := Summarize(equityCurve(100, 110, 99, 108.9), closeSeries(1, 1, 1, 1), dec(100), nil)
		require.InDelta(t, 0.1*math.Sqrt(365)*math.Sqrt(4.0/3), m.StrategyVolatility, 1e-9)
		require.InDelta(t, m.StrategyCAGR/m.StrategyVolatility, m.StrategySharpe, 1e-12)
	})
}

func TestBuyHoldCurve(t *testing.T) {
	curve := BuyHoldCurve(closeSeries(100, 150, 50), dec(1000))
	require.Equal(t, "", cmp.Diff(
		equityCurve(1000, 1500, 500),
		curve,
		cmpopts.EquateEmpty(),
	))
	require.Len(t, BuyHoldCurve(closeSeries(0, 10), dec(1000)), 0)
}
