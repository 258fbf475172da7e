package calculator

import (
	"math"

	"fgibacktest/internal/domain"
	"fgibacktest/internal/util"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

const (
	daysPerYear = 365.25
	// crypto trades every day, so daily returns annualize over 365
	tradingDaysPerYear = 365
)

// Summarize compares the equity curve with buy-and-hold over the same
// closes. empty input gives the zero Metrics rather than an error
func Summarize(
	equity []domain.EquityPoint,
	closes []domain.PricePoint,
	initialCapital decimal.Decimal,
	trades []domain.Trade,
) domain.Metrics {
	if len(equity) == 0 || len(closes) == 0 {
		return domain.Metrics{}
	}

	values := equityValues(equity)
	out := domain.Metrics{
		FinalEquity:         values[len(values)-1],
		StrategyCAGR:        cagr(equity),
		StrategyMaxDrawdown: maxDrawdown(values),
		TradeCount:          len(trades),
	}
	if initialCapital.IsPositive() {
		out.StrategyReturn = values[len(values)-1]/initialCapital.InexactFloat64() - 1
	}

	out.StrategyVolatility = annualizedVolatility(values)
	if out.StrategyVolatility > 0 {
		out.StrategySharpe = out.StrategyCAGR / out.StrategyVolatility
	}

	firstClose := closes[0].Close
	if firstClose.IsPositive() {
		out.BuyHoldReturn = closes[len(closes)-1].Close.Div(firstClose).InexactFloat64() - 1
		baseline := BuyHoldCurve(closes, initialCapital)
		out.BuyHoldCAGR = cagr(baseline)
		out.BuyHoldMaxDrawdown = maxDrawdown(equityValues(baseline))
	}

	roundTrips := domain.RoundTrips(trades)
	out.RoundTrips = len(roundTrips)
	if len(roundTrips) > 0 {
		wins := 0
		for _, rt := range roundTrips {
			if rt.Won() {
				wins++
			}
		}
		out.WinRate = float64(wins) / float64(len(roundTrips))
	}

	return out
}

// BuyHoldCurve is what initialCapital would be worth holding the asset from
// the first close onwards, with no fees
func BuyHoldCurve(closes []domain.PricePoint, initialCapital decimal.Decimal) []domain.EquityPoint {
	out := []domain.EquityPoint{}
	if len(closes) == 0 || !closes[0].Close.IsPositive() {
		return out
	}
	first := closes[0].Close
	for _, c := range closes {
		out = append(out, domain.EquityPoint{
			Date:   c.Date,
			Equity: c.Close.Div(first).Mul(initialCapital),
		})
	}
	return out
}

func equityValues(equity []domain.EquityPoint) []float64 {
	out := make([]float64, 0, len(equity))
	for _, e := range equity {
		out = append(out, e.Equity.InexactFloat64())
	}
	return out
}

// cagr is (last/first)^(365.25/days) - 1 over calendar days between the
// first and last point
func cagr(equity []domain.EquityPoint) float64 {
	if len(equity) < 2 {
		return 0
	}
	first := equity[0].Equity.InexactFloat64()
	last := equity[len(equity)-1].Equity.InexactFloat64()
	numDays := util.DaysBetween(equity[0].Date, equity[len(equity)-1].Date)
	if first <= 0 || last < 0 || numDays <= 0 {
		return 0
	}
	return math.Pow(last/first, daysPerYear/float64(numDays)) - 1
}

// maxDrawdown is the lowest equity/runningPeak - 1 seen in one forward pass
func maxDrawdown(values []float64) float64 {
	worst := 0.0
	peak := math.Inf(-1)
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak <= 0 {
			continue
		}
		if dd := v/peak - 1; dd < worst {
			worst = dd
		}
	}
	return worst
}

func annualizedVolatility(values []float64) float64 {
	returns := []float64{}
	for i := 1; i < len(values); i++ {
		if values[i-1] <= 0 {
			continue
		}
		returns = append(returns, values[i]/values[i-1]-1)
	}
	if len(returns) < 2 {
		return 0
	}
	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil || math.IsNaN(stdev) {
		return 0
	}
	return stdev * math.Sqrt(tradingDaysPerYear)
}
