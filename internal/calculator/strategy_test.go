package calculator

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"fgibacktest/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestRunStrategy(t *testing.T) {
	capital := dec(1000)

	t.Run("fear entry and greed exit on close", func(t *testing.T) {
		result, err := RunStrategy(StrategyInput{
			Series:         series([]int64{100, 90, 80, 70, 110}, []int64{50, 25, 20, 60, 75}),
			BuyBelow:       dec(30),
			SellAbove:      dec(70),
			InitialCapital: capital,
			FeeRate:        decimal.Zero,
			ExecuteOnClose: true,
		})
		require.NoError(t, err)
		require.Len(t, result.Trades, 2)

		buy, sell := result.Trades[0], result.Trades[1]
		require.Equal(t, domain.Side_Buy, buy.Side)
		require.Equal(t, d(1), buy.Date)
		require.True(t, buy.ExecutionPrice.Equal(dec(90)))
		require.True(t, buy.SentimentAtExecution.Equal(dec(25)))
		require.Equal(t, domain.Side_Sell, sell.Side)
		require.Equal(t, domain.TradeKind_Signal, sell.Kind)
		require.Equal(t, d(4), sell.Date)
		require.True(t, sell.ExecutionPrice.Equal(dec(110)))

		final := result.Equity[len(result.Equity)-1].Equity.InexactFloat64()
		require.InDelta(t, 110.0/90.0-1, final/1000-1, 1e-9)

		// equity is marked after the day's execution
		require.True(t, result.Equity[0].Equity.Equal(capital))
		require.InDelta(t, 1000.0*80/90, result.Equity[2].Equity.InexactFloat64(), 1e-6)
	})

	t.Run("next open fills the day after the signal", func(t *testing.T) {
		result, err := RunStrategy(StrategyInput{
			Series:         series([]int64{100, 90, 80, 70, 110, 120}, []int64{50, 25, 20, 60, 75, 50}),
			BuyBelow:       dec(30),
			SellAbove:      dec(70),
			InitialCapital: capital,
			FeeRate:        decimal.Zero,
			ExecuteOnClose: false,
		})
		require.NoError(t, err)
		require.Len(t, result.Trades, 2)
		// opens are the previous close in this fixture
		require.Equal(t, d(2), result.Trades[0].Date)
		require.True(t, result.Trades[0].ExecutionPrice.Equal(dec(90)))
		require.True(t, result.Trades[0].SentimentAtExecution.Equal(dec(25)))
		require.Equal(t, d(5), result.Trades[1].Date)
		require.True(t, result.Trades[1].ExecutionPrice.Equal(dec(110)))
	})

	t.Run("signal on the last day with next open execution is dropped", func(t *testing.T) {
		result, err := RunStrategy(StrategyInput{
			Series:         series([]int64{100, 100, 100}, []int64{50, 50, 10}),
			BuyBelow:       dec(30),
			SellAbove:      dec(70),
			InitialCapital: capital,
			FeeRate:        decimal.Zero,
		})
		require.NoError(t, err)
		require.Len(t, result.Trades, 0)
		require.Len(t, result.Equity, 3)
	})

	t.Run("missing opens carry the order forward", func(t *testing.T) {
		s := series([]int64{100, 90, 80, 70, 110, 120}, []int64{50, 25, 20, 60, 75, 50})
		s[2].Open = decimal.NullDecimal{}
		s[5].Open = decimal.NullDecimal{}
		result, err := RunStrategy(StrategyInput{
			Series:         s,
			BuyBelow:       dec(30),
			SellAbove:      dec(70),
			InitialCapital: capital,
			FeeRate:        decimal.Zero,
		})
		require.NoError(t, err)
		require.Len(t, result.Trades, 2)

		buy := result.Trades[0]
		require.Equal(t, domain.Side_Buy, buy.Side)
		require.Equal(t, d(3), buy.Date)
		require.True(t, buy.ExecutionPrice.Equal(dec(80)))
		require.True(t, buy.SentimentAtExecution.Equal(dec(25)))

		// the sell never finds an open and the position is liquidated instead
		sell := result.Trades[1]
		require.Equal(t, domain.TradeKind_ForcedLiquidation, sell.Kind)
		require.Equal(t, d(5), sell.Date)
		require.True(t, sell.ExecutionPrice.Equal(dec(120)))
	})

	t.Run("no opens means no next open fills", func(t *testing.T) {
		s := series([]int64{100, 90, 80, 70, 110, 120}, []int64{50, 25, 20, 60, 75, 50})
		for i := range s {
			s[i].Open = decimal.NullDecimal{}
		}
		result, err := RunStrategy(StrategyInput{
			Series:         s,
			BuyBelow:       dec(30),
			SellAbove:      dec(70),
			InitialCapital: capital,
			FeeRate:        decimal.Zero,
		})
		require.NoError(t, err)
		require.Len(t, result.Trades, 0)
		for _, pt := range result.Equity {
			require.True(t, pt.Equity.Equal(capital))
		}
	})

	t.Run("open position is force liquidated at the last close", func(t *testing.T) {
		fee := decimal.RequireFromString("0.001")
		result, err := RunStrategy(StrategyInput{
			Series:         series([]int64{100, 100, 120}, []int64{10, 50, 50}),
			BuyBelow:       dec(30),
			SellAbove:      dec(70),
			InitialCapital: capital,
			FeeRate:        fee,
			ExecuteOnClose: true,
		})
		require.NoError(t, err)
		require.Len(t, result.Trades, 2)
		last := result.Trades[1]
		require.Equal(t, domain.TradeKind_ForcedLiquidation, last.Kind)
		require.Equal(t, domain.Side_Sell, last.Side)
		require.Equal(t, d(2), last.Date)
		require.True(t, last.ExecutionPrice.Equal(dec(120)))
		require.True(t, result.Equity[2].Equity.Equal(last.CashAfter))
		require.InDelta(t, 1000*0.999*1.2*0.999, last.CashAfter.InexactFloat64(), 1e-6)
		require.True(t, result.EndsFlat())
	})

	t.Run("no threshold crossing means no trades and flat equity", func(t *testing.T) {
		result, err := RunStrategy(StrategyInput{
			Series:         series([]int64{100, 120, 80, 150}, []int64{40, 50, 60, 45}),
			BuyBelow:       dec(30),
			SellAbove:      dec(70),
			InitialCapital: capital,
			FeeRate:        decimal.RequireFromString("0.001"),
			ExecuteOnClose: true,
		})
		require.NoError(t, err)
		require.Len(t, result.Trades, 0)
		for _, e := range result.Equity {
			require.True(t, e.Equity.Equal(capital))
		}
		m := Summarize(result.Equity, series([]int64{100, 120, 80, 150}, []int64{40, 50, 60, 45}).Prices(), capital, result.Trades)
		require.Equal(t, 0.0, m.WinRate)
		require.Equal(t, 0, m.TradeCount)
	})

	t.Run("fee drag on a flat round trip", func(t *testing.T) {
		result, err := RunStrategy(StrategyInput{
			Series:         series([]int64{100, 100, 100}, []int64{10, 50, 90}),
			BuyBelow:       dec(30),
			SellAbove:      dec(70),
			InitialCapital: capital,
			FeeRate:        decimal.RequireFromString("0.01"),
			ExecuteOnClose: true,
		})
		require.NoError(t, err)
		require.Len(t, result.Trades, 2)
		final := result.Equity[2].Equity.InexactFloat64()
		require.InDelta(t, -(1 - 0.99*0.99), final/1000-1, 1e-12)
		require.InDelta(t, -0.0199, final/1000-1, 1e-12)
	})

	t.Run("unscored days never trigger", func(t *testing.T) {
		s := series([]int64{100, 100, 100}, []int64{10, 10, 90})
		s[0].Sentiment = decimal.NullDecimal{}
		result, err := RunStrategy(StrategyInput{
			Series:         s,
			BuyBelow:       dec(30),
			SellAbove:      dec(70),
			InitialCapital: capital,
			ExecuteOnClose: true,
		})
		require.NoError(t, err)
		require.Equal(t, d(1), result.Trades[0].Date)
	})

	t.Run("rejects bad input before simulating", func(t *testing.T) {
		s := series([]int64{100, 0, 100}, []int64{10, 50, 90})
		_, err := RunStrategy(StrategyInput{Series: s, BuyBelow: dec(30), SellAbove: dec(70), InitialCapital: capital})
		integrityErr := &domain.DataIntegrityError{}
		require.True(t, errors.As(err, &integrityErr))
		require.Equal(t, d(1), integrityErr.Date)

		_, err = RunStrategy(StrategyInput{Series: series([]int64{100}, []int64{10}), InitialCapital: decimal.Zero})
		require.True(t, domain.IsInvalidParams(err))
	})

	t.Run("properties hold on random series", func(t *testing.T) {
		r := rand.New(rand.NewSource(42))
		for i := 0; i < 50; i++ {
			s := randomSeries(r, 30+r.Intn(200))
			in := StrategyInput{
				Series:         s,
				BuyBelow:       dec(int64(10 + r.Intn(30))),
				SellAbove:      dec(int64(60 + r.Intn(30))),
				InitialCapital: capital,
				FeeRate:        decimal.RequireFromString("0.001"),
				ExecuteOnClose: r.Intn(2) == 0,
			}
			first, err := RunStrategy(in)
			require.NoError(t, err)
			second, err := RunStrategy(in)
			require.NoError(t, err)

			require.Len(t, first.Equity, len(s))
			buys, sells := first.CountSides()
			require.Equal(t, buys, sells)
			require.Equal(t, "", cmp.Diff(first, second))

			m := Summarize(first.Equity, s.Prices(), capital, first.Trades)
			require.LessOrEqual(t, m.StrategyMaxDrawdown, 0.0)
			require.GreaterOrEqual(t, m.StrategyMaxDrawdown, -1.0)
			require.False(t, math.IsNaN(m.StrategyCAGR))
		}
	})
}
