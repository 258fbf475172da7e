package app

import (
	"context"
	"testing"

	"fgibacktest/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func sensitivityInput() SensitivityInput {
	return SensitivityInput{
		Start:          d(0),
		End:            d(2),
		InitialCapital: decimal.NewFromInt(1000),
		FeeRate:        decimal.Zero,
		ExecuteOnClose: true,
		FillPolicy:     domain.FillPolicy_Drop,
		Grid: SensitivityGrid{
			BuyMin:  10,
			BuyMax:  20,
			SellMin: 80,
			SellMax: 90,
			Step:    10,
		},
		Top:     3,
		Workers: 2,
	}
}

func TestSensitivityApp_Run(t *testing.T) {
	t.Run("ranks pairs by return then trades then thresholds", func(t *testing.T) {
		s, p := newFakes([]int64{100, 110, 120}, []int64{15, 50, 85})
		app := NewSensitivityApp(NewBacktestApp(s, p, nil, nil, nil, nil))

		report, err := app.Run(context.Background(), sensitivityInput())
		require.NoError(t, err)
		require.Equal(t, 4, report.Evaluated)
		require.Len(t, report.Results, 3)

		type pair struct{ buy, sell int64 }
		got := []pair{}
		for _, r := range report.Results {
			got = append(got, pair{r.BuyBelow.IntPart(), r.SellAbove.IntPart()})
		}
		require.Equal(t, []pair{{20, 80}, {20, 90}, {10, 80}}, got)

		require.InDelta(t, 0.2, report.Results[0].Metrics.StrategyReturn, 1e-9)
		require.InDelta(t, 0.2, report.Results[1].Metrics.StrategyReturn, 1e-9)
		require.Equal(t, 0, report.Results[2].Metrics.TradeCount)

		// one fetch serves the whole grid
		require.Equal(t, int32(1), s.calls.Load())
		require.Equal(t, int32(1), p.calls.Load())
	})

	t.Run("pairs with buy at or above sell are skipped", func(t *testing.T) {
		grid := SensitivityGrid{BuyMin: 40, BuyMax: 60, SellMin: 50, SellMax: 60, Step: 10}
		require.ElementsMatch(t, [][2]int{{40, 50}, {40, 60}, {50, 60}}, grid.pairs())
	})

	t.Run("bad grid", func(t *testing.T) {
		s, p := newFakes([]int64{100}, []int64{15})
		app := NewSensitivityApp(NewBacktestApp(s, p, nil, nil, nil, nil))

		in := sensitivityInput()
		in.Grid.Step = 0
		_, err := app.Run(context.Background(), in)
		require.True(t, domain.IsInvalidParams(err))

		in = sensitivityInput()
		in.Grid.BuyMin = 95
		in.Grid.BuyMax = 99
		_, err = app.Run(context.Background(), in)
		require.True(t, domain.IsInvalidParams(err))
		require.Equal(t, int32(0), s.calls.Load())
	})

	t.Run("no data", func(t *testing.T) {
		s, p := newFakes(nil, nil)
		app := NewSensitivityApp(NewBacktestApp(s, p, nil, nil, nil, nil))

		_, err := app.Run(context.Background(), sensitivityInput())
		require.True(t, domain.IsNoData(err))
	})
}
