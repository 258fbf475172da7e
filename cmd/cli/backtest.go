package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"fgibacktest/internal/app"
	"fgibacktest/internal/domain"
	"fgibacktest/internal/util"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type tradeCsvRow struct {
	Date      string `csv:"date"`
	Side      string `csv:"side"`
	Kind      string `csv:"kind"`
	Price     string `csv:"price"`
	Sentiment string `csv:"sentiment"`
	Quantity  string `csv:"quantity"`
	CashAfter string `csv:"cash_after"`
}

type equityCsvRow struct {
	Date     string `csv:"date"`
	Strategy string `csv:"strategy"`
	BuyHold  string `csv:"buy_hold"`
}

func newBacktestCmd(rc *rootConfig) *cobra.Command {
	var (
		window         windowFlags
		buyBelow       float64
		sellAbove      float64
		capital        float64
		feeBps         float64
		executeOnClose bool
		fillPolicy     string
		tradesCsv      string
		equityCsv      string
	)

	c := &cobra.Command{
		Use:   "backtest",
		Short: "Run one backtest and print the summary",
		RunE: func(c *cobra.Command, args []string) error {
			commandLogger(c)
			start, end, err := window.parse(time.Now())
			if err != nil {
				return err
			}
			policy, err := domain.NewFillPolicy(fillPolicy)
			if err != nil {
				return err
			}
			deps, err := rc.dependencies()
			if err != nil {
				return err
			}

			result, err := deps.BacktestApp.Run(c.Context(), domain.BacktestParams{
				Start:          start,
				End:            end,
				BuyBelow:       decimal.NewFromFloat(buyBelow),
				SellAbove:      decimal.NewFromFloat(sellAbove),
				InitialCapital: decimal.NewFromFloat(capital),
				FeeRate:        domain.FeeRateFromBps(decimal.NewFromFloat(feeBps)),
				ExecuteOnClose: executeOnClose,
				FillPolicy:     policy,
			})
			if err != nil {
				return err
			}

			printBacktest(result)

			if tradesCsv != "" {
				if err := writeCsv(tradesCsv, tradeRows(result.Trades)); err != nil {
					return err
				}
			}
			if equityCsv != "" {
				if err := writeCsv(equityCsv, equityRows(result.Equity, result.BuyHold)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	window.register(c)
	c.Flags().Float64Var(&buyBelow, "buy-below", 30, "buy when sentiment is strictly below this")
	c.Flags().Float64Var(&sellAbove, "sell-above", 70, "sell when sentiment is strictly above this")
	c.Flags().Float64Var(&capital, "capital", 1000, "starting cash")
	c.Flags().Float64Var(&feeBps, "fee-bps", 10, "fee per trade in basis points")
	c.Flags().BoolVar(&executeOnClose, "execute-on-close", false, "fill at the signal day's close instead of the next open")
	c.Flags().StringVar(&fillPolicy, "fill-policy", string(domain.DefaultFillPolicy), "drop or keep_unscored")
	c.Flags().StringVar(&tradesCsv, "trades-csv", "", "write trades to this csv file")
	c.Flags().StringVar(&equityCsv, "equity-csv", "", "write strategy and buy-and-hold equity to this csv file")
	return c
}

func printBacktest(result *app.BacktestResult) {
	m := result.Metrics
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "run\t%s\n", result.RunID)
	fmt.Fprintf(w, "window\t%s (%d rows)\n", result.Alignment.Requested, len(result.Equity))
	fmt.Fprintf(w, "sources\tsentiment=%s price=%s\n", result.SentimentSource, result.PriceSource)
	fmt.Fprintf(w, "\t\n")
	fmt.Fprintf(w, "\tstrategy\tbuy & hold\n")
	fmt.Fprintf(w, "return\t%.2f%%\t%.2f%%\n", m.StrategyReturn*100, m.BuyHoldReturn*100)
	fmt.Fprintf(w, "cagr\t%.2f%%\t%.2f%%\n", m.StrategyCAGR*100, m.BuyHoldCAGR*100)
	fmt.Fprintf(w, "max drawdown\t%.2f%%\t%.2f%%\n", m.StrategyMaxDrawdown*100, m.BuyHoldMaxDrawdown*100)
	fmt.Fprintf(w, "volatility\t%.2f%%\t\n", m.StrategyVolatility*100)
	fmt.Fprintf(w, "sharpe\t%.2f\t\n", m.StrategySharpe)
	fmt.Fprintf(w, "trades\t%d (%d round trips, %.0f%% won)\t\n", m.TradeCount, m.RoundTrips, m.WinRate*100)
	fmt.Fprintf(w, "final equity\t%.2f\t\n", m.FinalEquity)
	w.Flush()
}

func tradeRows(trades []domain.Trade) []tradeCsvRow {
	out := make([]tradeCsvRow, 0, len(trades))
	for _, t := range trades {
		out = append(out, tradeCsvRow{
			Date:      util.FormatDate(t.Date),
			Side:      string(t.Side),
			Kind:      string(t.Kind),
			Price:     t.ExecutionPrice.String(),
			Sentiment: t.SentimentAtExecution.String(),
			Quantity:  t.Quantity.String(),
			CashAfter: t.CashAfter.String(),
		})
	}
	return out
}

// equityRows joins both curves by date; they share the aligned calendar
func equityRows(strategy, buyHold []domain.EquityPoint) []equityCsvRow {
	baseline := map[time.Time]decimal.Decimal{}
	for _, p := range buyHold {
		baseline[p.Date] = p.Equity
	}
	out := make([]equityCsvRow, 0, len(strategy))
	for _, p := range strategy {
		row := equityCsvRow{
			Date:     util.FormatDate(p.Date),
			Strategy: p.Equity.StringFixed(2),
		}
		if v, ok := baseline[p.Date]; ok {
			row.BuyHold = v.StringFixed(2)
		}
		out = append(out, row)
	}
	return out
}

func writeCsv[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
