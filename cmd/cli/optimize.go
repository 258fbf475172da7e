package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"fgibacktest/internal/app"
	"fgibacktest/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newOptimizeCmd(rc *rootConfig) *cobra.Command {
	var (
		window         windowFlags
		capital        float64
		feeBps         float64
		executeOnClose bool
		fillPolicy     string
		grid           app.SensitivityGrid
		top            int
		workers        int
	)

	c := &cobra.Command{
		Use:   "optimize",
		Short: "Try a grid of buy/sell thresholds and rank them by return",
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

			// unset grid flags fall back to config
			cfg := deps.Config.Sensitivity
			if !c.Flags().Changed("buy-min") {
				grid.BuyMin = cfg.BuyMin
			}
			if !c.Flags().Changed("buy-max") {
				grid.BuyMax = cfg.BuyMax
			}
			if !c.Flags().Changed("sell-min") {
				grid.SellMin = cfg.SellMin
			}
			if !c.Flags().Changed("sell-max") {
				grid.SellMax = cfg.SellMax
			}
			if !c.Flags().Changed("step") {
				grid.Step = cfg.Step
			}
			if !c.Flags().Changed("top") {
				top = cfg.Top
			}
			if !c.Flags().Changed("workers") {
				workers = cfg.Workers
			}

			report, err := deps.SensitivityApp.Run(c.Context(), app.SensitivityInput{
				Start:          start,
				End:            end,
				InitialCapital: decimal.NewFromFloat(capital),
				FeeRate:        domain.FeeRateFromBps(decimal.NewFromFloat(feeBps)),
				ExecuteOnClose: executeOnClose,
				FillPolicy:     policy,
				Grid:           grid,
				Top:            top,
				Workers:        workers,
			})
			if err != nil {
				return err
			}

			fmt.Printf("evaluated %d pairs over %s\n\n", report.Evaluated, report.Alignment.Requested)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "buy below\tsell above\treturn\tmax drawdown\ttrades\twin rate")
			for _, r := range report.Results {
				fmt.Fprintf(w, "%s\t%s\t%.2f%%\t%.2f%%\t%d\t%.0f%%\n",
					r.BuyBelow, r.SellAbove,
					r.Metrics.StrategyReturn*100,
					r.Metrics.StrategyMaxDrawdown*100,
					r.Metrics.TradeCount,
					r.Metrics.WinRate*100,
				)
			}
			return w.Flush()
		},
	}

	window.register(c)
	c.Flags().Float64Var(&capital, "capital", 1000, "starting cash")
	c.Flags().Float64Var(&feeBps, "fee-bps", 10, "fee per trade in basis points")
	c.Flags().BoolVar(&executeOnClose, "execute-on-close", false, "fill at the signal day's close instead of the next open")
	c.Flags().StringVar(&fillPolicy, "fill-policy", string(domain.DefaultFillPolicy), "drop or keep_unscored")
	c.Flags().IntVar(&grid.BuyMin, "buy-min", 0, "lowest buy threshold")
	c.Flags().IntVar(&grid.BuyMax, "buy-max", 0, "highest buy threshold")
	c.Flags().IntVar(&grid.SellMin, "sell-min", 0, "lowest sell threshold")
	c.Flags().IntVar(&grid.SellMax, "sell-max", 0, "highest sell threshold")
	c.Flags().IntVar(&grid.Step, "step", 0, "threshold step")
	c.Flags().IntVar(&top, "top", 0, "how many pairs to print")
	c.Flags().IntVar(&workers, "workers", 0, "parallel simulations")
	return c
}
