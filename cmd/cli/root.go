package main

import (
	"fmt"
	"os"
	"time"

	"fgibacktest/cmd"
	"fgibacktest/internal/logger"
	"fgibacktest/internal/util"

	"github.com/spf13/cobra"
)

const defaultLookbackDays = 730

type rootConfig struct {
	configPath string
	deps       *cmd.Dependencies
}

// dependencies wires everything on first use so --help never touches the
// config file
func (rc *rootConfig) dependencies() (*cmd.Dependencies, error) {
	if rc.deps != nil {
		return rc.deps, nil
	}
	if rc.configPath != "" {
		os.Setenv("FGI_CONFIG", rc.configPath)
	}
	deps, err := cmd.InitializeDependencies()
	if err != nil {
		return nil, err
	}
	rc.deps = deps
	return deps, nil
}

func newRootCmd() *cobra.Command {
	rc := &rootConfig{}
	root := &cobra.Command{
		Use:          "fgi",
		Short:        "Backtest a Fear & Greed threshold strategy on BTC",
		SilenceUsage: true,
		PersistentPostRun: func(c *cobra.Command, args []string) {
			cmd.CloseDependencies(rc.deps)
		},
	}
	root.PersistentFlags().StringVar(&rc.configPath, "config", "", "config file (json or yaml), defaults to FGI_CONFIG or config.json")

	root.AddCommand(
		newBacktestCmd(rc),
		newOptimizeCmd(rc),
		newFetchCmd(rc),
		newServeCmd(rc),
	)
	return root
}

type windowFlags struct {
	start string
	end   string
}

func (w *windowFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&w.start, "start", "", "first day, YYYY-MM-DD (default two years before --end)")
	c.Flags().StringVar(&w.end, "end", "", "last day, YYYY-MM-DD (default today)")
}

func (w windowFlags) parse(now time.Time) (time.Time, time.Time, error) {
	end := util.DateOnly(now)
	if w.end != "" {
		t, err := util.ParseDate(w.end)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("bad --end: %w", err)
		}
		end = t
	}
	start := end.AddDate(0, 0, -defaultLookbackDays)
	if w.start != "" {
		t, err := util.ParseDate(w.start)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("bad --start: %w", err)
		}
		start = t
	}
	return start, end, nil
}

func commandLogger(c *cobra.Command) {
	c.SetContext(logger.NewContext(c.Context(), logger.New()))
}
