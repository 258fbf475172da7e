package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fgibacktest/internal/calculator"
	"fgibacktest/internal/domain"
	"fgibacktest/internal/logger"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// SensitivityGrid is the set of thresholds to try, inclusive on both ends.
// pairs where buyBelow >= sellAbove are skipped
type SensitivityGrid struct {
	BuyMin  int `json:"buyMin"`
	BuyMax  int `json:"buyMax"`
	SellMin int `json:"sellMin"`
	SellMax int `json:"sellMax"`
	Step    int `json:"step"`
}

func (g SensitivityGrid) validate() error {
	if g.Step <= 0 {
		return &domain.InvalidParamsError{Field: "step", Reason: "must be positive"}
	}
	if g.BuyMin < 0 || g.BuyMax >= 100 || g.BuyMin > g.BuyMax {
		return &domain.InvalidParamsError{Field: "buyBelow", Reason: "grid must satisfy 0 <= min <= max < 100"}
	}
	if g.SellMin <= 0 || g.SellMax > 100 || g.SellMin > g.SellMax {
		return &domain.InvalidParamsError{Field: "sellAbove", Reason: "grid must satisfy 0 < min <= max <= 100"}
	}
	if g.BuyMin >= g.SellMax {
		return &domain.InvalidParamsError{Field: "buyBelow", Reason: "grid has no pair with buyBelow < sellAbove"}
	}
	return nil
}

func (g SensitivityGrid) pairs() [][2]int {
	out := [][2]int{}
	for buy := g.BuyMin; buy <= g.BuyMax; buy += g.Step {
		for sell := g.SellMin; sell <= g.SellMax; sell += g.Step {
			if buy < sell {
				out = append(out, [2]int{buy, sell})
			}
		}
	}
	return out
}

type SensitivityInput struct {
	Start          time.Time
	End            time.Time
	InitialCapital decimal.Decimal
	FeeRate        decimal.Decimal
	ExecuteOnClose bool
	FillPolicy     domain.FillPolicy
	Grid           SensitivityGrid
	Top            int
	Workers        int
}

type SensitivityResult struct {
	BuyBelow  decimal.Decimal `json:"buyBelow"`
	SellAbove decimal.Decimal `json:"sellAbove"`
	Metrics   domain.Metrics  `json:"metrics"`
}

type SensitivityReport struct {
	Evaluated       int                    `json:"evaluated"`
	Results         []SensitivityResult    `json:"results"`
	Alignment       domain.AlignmentReport `json:"alignment"`
	SentimentSource string                 `json:"sentimentSource"`
	PriceSource     string                 `json:"priceSource"`
}

type SensitivityApp interface {
	Run(ctx context.Context, in SensitivityInput) (*SensitivityReport, error)
}

type sensitivityAppHandler struct {
	BacktestApp BacktestApp
}

func NewSensitivityApp(backtestApp BacktestApp) SensitivityApp {
	return sensitivityAppHandler{
		BacktestApp: backtestApp,
	}
}

// Run fetches and aligns once, then simulates every grid pair against the
// same series
func (h sensitivityAppHandler) Run(ctx context.Context, in SensitivityInput) (*SensitivityReport, error) {
	log := logger.FromContext(ctx)

	if err := in.Grid.validate(); err != nil {
		return nil, err
	}
	base := domain.BacktestParams{
		Start:          in.Start,
		End:            in.End,
		BuyBelow:       decimal.NewFromInt(int64(in.Grid.BuyMin)),
		SellAbove:      decimal.NewFromInt(int64(in.Grid.SellMax)),
		InitialCapital: in.InitialCapital,
		FeeRate:        in.FeeRate,
		ExecuteOnClose: in.ExecuteOnClose,
		FillPolicy:     in.FillPolicy,
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}
	top := in.Top
	if top <= 0 {
		top = 10
	}
	workers := in.Workers
	if workers <= 0 {
		workers = 1
	}

	loaded, err := h.BacktestApp.LoadSeries(ctx, in.Start, in.End, in.FillPolicy)
	if err != nil {
		return nil, err
	}
	closes := loaded.Aligned.Prices()

	pairs := in.Grid.pairs()
	results := make([]SensitivityResult, len(pairs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, pair := range pairs {
		i, pair := i, pair
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			buyBelow := decimal.NewFromInt(int64(pair[0]))
			sellAbove := decimal.NewFromInt(int64(pair[1]))
			run, err := calculator.RunStrategy(calculator.StrategyInput{
				Series:         loaded.Aligned,
				BuyBelow:       buyBelow,
				SellAbove:      sellAbove,
				InitialCapital: in.InitialCapital,
				FeeRate:        in.FeeRate,
				ExecuteOnClose: in.ExecuteOnClose,
			})
			if err != nil {
				return fmt.Errorf("failed to run %s/%s: %w", buyBelow, sellAbove, err)
			}
			results[i] = SensitivityResult{
				BuyBelow:  buyBelow,
				SellAbove: sellAbove,
				Metrics:   calculator.Summarize(run.Equity, closes, in.InitialCapital, run.Trades),
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	rankSensitivity(results)
	if len(results) > top {
		results = results[:top]
	}
	log.Debugf("evaluated %d threshold pairs over %d rows", len(pairs), len(loaded.Aligned))

	return &SensitivityReport{
		Evaluated:       len(pairs),
		Results:         results,
		Alignment:       loaded.Report,
		SentimentSource: loaded.SentimentSource,
		PriceSource:     loaded.PriceSource,
	}, nil
}

// rankSensitivity orders by return, then fewer trades, then lower buyBelow
func rankSensitivity(results []SensitivityResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Metrics.StrategyReturn != b.Metrics.StrategyReturn {
			return a.Metrics.StrategyReturn > b.Metrics.StrategyReturn
		}
		if a.Metrics.TradeCount != b.Metrics.TradeCount {
			return a.Metrics.TradeCount < b.Metrics.TradeCount
		}
		if !a.BuyBelow.Equal(b.BuyBelow) {
			return a.BuyBelow.LessThan(b.BuyBelow)
		}
		return a.SellAbove.LessThan(b.SellAbove)
	})
}
