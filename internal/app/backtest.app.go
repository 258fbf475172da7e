package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fgibacktest/internal/calculator"
	"fgibacktest/internal/db/models/postgres/public/model"
	"fgibacktest/internal/domain"
	"fgibacktest/internal/logger"
	"fgibacktest/internal/metrics"
	"fgibacktest/internal/repository"
	l1_service "fgibacktest/internal/service/l1"
	"fgibacktest/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var ErrHistoryDisabled = errors.New("run history is not configured")

// BacktestApp runs the whole pipeline for one parameter set: fetch both
// series, align them, simulate, summarize and record the run
type BacktestApp interface {
	Run(ctx context.Context, params domain.BacktestParams) (*BacktestResult, error)
	LoadSeries(ctx context.Context, start, end time.Time, policy domain.FillPolicy) (*LoadedSeries, error)
	PreviewSeries(ctx context.Context, start, end time.Time, policy domain.FillPolicy, limit int) (*SeriesPreview, error)
	ListRuns(ctx context.Context, limit int) ([]model.BacktestRun, error)
}

type BacktestResult struct {
	RunID           uuid.UUID              `json:"runID"`
	Trades          []domain.Trade         `json:"trades"`
	Equity          []domain.EquityPoint   `json:"equity"`
	BuyHold         []domain.EquityPoint   `json:"buyHold"`
	Metrics         domain.Metrics         `json:"metrics"`
	Alignment       domain.AlignmentReport `json:"alignment"`
	SentimentSource string                 `json:"sentimentSource"`
	PriceSource     string                 `json:"priceSource"`
	Profile         []domain.Span          `json:"profile"`
}

// LoadedSeries is an aligned series plus where its inputs came from
type LoadedSeries struct {
	Aligned         domain.AlignedSeries
	Report          domain.AlignmentReport
	SentimentSource string
	PriceSource     string
	SentimentRows   int
	PriceRows       int
}

type SeriesPreview struct {
	Rows            []domain.DailyPoint    `json:"rows"`
	TotalRows       int                    `json:"totalRows"`
	SentimentRows   int                    `json:"sentimentRows"`
	PriceRows       int                    `json:"priceRows"`
	SentimentSource string                 `json:"sentimentSource"`
	PriceSource     string                 `json:"priceSource"`
	Alignment       domain.AlignmentReport `json:"alignment"`
}

type backtestAppHandler struct {
	SentimentService        l1_service.SentimentService
	PriceService            l1_service.PriceService
	BacktestRunRepository   repository.BacktestRunRepository
	BacktestTradeRepository repository.BacktestTradeRepository
	Db                      *sql.DB
	Metrics                 *metrics.Recorder
}

// NewBacktestApp takes nil run/trade repositories when there is no
// database; runs are then not recorded
func NewBacktestApp(
	sentimentService l1_service.SentimentService,
	priceService l1_service.PriceService,
	backtestRunRepository repository.BacktestRunRepository,
	backtestTradeRepository repository.BacktestTradeRepository,
	db *sql.DB,
	recorder *metrics.Recorder,
) BacktestApp {
	return backtestAppHandler{
		SentimentService:        sentimentService,
		PriceService:            priceService,
		BacktestRunRepository:   backtestRunRepository,
		BacktestTradeRepository: backtestTradeRepository,
		Db:                      db,
		Metrics:                 recorder,
	}
}

func (h backtestAppHandler) Run(ctx context.Context, params domain.BacktestParams) (*BacktestResult, error) {
	log := logger.FromContext(ctx)
	profile := domain.NewProfile()
	ctx = domain.ContextWithProfile(ctx, profile)

	result, err := h.run(ctx, params)
	profile.End()
	switch {
	case err == nil:
		h.Metrics.RecordBacktest("ok")
	case domain.IsInvalidParams(err):
		h.Metrics.RecordBacktest("invalid")
	case domain.IsNoData(err):
		h.Metrics.RecordBacktest("no_data")
	default:
		h.Metrics.RecordBacktest("error")
	}
	if err != nil {
		return nil, err
	}

	result.Profile = profile.Snapshot()
	log.Debugf("backtest %s finished in %dms", result.RunID, *profile.TotalMs)
	return result, nil
}

func (h backtestAppHandler) run(ctx context.Context, params domain.BacktestParams) (*BacktestResult, error) {
	log := logger.FromContext(ctx)
	profile := domain.ProfileFromContext(ctx)

	if err := params.Validate(); err != nil {
		return nil, err
	}
	loaded, err := h.LoadSeries(ctx, params.Start, params.End, params.FillPolicy)
	if err != nil {
		return nil, err
	}

	_, endSpan := profile.StartSpan("simulate")
	run, err := calculator.RunStrategy(calculator.StrategyInput{
		Series:         loaded.Aligned,
		BuyBelow:       params.BuyBelow,
		SellAbove:      params.SellAbove,
		InitialCapital: params.InitialCapital,
		FeeRate:        params.FeeRate,
		ExecuteOnClose: params.ExecuteOnClose,
	})
	endSpan()
	if err != nil {
		return nil, fmt.Errorf("failed to run strategy: %w", err)
	}

	_, endSpan = profile.StartSpan("summarize")
	closes := loaded.Aligned.Prices()
	summary := calculator.Summarize(run.Equity, closes, params.InitialCapital, run.Trades)
	buyHold := calculator.BuyHoldCurve(closes, params.InitialCapital)
	endSpan()

	result := &BacktestResult{
		RunID:           uuid.New(),
		Trades:          run.Trades,
		Equity:          run.Equity,
		BuyHold:         buyHold,
		Metrics:         summary,
		Alignment:       loaded.Report,
		SentimentSource: loaded.SentimentSource,
		PriceSource:     loaded.PriceSource,
	}

	if h.BacktestRunRepository != nil {
		_, endSpan = profile.StartSpan("persist")
		if err := h.persist(params, result, len(loaded.Aligned)); err != nil {
			// the result is still good, history is best effort
			log.Errorf("failed to record backtest %s: %v", result.RunID, err)
		}
		endSpan()
	}

	return result, nil
}

// LoadSeries fetches both series concurrently and aligns them. the fetches
// themselves cannot fail, an empty series surfaces here as a typed error
func (h backtestAppHandler) LoadSeries(ctx context.Context, start, end time.Time, policy domain.FillPolicy) (*LoadedSeries, error) {
	loaded := h.load(ctx, start, end, policy)
	if loaded.SentimentRows == 0 {
		return nil, &domain.EmptySourceError{Kind: domain.SeriesKind_Sentiment}
	}
	if loaded.PriceRows == 0 {
		return nil, &domain.EmptySourceError{Kind: domain.SeriesKind_Price}
	}
	if err := loaded.Report.Err(); err != nil {
		return nil, err
	}
	return loaded, nil
}

func (h backtestAppHandler) load(ctx context.Context, start, end time.Time, policy domain.FillPolicy) *LoadedSeries {
	profile := domain.ProfileFromContext(ctx)

	var sentiment domain.SentimentSeries
	var price domain.PriceSeries
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		_, endSpan := profile.StartSpan("fetch sentiment")
		defer endSpan()
		sentiment = h.SentimentService.GetSentiment(groupCtx)
		return nil
	})
	group.Go(func() error {
		_, endSpan := profile.StartSpan("fetch prices")
		defer endSpan()
		price = h.PriceService.GetPrices(groupCtx, start, end)
		return nil
	})
	// neither fetch returns an error
	_ = group.Wait()

	_, endSpan := profile.StartSpan("align")
	aligned, report := calculator.Align(sentiment, price, start, end, policy)
	endSpan()

	logger.FromContext(ctx).Debugf(
		"aligned %d rows for %s (sentiment from %q, price from %q, %d dropped)",
		len(aligned), report.Requested, sentiment.Source, price.Source, report.DroppedRows,
	)

	return &LoadedSeries{
		Aligned:         aligned,
		Report:          report,
		SentimentSource: sentiment.Source,
		PriceSource:     price.Source,
		SentimentRows:   len(sentiment.Points),
		PriceRows:       len(price.Points),
	}
}

func (h backtestAppHandler) PreviewSeries(ctx context.Context, start, end time.Time, policy domain.FillPolicy, limit int) (*SeriesPreview, error) {
	if start.After(end) {
		return nil, &domain.InvalidParamsError{Field: "window", Reason: "start must not be after end"}
	}
	if _, err := domain.NewFillPolicy(string(policy)); err != nil {
		return nil, &domain.InvalidParamsError{Field: "fillPolicy", Reason: err.Error()}
	}
	if limit <= 0 {
		limit = 10
	}

	loaded := h.load(ctx, start, end, policy)
	rows := loaded.Aligned
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return &SeriesPreview{
		Rows:            rows,
		TotalRows:       len(loaded.Aligned),
		SentimentRows:   loaded.SentimentRows,
		PriceRows:       loaded.PriceRows,
		SentimentSource: loaded.SentimentSource,
		PriceSource:     loaded.PriceSource,
		Alignment:       loaded.Report,
	}, nil
}

func (h backtestAppHandler) ListRuns(ctx context.Context, limit int) ([]model.BacktestRun, error) {
	if h.BacktestRunRepository == nil {
		return nil, ErrHistoryDisabled
	}
	return h.BacktestRunRepository.List(limit)
}

func (h backtestAppHandler) persist(params domain.BacktestParams, result *BacktestResult, rowCount int) error {
	var tx *sql.Tx
	if h.Db != nil {
		var err error
		tx, err = h.Db.Begin()
		if err != nil {
			return fmt.Errorf("failed to start transaction: %w", err)
		}
		defer tx.Rollback()
	}

	m := result.Metrics
	_, err := h.BacktestRunRepository.Add(tx, model.BacktestRun{
		BacktestRunID:       result.RunID,
		StartDate:           util.DateOnly(params.Start),
		EndDate:             util.DateOnly(params.End),
		BuyBelow:            params.BuyBelow,
		SellAbove:           params.SellAbove,
		InitialCapital:      params.InitialCapital,
		FeeRate:             params.FeeRate,
		ExecuteOnClose:      params.ExecuteOnClose,
		FillPolicy:          string(params.FillPolicy),
		SentimentSource:     result.SentimentSource,
		PriceSource:         result.PriceSource,
		RowCount:            int32(rowCount),
		StrategyReturn:      m.StrategyReturn,
		StrategyCagr:        m.StrategyCAGR,
		StrategyMaxDrawdown: m.StrategyMaxDrawdown,
		BuyHoldReturn:       m.BuyHoldReturn,
		BuyHoldCagr:         m.BuyHoldCAGR,
		TradeCount:          int32(m.TradeCount),
		WinRate:             m.WinRate,
		FinalEquity:         finalEquity(result.Equity),
	})
	if err != nil {
		return err
	}

	if h.BacktestTradeRepository != nil {
		trades := make([]model.BacktestTrade, 0, len(result.Trades))
		for _, t := range result.Trades {
			trades = append(trades, model.BacktestTrade{
				BacktestRunID:        result.RunID,
				TradeDate:            t.Date,
				Side:                 string(t.Side),
				Kind:                 string(t.Kind),
				ExecutionPrice:       t.ExecutionPrice,
				SentimentAtExecution: t.SentimentAtExecution,
				Quantity:             t.Quantity,
				CashAfter:            t.CashAfter,
			})
		}
		if _, err := h.BacktestTradeRepository.AddMany(tx, trades); err != nil {
			return err
		}
	}

	if tx != nil {
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit backtest run: %w", err)
		}
	}
	return nil
}

func finalEquity(equity []domain.EquityPoint) decimal.Decimal {
	if len(equity) == 0 {
		return decimal.Zero
	}
	return equity[len(equity)-1].Equity
}
