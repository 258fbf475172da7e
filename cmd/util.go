package cmd

import (
	"database/sql"
	"fmt"
	"time"

	"fgibacktest/api"
	"fgibacktest/internal/app"
	"fgibacktest/internal/logger"
	"fgibacktest/internal/metrics"
	"fgibacktest/internal/repository"
	l1_service "fgibacktest/internal/service/l1"
	"fgibacktest/internal/util"
	"fgibacktest/pkg/alternativeme"
	"fgibacktest/pkg/binance"
	"fgibacktest/pkg/coingecko"
	"fgibacktest/pkg/httpclient"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
)

const userAgent = "fgibacktest/1.0"

// Dependencies is the wired object graph shared by the api, lambda and cli
// entrypoints
type Dependencies struct {
	Config           *util.Config
	Db               *sql.DB
	Metrics          *metrics.Recorder
	SentimentService l1_service.SentimentService
	PriceService     l1_service.PriceService
	BacktestApp      app.BacktestApp
	SensitivityApp   app.SensitivityApp
	ApiHandler       *api.ApiHandler
}

func CloseDependencies(deps *Dependencies) {
	if deps == nil || deps.Db == nil {
		return
	}
	if err := deps.Db.Close(); err != nil {
		logger.New().Errorf("failed to close db: %v", err)
	}
}

func InitializeDependencies() (*Dependencies, error) {
	cfg, err := util.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return InitializeDependenciesFromConfig(cfg, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

func InitializeDependenciesFromConfig(
	cfg *util.Config,
	registerer prometheus.Registerer,
	gatherer prometheus.Gatherer,
) (*Dependencies, error) {
	log := logger.New()
	recorder := metrics.New(registerer)
	retry := cfg.RetryPolicy(httpclient.IsTransient)

	httpClient := httpclient.NewClient(
		httpclient.WithTimeout(cfg.HttpTimeout),
		httpclient.WithUserAgent(userAgent),
	)
	cache := repository.NewSeriesCacheRepository(cfg.CacheDir)

	sentimentBackends := []repository.SentimentSourceRepository{}
	if cfg.SentimentMirrorUrl != "" {
		sentimentBackends = append(sentimentBackends, repository.NewSentimentMirrorRepository(cfg.SentimentMirrorUrl, httpClient))
	}
	sentimentBackends = append(sentimentBackends, repository.NewAlternativeMeRepository(
		alternativeme.NewClient(cfg.AlternativeMeUrl, httpClient),
	))

	priceBackends := []repository.PriceSourceRepository{}
	if cfg.PriceMirrorUrl != "" {
		priceBackends = append(priceBackends, repository.NewPriceMirrorRepository(cfg.PriceMirrorUrl, httpClient))
	}
	priceBackends = append(priceBackends,
		repository.NewYahooRepository(cfg.YahooSymbol, cfg.HttpTimeout),
		repository.NewCoingeckoRepository(coingecko.NewClient(cfg.CoingeckoUrl, httpClient)),
		repository.NewBinanceRepository(binance.NewClient(cfg.BinanceUrl, httpClient), cfg.BinanceSymbol),
	)
	if cfg.Alpaca.Enabled() {
		priceBackends = append(priceBackends, repository.NewAlpacaRepository(
			cfg.Alpaca.ApiKey,
			cfg.Alpaca.ApiSecret,
			cfg.Alpaca.Endpoint,
			cfg.AlpacaSymbol,
		))
	}

	sentimentService := l1_service.NewSentimentService(cache, sentimentBackends, cfg.CacheTTL, retry, recorder)
	priceService := l1_service.NewPriceService(cache, priceBackends, cfg.CacheCoverageTolerance, retry, recorder)

	var dbConn *sql.DB
	var runRepository repository.BacktestRunRepository
	var tradeRepository repository.BacktestTradeRepository
	if cfg.Db.Enabled() {
		var err error
		dbConn, err = sql.Open("postgres", cfg.Db.ToConnectionStr())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to db: %w", err)
		}
		dbConn.SetConnMaxIdleTime(5 * time.Minute)
		runRepository = repository.NewBacktestRunRepository(dbConn)
		tradeRepository = repository.NewBacktestTradeRepository(dbConn)
	} else {
		log.Info("no db configured, run history disabled")
	}

	backtestApp := app.NewBacktestApp(
		sentimentService,
		priceService,
		runRepository,
		tradeRepository,
		dbConn,
		recorder,
	)
	sensitivityApp := app.NewSensitivityApp(backtestApp)

	apiHandler := &api.ApiHandler{
		BacktestApp:    backtestApp,
		SensitivityApp: sensitivityApp,
		Metrics:        recorder,
		Gatherer:       gatherer,
		Logger:         log,
		Sensitivity:    cfg.Sensitivity,
	}

	return &Dependencies{
		Config:           cfg,
		Db:               dbConn,
		Metrics:          recorder,
		SentimentService: sentimentService,
		PriceService:     priceService,
		BacktestApp:      backtestApp,
		SensitivityApp:   sensitivityApp,
		ApiHandler:       apiHandler,
	}, nil
}
