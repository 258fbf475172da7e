package util

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port                   int           `yaml:"port" default:"3009" validate:"gt=0,lt=65536"`
	CacheDir               string        `yaml:"cacheDir" default:".fgi-cache" validate:"required"`
	CacheTTL               time.Duration `yaml:"cacheTtl" default:"12h" validate:"gte=0"`
	CacheCoverageTolerance time.Duration `yaml:"cacheCoverageTolerance" default:"48h" validate:"gte=0"`
	HttpTimeout            time.Duration `yaml:"httpTimeout" default:"20s" validate:"gt=0"`
	Retry                  RetryConfig   `yaml:"retry"`

	// mirrors are csv datasets (date,value / date,open,high,low,close).
	// left empty they are skipped
	SentimentMirrorUrl string `yaml:"sentimentMirrorUrl" validate:"omitempty,url"`
	PriceMirrorUrl     string `yaml:"priceMirrorUrl" validate:"omitempty,url"`
	AlternativeMeUrl   string `yaml:"alternativeMeUrl" default:"https://api.alternative.me" validate:"required,url"`
	CoingeckoUrl       string `yaml:"coingeckoUrl" default:"https://api.coingecko.com" validate:"required,url"`
	BinanceUrl         string `yaml:"binanceUrl" default:"https://api.binance.com" validate:"required,url"`
	YahooSymbol        string `yaml:"yahooSymbol" default:"BTC-USD" validate:"required"`
	BinanceSymbol      string `yaml:"binanceSymbol" default:"BTCUSDT" validate:"required"`
	AlpacaSymbol       string `yaml:"alpacaSymbol" default:"BTC/USD"`

	Alpaca      AlpacaSecrets     `yaml:"alpaca"`
	Db          DbSecrets         `yaml:"db"`
	Sensitivity SensitivityConfig `yaml:"sensitivity"`
}

type RetryConfig struct {
	MaxAttempts int           `yaml:"maxAttempts" default:"3" validate:"gte=2"`
	BaseDelay   time.Duration `yaml:"baseDelay" default:"2s" validate:"gte=0"`
}

type AlpacaSecrets struct {
	ApiKey    string `yaml:"apiKey"`
	ApiSecret string `yaml:"apiSecret"`
	Endpoint  string `yaml:"endpoint"`
}

func (a AlpacaSecrets) Enabled() bool {
	return a.ApiKey != "" && a.ApiSecret != ""
}

type DbSecrets struct {
	Host      string `yaml:"host"`
	User      string `yaml:"user"`
	Port      string `yaml:"port" default:"5432"`
	Password  string `yaml:"password"`
	Database  string `yaml:"database" default:"postgres"`
	EnableSsl bool   `yaml:"enableSsl"`
}

func (t DbSecrets) Enabled() bool {
	return t.Host != ""
}

func (t DbSecrets) ToConnectionStr() string {
	x := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		t.Host, t.Port, t.User, t.Password, t.Database)
	if !t.EnableSsl {
		x += " sslmode=disable"
	}
	return x
}

// SensitivityConfig bounds the threshold grid explored by /optimize
type SensitivityConfig struct {
	BuyMin  int `yaml:"buyMin" default:"10" validate:"gte=0,lt=100"`
	BuyMax  int `yaml:"buyMax" default:"45" validate:"gtefield=BuyMin,lt=100"`
	SellMin int `yaml:"sellMin" default:"55" validate:"gt=0,lte=100"`
	SellMax int `yaml:"sellMax" default:"90" validate:"gtefield=SellMin,lte=100"`
	Step    int `yaml:"step" default:"5" validate:"gt=0"`
	Top     int `yaml:"top" default:"10" validate:"gt=0"`
	Workers int `yaml:"workers" default:"4" validate:"gt=0"`
}

func configFile() string {
	if path := os.Getenv("FGI_CONFIG"); path != "" {
		return path
	}
	switch strings.ToLower(os.Getenv("FGI_ENV")) {
	case "dev":
		return "config-dev.json"
	case "test":
		return "config-test.json"
	}
	return "config.json"
}

// LoadConfig reads the config file picked by FGI_CONFIG / FGI_ENV. the file
// may be json or yaml. a missing file means all defaults
func LoadConfig() (*Config, error) {
	return LoadConfigFromFile(configFile())
}

func LoadConfigFromFile(path string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to set config defaults: %w", err)
	}

	f, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(f, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

var validate = validator.New()

func (c Config) Validate() error {
	return validate.Struct(c)
}

func (c Config) RetryPolicy(retryable func(error) bool) RetryPolicy {
	return NewRetryPolicy(c.Retry.MaxAttempts, c.Retry.BaseDelay, retryable)
}
