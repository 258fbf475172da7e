package domain

// Metrics compares the strategy against buy-and-hold over the same window.
// an all-zero value means there was nothing to measure
type Metrics struct {
	StrategyReturn      float64 `json:"strategyReturn"`
	StrategyCAGR        float64 `json:"strategyCAGR"`
	StrategyMaxDrawdown float64 `json:"strategyMaxDrawdown"`
	StrategyVolatility  float64 `json:"strategyVolatility"`
	StrategySharpe      float64 `json:"strategySharpe"`
	FinalEquity         float64 `json:"finalEquity"`

	BuyHoldReturn      float64 `json:"buyHoldReturn"`
	BuyHoldCAGR        float64 `json:"buyHoldCAGR"`
	BuyHoldMaxDrawdown float64 `json:"buyHoldMaxDrawdown"`

	TradeCount int     `json:"tradeCount"`
	RoundTrips int     `json:"roundTrips"`
	WinRate    float64 `json:"winRate"`
}
