package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fgibacktest/pkg/httpclient"

	"github.com/shopspring/decimal"
)

const DefaultBaseUrl = "https://api.coingecko.com"

type Client struct {
	baseUrl string
	http    *httpclient.Client
}

func NewClient(baseUrl string, http *httpclient.Client) *Client {
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	return &Client{
		baseUrl: strings.TrimRight(baseUrl, "/"),
		http:    http,
	}
}

type Tick struct {
	Time  time.Time
	Price decimal.Decimal
}

type marketChartResponse struct {
	Prices [][]json.Number `json:"prices"`
}

// GetMarketChartRange returns (timestamp, price) ticks for coinID between
// start and end. ranges over 90 days come back daily, shorter ones hourly
func (c Client) GetMarketChartRange(ctx context.Context, coinID, vsCurrency string, start, end time.Time) ([]Tick, int, error) {
	params := url.Values{
		"vs_currency": {vsCurrency},
		"from":        {strconv.FormatInt(start.Unix(), 10)},
		"to":          {strconv.FormatInt(end.Unix(), 10)},
	}
	endpoint := fmt.Sprintf("%s/api/v3/coins/%s/market_chart/range", c.baseUrl, url.PathEscape(coinID))

	response := marketChartResponse{}
	if err := c.http.GetJSON(ctx, endpoint, params, &response); err != nil {
		return nil, 0, fmt.Errorf("failed to get %s market chart: %w", coinID, err)
	}

	out := []Tick{}
	skipped := 0
	for _, row := range response.Prices {
		tick, err := parseTick(row)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, *tick)
	}
	return out, skipped, nil
}

func parseTick(row []json.Number) (*Tick, error) {
	if len(row) < 2 {
		return nil, fmt.Errorf("expected [ts, price], got %d fields", len(row))
	}
	ms, err := row[0].Int64()
	if err != nil {
		f, ferr := row[0].Float64()
		if ferr != nil {
			return nil, fmt.Errorf("invalid timestamp %s: %w", row[0], err)
		}
		ms = int64(f)
	}
	price, err := decimal.NewFromString(row[1].String())
	if err != nil {
		return nil, fmt.Errorf("invalid price %s: %w", row[1], err)
	}
	return &Tick{
		Time:  time.UnixMilli(ms).UTC(),
		Price: price,
	}, nil
}
