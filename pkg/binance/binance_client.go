package binance

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

const (
	DefaultBaseUrl = "https://api.binance.com"
	// PageLimit is the largest page /api/v3/klines will return
	PageLimit = 1000
)

type Client struct {
	baseUrl  string
	http     *httpclient.Client
	pageSize int
}

func NewClient(baseUrl string, http *httpclient.Client) *Client {
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	return &Client{
		baseUrl:  strings.TrimRight(baseUrl, "/"),
		http:     http,
		pageSize: PageLimit,
	}
}

// WithPageSize is for tests that want to exercise paging with a small
// fixture
func (c *Client) WithPageSize(n int) *Client {
	if n > 0 && n <= PageLimit {
		c.pageSize = n
	}
	return c
}

type Kline struct {
	OpenTime time.Time
	Open     decimal.Decimal
	High     decimal.Decimal
	Low      decimal.Decimal
	Close    decimal.Decimal
	Volume   decimal.Decimal
}

// GetDailyKlines walks [start, end] page by page. each page starts one day
// after the last candle seen; a short page means there is nothing left
func (c Client) GetDailyKlines(ctx context.Context, symbol string, start, end time.Time) ([]Kline, int, error) {
	out := []Kline{}
	skipped := 0
	cursor := start
	for !cursor.After(end) {
		page, err := c.getPage(ctx, symbol, cursor, end)
		if err != nil {
			return nil, 0, err
		}

		var last *Kline
		for _, row := range page {
			k, err := parseKline(row)
			if err != nil {
				skipped++
				continue
			}
			out = append(out, *k)
			last = k
		}
		if len(page) < c.pageSize || last == nil {
			break
		}
		next := last.OpenTime.AddDate(0, 0, 1)
		if !next.After(cursor) {
			break
		}
		cursor = next
	}
	return out, skipped, nil
}

func (c Client) getPage(ctx context.Context, symbol string, start, end time.Time) ([][]json.RawMessage, error) {
	params := url.Values{
		"symbol":    {symbol},
		"interval":  {"1d"},
		"startTime": {strconv.FormatInt(start.UnixMilli(), 10)},
		"endTime":   {strconv.FormatInt(end.UnixMilli(), 10)},
		"limit":     {strconv.Itoa(c.pageSize)},
	}
	page := [][]json.RawMessage{}
	if err := c.http.GetJSON(ctx, c.baseUrl+"/api/v3/klines", params, &page); err != nil {
		return nil, fmt.Errorf("failed to get %s klines from %s: %w", symbol, start.Format(time.DateOnly), err)
	}
	return page, nil
}

// rows look like [openTimeMs, "open", "high", "low", "close", "volume", closeTimeMs, ...]
func parseKline(row []json.RawMessage) (*Kline, error) {
	if len(row) < 6 {
		return nil, fmt.Errorf("expected at least 6 fields, got %d", len(row))
	}
	var openMs int64
	if err := json.Unmarshal(row[0], &openMs); err != nil {
		return nil, fmt.Errorf("invalid open time: %w", err)
	}
	fields := make([]decimal.Decimal, 5)
	for i := 1; i <= 5; i++ {
		var s string
		if err := json.Unmarshal(row[i], &s); err != nil {
			return nil, fmt.Errorf("invalid field %d: %w", i, err)
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid field %d: %w", i, err)
		}
		fields[i-1] = d
	}
	return &Kline{
		OpenTime: time.UnixMilli(openMs).UTC(),
		Open:     fields[0],
		High:     fields[1],
		Low:      fields[2],
		Close:    fields[3],
		Volume:   fields[4],
	}, nil
}
