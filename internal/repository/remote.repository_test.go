package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"fgibacktest/internal/domain"
	"fgibacktest/internal/util"
	"fgibacktest/pkg/alternativeme"
	"fgibacktest/pkg/binance"
	"fgibacktest/pkg/coingecko"
	"fgibacktest/pkg/httpclient"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCoingeckoRepository_FetchPrices(t *testing.T) {
	start := util.NewDate(2024, 1, 1)
	end := util.NewDate(2024, 1, 2)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the last day is included by asking for one more
		to, err := strconv.ParseInt(r.URL.Query().Get("to"), 10, 64)
		require.NoError(t, err)
		require.Equal(t, end.AddDate(0, 0, 1).Unix(), to)

		fmt.Fprintf(w, `{"prices":[[%d,42000.5],[%d,43000]]}`, start.UnixMilli(), end.UnixMilli())
	}))
	defer srv.Close()

	repo := NewCoingeckoRepository(coingecko.NewClient(srv.URL, httpclient.NewClient()))
	require.Equal(t, "coingecko", repo.Name())

	points, err := repo.FetchPrices(context.Background(), start, end)
	require.NoError(t, err)
	require.Equal(t, "", cmp.Diff([]domain.PricePoint{
		{Date: start, Open: decimal.NewNullDecimal(decimal.RequireFromString("42000.5")), Close: decimal.RequireFromString("42000.5")},
		{Date: end, Open: decimal.NewNullDecimal(decimal.NewFromInt(43000)), Close: decimal.NewFromInt(43000)},
	}, points))
}

func TestBinanceRepository_FetchPrices(t *testing.T) {
	day := util.NewDate(2024, 1, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "ETHUSDT", r.URL.Query().Get("symbol"))
		fmt.Fprintf(w, `[[%d,"100.0","110.0","90.0","105.5","12.5",%d,"0",1,"0","0","0"]]`,
			day.UnixMilli(), day.AddDate(0, 0, 1).UnixMilli()-1)
	}))
	defer srv.Close()

	repo := NewBinanceRepository(binance.NewClient(srv.URL, httpclient.NewClient()), "ETHUSDT")
	points, err := repo.FetchPrices(context.Background(), day, day)
	require.NoError(t, err)
	require.Equal(t, "", cmp.Diff([]domain.PricePoint{{
		Date:  day,
		Open:  decimal.NewNullDecimal(decimal.NewFromInt(100)),
		Close: decimal.RequireFromString("105.5"),
	}}, points))
}

func TestAlternativeMeRepository_FetchSentiment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"name":"Fear and Greed Index","data":[
			{"value":"25","value_classification":"Extreme Fear","timestamp":"%d"},
			{"value":"","value_classification":"Fear","timestamp":"01-02-2024"},
			{"value":"61","value_classification":"Greed","timestamp":"01-03-2024"}
		],"metadata":{"error":null}}`, util.NewDate(2024, 1, 1).Unix())
	}))
	defer srv.Close()

	repo := NewAlternativeMeRepository(alternativeme.NewClient(srv.URL, httpclient.NewClient()))
	points, err := repo.FetchSentiment(context.Background())
	require.NoError(t, err)
	require.Equal(t, "", cmp.Diff([]domain.SentimentPoint{
		{Date: util.NewDate(2024, 1, 1), Value: decimal.NewFromInt(25)},
		{Date: util.NewDate(2024, 1, 3), Value: decimal.NewFromInt(61)},
	}, points))
}
