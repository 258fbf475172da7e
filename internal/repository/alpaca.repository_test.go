package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fgibacktest/internal/util"

	"github.com/stretchr/testify/require"
)

func TestAlpacaRepository_FetchPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "BTC/USD", r.URL.Query().Get("symbols"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"bars": {
				"BTC/USD": [
					{"t": "2024-01-01T00:00:00Z", "o": 42000.5, "h": 43000, "l": 41000, "c": 42500.25, "v": 10, "n": 5, "vw": 42300},
					{"t": "2024-01-02T00:00:00Z", "o": 42500.25, "h": 45000, "l": 42000, "c": 44900, "v": 12, "n": 7, "vw": 44000}
				]
			},
			"next_page_token": null
		}`)
	}))
	defer srv.Close()

	h := NewAlpacaRepository("key", "secret", srv.URL, "BTC/USD")
	points, err := h.FetchPrices(context.Background(), util.NewDate(2024, 1, 1), util.NewDate(2024, 1, 2))
	require.NoError(t, err)
	require.Len(t, points, 2)
	require.Equal(t, util.NewDate(2024, 1, 2), points[1].Date.Truncate(24*time.Hour))
	require.Equal(t, "42000.5", points[0].Open.Decimal.String())
	require.Equal(t, "44900", points[1].Close.String())
}
