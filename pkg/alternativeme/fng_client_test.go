package alternativeme

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fgibacktest/pkg/httpclient"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestClient_GetHistory(t *testing.T) {
	t.Run("parses both timestamp shapes and skips bad records", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/fng/", r.URL.Path)
			require.Equal(t, "0", r.URL.Query().Get("limit"))
			fmt.Fprint(w, `{
				"name": "Fear and Greed Index",
				"data": [
					{"value": "25", "value_classification": "Extreme Fear", "timestamp": "02-03-2024"},
					{"value": "71", "value_classification": "Greed", "timestamp": "1706832000"},
					{"value": "", "timestamp": "02-01-2024"},
					{"value": "50", "timestamp": "yesterday"}
				],
				"metadata": {"error": null}
			}`)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, httpclient.NewClient())
		history, err := client.GetHistory(context.Background())
		require.NoError(t, err)

		expected := &History{
			Observations: []Observation{
				{
					Date:           time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
					Value:          decimal.NewFromInt(25),
					Classification: "Extreme Fear",
				},
				{
					Date:           time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
					Value:          decimal.NewFromInt(71),
					Classification: "Greed",
				},
			},
			Skipped: 2,
		}
		require.Equal(t, "", cmp.Diff(expected, history))
	})

	t.Run("api error is returned", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"data": [], "metadata": {"error": "limit invalid"}}`)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, httpclient.NewClient()).GetHistory(context.Background())
		require.ErrorContains(t, err, "limit invalid")
	})
}
