package integration_tests

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"time"
)

// upstream serves both csv mirrors and counts how often each was hit
type upstream struct {
	server        *httptest.Server
	sentimentHits atomic.Int32
	priceHits     atomic.Int32
}

func newUpstream(start time.Time, sentiment []int, closes []int) *upstream {
	return newUpstreamWithLag(start, 0, sentiment, closes)
}

// newUpstreamWithLag starts the sentiment history lag days after the prices
func newUpstreamWithLag(start time.Time, lag int, sentiment []int, closes []int) *upstream {
	u := &upstream{}

	sentimentCsv := strings.Builder{}
	sentimentCsv.WriteString("date,value,classification\n")
	for i, v := range sentiment {
		fmt.Fprintf(&sentimentCsv, "%s,%d,x\n", start.AddDate(0, 0, lag+i).Format(time.DateOnly), v)
	}

	// open is the previous close, the first day has none
	priceCsv := strings.Builder{}
	priceCsv.WriteString("date,open,high,low,close\n")
	for i, c := range closes {
		open := ""
		if i > 0 {
			open = fmt.Sprint(closes[i-1])
		}
		fmt.Fprintf(&priceCsv, "%s,%s,%d,%d,%d\n", start.AddDate(0, 0, i).Format(time.DateOnly), open, c, c, c)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/sentiment.csv", func(w http.ResponseWriter, r *http.Request) {
		u.sentimentHits.Add(1)
		fmt.Fprint(w, sentimentCsv.String())
	})
	mux.HandleFunc("/price.csv", func(w http.ResponseWriter, r *http.Request) {
		u.priceHits.Add(1)
		fmt.Fprint(w, priceCsv.String())
	})
	u.server = httptest.NewServer(mux)
	return u
}

func (u *upstream) Close() {
	u.server.Close()
}
