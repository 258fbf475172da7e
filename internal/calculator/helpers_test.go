package calculator

import (
	"math/rand"
	"time"

	"fgibacktest/internal/domain"
	"fgibacktest/internal/util"

	"github.com/shopspring/decimal"
)

var day0 = util.NewDate(2024, 1, 1)

func d(i int) time.Time {
	return day0.AddDate(0, 0, i)
}

// series builds an aligned series starting on day0. open is the previous
// close so next-open fills are easy to reason about
func series(closes []int64, sentiment []int64) domain.AlignedSeries {
	out := domain.AlignedSeries{}
	for i := range closes {
		p := domain.DailyPoint{
			Date:      d(i),
			Close:     decimal.NewFromInt(closes[i]),
			Sentiment: decimal.NewNullDecimal(decimal.NewFromInt(sentiment[i])),
		}
		if i > 0 {
			p.Open = decimal.NewNullDecimal(decimal.NewFromInt(closes[i-1]))
		}
		out = append(out, p)
	}
	return out
}

func randomSeries(r *rand.Rand, n int) domain.AlignedSeries {
	out := domain.AlignedSeries{}
	price := 100.0
	for i := 0; i < n; i++ {
		open := price
		price = price * (1 + (r.Float64()-0.5)*0.1)
		out = append(out, domain.DailyPoint{
			Date:      d(i),
			Open:      decimal.NewNullDecimal(decimal.NewFromFloat(open).Round(2)),
			Close:     decimal.NewFromFloat(price).Round(2),
			Sentiment: decimal.NewNullDecimal(decimal.NewFromInt(int64(r.Intn(101)))),
		})
	}
	return out
}

func dec(i int64) decimal.Decimal {
	return decimal.NewFromInt(i)
}
