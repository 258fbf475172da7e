package calculator

import (
	"sort"
	"time"

	"fgibacktest/internal/domain"
	"fgibacktest/internal/util"

	"github.com/shopspring/decimal"
)

// Align puts sentiment onto the price calendar for [start, end]. price
// dates decide which days exist; each day takes the latest sentiment
// published on or before it. failures come back in the report, not as an
// error, so an empty result is always the same well-formed shape
func Align(
	sentiment domain.SentimentSeries,
	price domain.PriceSeries,
	start, end time.Time,
	policy domain.FillPolicy,
) (domain.AlignedSeries, domain.AlignmentReport) {
	if policy == "" {
		policy = domain.DefaultFillPolicy
	}
	sentPoints := sortedSentiment(sentiment.Points)
	pricePoints := sortedPrices(price.Points)

	requested := domain.DateRange{Start: util.DateOnly(start), End: util.DateOnly(end)}
	report := domain.AlignmentReport{
		Requested:         requested,
		SentimentCoverage: coverageOfSentiment(sentPoints),
		PriceCoverage:     coverageOfPrices(pricePoints),
	}
	out := domain.AlignedSeries{}

	if len(sentPoints) == 0 || len(pricePoints) == 0 {
		report.Status = domain.AlignmentStatus_EmptyInput
		return out, report
	}
	if !hasOverlap(requested, report.SentimentCoverage, report.PriceCoverage) {
		report.Status = domain.AlignmentStatus_NoOverlap
		return out, report
	}

	j := 0
	var latest *domain.SentimentPoint
	for _, p := range pricePoints {
		for j < len(sentPoints) && !sentPoints[j].Date.After(p.Date) {
			latest = &sentPoints[j]
			j++
		}
		if !requested.Contains(p.Date) {
			continue
		}
		if !p.Close.IsPositive() {
			report.DroppedRows++
			continue
		}

		row := domain.DailyPoint{
			Date:  p.Date,
			Open:  p.Open,
			Close: p.Close,
		}
		if row.Open.Valid && !row.Open.Decimal.IsPositive() {
			row.Open = decimal.NullDecimal{}
		}
		if latest != nil {
			row.Sentiment = decimal.NewNullDecimal(clipSentiment(latest.Value))
		} else if policy == domain.FillPolicy_KeepUnscored {
			report.UnscoredRows++
		} else {
			report.DroppedRows++
			continue
		}
		out = append(out, row)
	}

	if len(out) == 0 {
		report.Status = domain.AlignmentStatus_NoRows
		return out, report
	}
	report.Status = domain.AlignmentStatus_OK
	return out, report
}

// hasOverlap needs the window to touch both sources and some sentiment to
// exist on or before the last priced day in the window
func hasOverlap(requested, sentiment, price domain.DateRange) bool {
	if !requested.Overlaps(price) || !requested.Overlaps(sentiment) {
		return false
	}
	lastPriced := requested.End
	if price.End.Before(lastPriced) {
		lastPriced = price.End
	}
	return !sentiment.Start.After(lastPriced)
}

func clipSentiment(v decimal.Decimal) decimal.Decimal {
	if v.LessThan(domain.MinSentiment) {
		return domain.MinSentiment
	}
	if v.GreaterThan(domain.MaxSentiment) {
		return domain.MaxSentiment
	}
	return v
}

// sortedSentiment copies and orders the input by calendar day. on a
// repeated day the later row wins
func sortedSentiment(in []domain.SentimentPoint) []domain.SentimentPoint {
	byDate := map[time.Time]domain.SentimentPoint{}
	for _, p := range in {
		p.Date = util.DateOnly(p.Date)
		byDate[p.Date] = p
	}
	out := make([]domain.SentimentPoint, 0, len(byDate))
	for _, p := range byDate {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func sortedPrices(in []domain.PricePoint) []domain.PricePoint {
	byDate := map[time.Time]domain.PricePoint{}
	for _, p := range in {
		p.Date = util.DateOnly(p.Date)
		byDate[p.Date] = p
	}
	out := make([]domain.PricePoint, 0, len(byDate))
	for _, p := range byDate {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func coverageOfSentiment(points []domain.SentimentPoint) domain.DateRange {
	return domain.SentimentSeries{Points: points}.Coverage()
}

func coverageOfPrices(points []domain.PricePoint) domain.DateRange {
	return domain.PriceSeries{Points: points}.Coverage()
}
