package l1_service

import (
	"sort"
	"time"

	"fgibacktest/internal/domain"
	"fgibacktest/internal/util"
)

// NormalizeSentiment is applied to every backend's output: dates truncated
// to the calendar day, values clipped into [0, 100], one row per date (the
// last one seen wins), ascending
func NormalizeSentiment(points []domain.SentimentPoint) []domain.SentimentPoint {
	byDate := map[time.Time]domain.SentimentPoint{}
	for _, p := range points {
		date := util.DateOnly(p.Date)
		value := p.Value
		if value.LessThan(domain.MinSentiment) {
			value = domain.MinSentiment
		}
		if value.GreaterThan(domain.MaxSentiment) {
			value = domain.MaxSentiment
		}
		byDate[date] = domain.SentimentPoint{
			Date:  date,
			Value: value,
		}
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

// NormalizePrices mirrors NormalizeSentiment for price rows. non-positive
// closes are kept here and counted by the aligner
func NormalizePrices(points []domain.PricePoint) []domain.PricePoint {
	byDate := map[time.Time]domain.PricePoint{}
	for _, p := range points {
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

func slicePrices(points []domain.PricePoint, start, end time.Time) []domain.PricePoint {
	out := []domain.PricePoint{}
	for _, p := range points {
		if p.Date.Before(start) || p.Date.After(end) {
			continue
		}
		out = append(out, p)
	}
	return out
}
