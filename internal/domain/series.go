package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type SeriesKind string

const (
	SeriesKind_Sentiment SeriesKind = "sentiment"
	SeriesKind_Price     SeriesKind = "price"
)

var (
	MinSentiment = decimal.Zero
	MaxSentiment = decimal.NewFromInt(100)
)

type SentimentPoint struct {
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// PricePoint is one daily bar. Open is null when the provider only
// publishes a single tick per day
type PricePoint struct {
	Date  time.Time           `json:"date"`
	Open  decimal.NullDecimal `json:"open"`
	Close decimal.Decimal     `json:"close"`
}

// SentimentSeries is what a sentiment source hands back. an empty Points
// slice is the failure shape, Source names the backend that served it
type SentimentSeries struct {
	Points []SentimentPoint
	Source string
}

func (s SentimentSeries) Empty() bool {
	return len(s.Points) == 0
}

func (s SentimentSeries) Coverage() DateRange {
	if len(s.Points) == 0 {
		return DateRange{}
	}
	return DateRange{Start: s.Points[0].Date, End: s.Points[len(s.Points)-1].Date}
}

type PriceSeries struct {
	Points []PricePoint
	Source string
}

func (s PriceSeries) Empty() bool {
	return len(s.Points) == 0
}

func (s PriceSeries) Coverage() DateRange {
	if len(s.Points) == 0 {
		return DateRange{}
	}
	return DateRange{Start: s.Points[0].Date, End: s.Points[len(s.Points)-1].Date}
}

// DailyPoint is one row of the aligned table
type DailyPoint struct {
	Date      time.Time           `json:"date"`
	Open      decimal.NullDecimal `json:"open"`
	Close     decimal.Decimal     `json:"close"`
	Sentiment decimal.NullDecimal `json:"sentiment"`
}

// AlignedSeries is strictly increasing by date with a close on every row
type AlignedSeries []DailyPoint

func (a AlignedSeries) Prices() []PricePoint {
	out := make([]PricePoint, 0, len(a))
	for _, p := range a {
		out = append(out, PricePoint{
			Date:  p.Date,
			Open:  p.Open,
			Close: p.Close,
		})
	}
	return out
}

func (a AlignedSeries) Coverage() DateRange {
	if len(a) == 0 {
		return DateRange{}
	}
	return DateRange{Start: a[0].Date, End: a[len(a)-1].Date}
}

// DateRange is inclusive on both ends. the zero value means "no data"
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

func (r DateRange) Overlaps(other DateRange) bool {
	if r.IsZero() || other.IsZero() {
		return false
	}
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func (r DateRange) String() string {
	if r.IsZero() {
		return "[none]"
	}
	return fmt.Sprintf("[%s, %s]", r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))
}

// FillPolicy decides what happens to a price row that has no sentiment at
// or before its date
type FillPolicy string

const (
	FillPolicy_Drop         FillPolicy = "drop"
	FillPolicy_KeepUnscored FillPolicy = "keep_unscored"
)

const DefaultFillPolicy = FillPolicy_Drop

func NewFillPolicy(s string) (FillPolicy, error) {
	switch FillPolicy(s) {
	case "":
		return DefaultFillPolicy, nil
	case FillPolicy_Drop, FillPolicy_KeepUnscored:
		return FillPolicy(s), nil
	}
	return "", fmt.Errorf("unknown fill policy %q", s)
}

type AlignmentStatus string

const (
	AlignmentStatus_OK         AlignmentStatus = "ok"
	AlignmentStatus_EmptyInput AlignmentStatus = "empty_input"
	AlignmentStatus_NoOverlap  AlignmentStatus = "no_overlap"
	AlignmentStatus_NoRows     AlignmentStatus = "no_rows"
)

type AlignmentReport struct {
	Status            AlignmentStatus `json:"status"`
	Requested         DateRange       `json:"requested"`
	SentimentCoverage DateRange       `json:"sentimentCoverage"`
	PriceCoverage     DateRange       `json:"priceCoverage"`
	DroppedRows       int             `json:"droppedRows"`
	UnscoredRows      int             `json:"unscoredRows"`
}

// Err turns a non-ok status into the matching typed error
func (r AlignmentReport) Err() error {
	switch r.Status {
	case AlignmentStatus_OK:
		return nil
	case AlignmentStatus_EmptyInput:
		if r.SentimentCoverage.IsZero() {
			return &EmptySourceError{Kind: SeriesKind_Sentiment}
		}
		return &EmptySourceError{Kind: SeriesKind_Price}
	case AlignmentStatus_NoOverlap:
		return &NoOverlapError{
			Requested: r.Requested,
			Sentiment: r.SentimentCoverage,
			Price:     r.PriceCoverage,
		}
	}
	return fmt.Errorf("%w: requested %s, %d rows dropped", ErrNoAlignedRows, r.Requested, r.DroppedRows)
}
