package repository

import (
	"fmt"
	"strings"

	"fgibacktest/internal/domain"
	"fgibacktest/internal/util"

	"github.com/shopspring/decimal"
)

// csv shapes shared by the local cache and the remote mirrors. the mirrors
// may carry extra columns (high, low, volume), gocsv ignores them

type sentimentCsvRow struct {
	Date  string `csv:"date"`
	Value string `csv:"value"`
}

type priceCsvRow struct {
	Date  string `csv:"date"`
	Open  string `csv:"open"`
	Close string `csv:"close"`
}

func sentimentFromRows(rows []*sentimentCsvRow) ([]domain.SentimentPoint, int) {
	out := []domain.SentimentPoint{}
	skipped := 0
	for _, r := range rows {
		if r == nil {
			skipped++
			continue
		}
		date, err := util.ParseDate(strings.TrimSpace(r.Date))
		if err != nil {
			skipped++
			continue
		}
		value, err := decimal.NewFromString(strings.TrimSpace(r.Value))
		if err != nil {
			skipped++
			continue
		}
		out = append(out, domain.SentimentPoint{
			Date:  date,
			Value: value,
		})
	}
	return out, skipped
}

func priceFromRows(rows []*priceCsvRow) ([]domain.PricePoint, int) {
	out := []domain.PricePoint{}
	skipped := 0
	for _, r := range rows {
		if r == nil {
			skipped++
			continue
		}
		p, err := priceFromRow(*r)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, *p)
	}
	return out, skipped
}

func priceFromRow(r priceCsvRow) (*domain.PricePoint, error) {
	date, err := util.ParseDate(strings.TrimSpace(r.Date))
	if err != nil {
		return nil, err
	}
	closePrice, err := decimal.NewFromString(strings.TrimSpace(r.Close))
	if err != nil {
		return nil, fmt.Errorf("invalid close %q: %w", r.Close, err)
	}
	open := decimal.NullDecimal{}
	if s := strings.TrimSpace(r.Open); s != "" {
		o, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid open %q: %w", r.Open, err)
		}
		open = decimal.NewNullDecimal(o)
	}
	return &domain.PricePoint{
		Date:  date,
		Open:  open,
		Close: closePrice,
	}, nil
}

func sentimentToRows(points []domain.SentimentPoint) []*sentimentCsvRow {
	out := make([]*sentimentCsvRow, 0, len(points))
	for _, p := range points {
		out = append(out, &sentimentCsvRow{
			Date:  util.FormatDate(p.Date),
			Value: p.Value.String(),
		})
	}
	return out
}

func priceToRows(points []domain.PricePoint) []*priceCsvRow {
	out := make([]*priceCsvRow, 0, len(points))
	for _, p := range points {
		row := &priceCsvRow{
			Date:  util.FormatDate(p.Date),
			Close: p.Close.String(),
		}
		if p.Open.Valid {
			row.Open = p.Open.Decimal.String()
		}
		out = append(out, row)
	}
	return out
}
