package util

import (
	"time"
)

const layout = "2006-01-02"

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// DateOnly drops the time of day and any zone offset. the calendar day
// is taken as it reads in the timestamp's own location, so
// 2021-03-04T23:30:00-05:00 becomes 2021-03-04
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func DateLte(t1, t2 time.Time) bool {
	return t1.Before(t2) || t1.Format(layout) == t2.Format(layout)
}

func DateGte(t1, t2 time.Time) bool {
	return t1.After(t2) || t1.Format(layout) == t2.Format(layout)
}

func SameDate(t1, t2 time.Time) bool {
	return t1.Format(layout) == t2.Format(layout)
}

var timestampLayouts = []string{
	time.RFC3339,
	time.DateTime,
}

// ParseDate reads a calendar date. full timestamps are accepted and
// truncated to their date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(layout, s)
	if err == nil {
		return t, nil
	}
	for _, l := range timestampLayouts {
		if ts, tsErr := time.Parse(l, s); tsErr == nil {
			return DateOnly(ts), nil
		}
	}
	return time.Time{}, err
}

func FormatDate(t time.Time) string {
	return t.Format(layout)
}

// DaysBetween counts calendar days from start to end
func DaysBetween(start, end time.Time) int {
	return int(DateOnly(end).Sub(DateOnly(start)).Hours() / 24)
}
