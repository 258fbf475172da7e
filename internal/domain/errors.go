package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoAlignedRows means both sources overlapped the window but no row
// survived alignment, which points at bad upstream data
var ErrNoAlignedRows = errors.New("no rows survived alignment")

type EmptySourceError struct {
	Kind SeriesKind
}

func (e *EmptySourceError) Error() string {
	return fmt.Sprintf("no %s data available from any source", e.Kind)
}

// NoOverlapError carries each source's coverage so callers can suggest a
// window that works
type NoOverlapError struct {
	Requested DateRange
	Sentiment DateRange
	Price     DateRange
}

func (e *NoOverlapError) Error() string {
	return fmt.Sprintf(
		"requested window %s does not overlap available data (sentiment %s, price %s)",
		e.Requested, e.Sentiment, e.Price,
	)
}

// SuggestedWindow is the intersection of both coverages, if there is one
func (e *NoOverlapError) SuggestedWindow() (DateRange, bool) {
	if !e.Sentiment.Overlaps(e.Price) {
		return DateRange{}, false
	}
	out := e.Price
	if e.Sentiment.Start.After(out.Start) {
		out.Start = e.Sentiment.Start
	}
	return out, true
}

type InvalidParamsError struct {
	Field  string
	Reason string
}

func (e *InvalidParamsError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type DataIntegrityError struct {
	Date   time.Time
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("bad input row on %s: %s", e.Date.Format(time.DateOnly), e.Reason)
}

func IsInvalidParams(err error) bool {
	var target *InvalidParamsError
	return errors.As(err, &target)
}

// IsNoData covers every "nothing to simulate" outcome above the I/O layer
func IsNoData(err error) bool {
	var empty *EmptySourceError
	var noOverlap *NoOverlapError
	return errors.As(err, &empty) || errors.As(err, &noOverlap) || errors.Is(err, ErrNoAlignedRows)
}
