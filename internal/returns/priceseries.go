package returns

import (
	"fmt"
	"sort"
	"time"

	"github.com/benchfolio/backend/internal/apperrors"
)

// PricePoint is one trading day's closing price.
type PricePoint struct {
	Date  time.Time
	Price float64
}

// PriceSeries is an immutable, date-ordered benchmark price history. It is
// built once per computation and is safe for concurrent reads.
type PriceSeries struct {
	points []PricePoint
}

// NewPriceSeries builds a series from the given points, sorted ascending by
// date. Dates are truncated to midnight UTC so lookups compare calendar days
// rather than timestamps.
func NewPriceSeries(points []PricePoint) *PriceSeries {
	sorted := make([]PricePoint, len(points))
	for i, p := range points {
		sorted[i] = PricePoint{Date: day(p.Date), Price: p.Price}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return &PriceSeries{points: sorted}
}

// Len returns the number of trading days in the series.
func (s *PriceSeries) Len() int {
	return len(s.points)
}

// OnOrBefore returns the closing price effective for the given calendar date.
// If the date is a trading day present in the series, its price is returned;
// otherwise the price of the nearest earlier trading day is used, since
// markets are closed on weekends and holidays and the previous close is the
// economically correct reference. Returns ErrNoPriorPrice when no date in the
// series is on or before the queried date.
func (s *PriceSeries) OnOrBefore(date time.Time) (float64, error) {
	target := day(date)

	// First index with a date strictly after the target.
	i := sort.Search(len(s.points), func(i int) bool {
		return s.points[i].Date.After(target)
	})
	if i == 0 {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrNoPriorPrice, target.Format("2006-01-02"))
	}
	return s.points[i-1].Price, nil
}

// day truncates a timestamp to midnight UTC.
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
