package returns

import (
	"errors"
	"testing"
	"time"

	"github.com/benchfolio/backend/internal/apperrors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPriceSeries_OnOrBefore(t *testing.T) {
	// Mon 2024-01-01 .. Fri 2024-01-05, no weekend rows
	series := NewPriceSeries([]PricePoint{
		{Date: date(2024, 1, 1), Price: 100},
		{Date: date(2024, 1, 2), Price: 101},
		{Date: date(2024, 1, 3), Price: 102},
		{Date: date(2024, 1, 4), Price: 103},
		{Date: date(2024, 1, 5), Price: 104},
	})

	t.Run("returns exact price for a trading day", func(t *testing.T) {
		price, err := series.OnOrBefore(date(2024, 1, 3))
		if err != nil {
			t.Fatalf("OnOrBefore() returned unexpected error: %v", err)
		}
		if price != 102 {
			t.Errorf("Expected price 102, got %v", price)
		}
	})

	t.Run("falls back to previous close on non-trading days", func(t *testing.T) {
		// Saturday after the last row
		price, err := series.OnOrBefore(date(2024, 1, 6))
		if err != nil {
			t.Fatalf("OnOrBefore() returned unexpected error: %v", err)
		}
		if price != 104 {
			t.Errorf("Expected Friday close 104, got %v", price)
		}
	})

	t.Run("ignores time-of-day components", func(t *testing.T) {
		price, err := series.OnOrBefore(time.Date(2024, 1, 3, 15, 30, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("OnOrBefore() returned unexpected error: %v", err)
		}
		if price != 102 {
			t.Errorf("Expected price 102 for intraday timestamp, got %v", price)
		}
	})

	t.Run("fails when date precedes all history", func(t *testing.T) {
		_, err := series.OnOrBefore(date(2023, 12, 31))
		if !errors.Is(err, apperrors.ErrNoPriorPrice) {
			t.Errorf("Expected ErrNoPriorPrice, got %v", err)
		}
	})
}

func TestNewPriceSeries_SortsUnorderedInput(t *testing.T) {
	series := NewPriceSeries([]PricePoint{
		{Date: date(2024, 1, 5), Price: 104},
		{Date: date(2024, 1, 1), Price: 100},
		{Date: date(2024, 1, 3), Price: 102},
	})

	price, err := series.OnOrBefore(date(2024, 1, 4))
	if err != nil {
		t.Fatalf("OnOrBefore() returned unexpected error: %v", err)
	}
	if price != 102 {
		t.Errorf("Expected price 102 from sorted series, got %v", price)
	}
}
