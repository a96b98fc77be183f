package returns

import (
	"errors"
	"reflect"
	"testing"

	"github.com/benchfolio/backend/internal/apperrors"
	"github.com/benchfolio/backend/internal/model"
)

// TestCompare_EndToEnd covers the canonical scenario: two buys of 1000 each,
// valuation of 2500 a year after the first buy. The portfolio made money, so
// every rate must be defined and the portfolio XIRR positive.
func TestCompare_EndToEnd(t *testing.T) {
	trades := []model.Trade{
		buy(date(2020, 1, 2), -1000),
		buy(date(2020, 7, 1), -1000),
	}
	valuation := model.Valuation{Date: date(2021, 1, 2), MarketValue: 2500}
	series := makeSeries(date(2020, 1, 1), date(2021, 1, 2), 100, 0.1)

	result, err := Compare(trades, valuation, series)
	if err != nil {
		t.Fatalf("Compare() returned unexpected error: %v", err)
	}

	if result.TotalInvested != 2000 {
		t.Errorf("TotalInvested = %v, want 2000", result.TotalInvested)
	}
	if len(result.CashFlows) != 2 {
		t.Errorf("Expected 2 cash flows, got %d", len(result.CashFlows))
	}

	if result.XIRRPortfolio == nil {
		t.Fatal("XIRRPortfolio is undefined, expected a rate")
	}
	if *result.XIRRPortfolio <= 0 {
		t.Errorf("XIRRPortfolio = %v, want positive rate for a profitable year", *result.XIRRPortfolio)
	}

	if result.XIRRBenchmark == nil {
		t.Error("XIRRBenchmark is undefined, expected a rate")
	}
	if result.CAGRBenchmark == nil {
		t.Error("CAGRBenchmark is undefined, expected a rate")
	}

	// Elapsed period is ~1.0y (366/365), so the lump-sum CAGR sits just
	// under the simple 25% gain.
	if result.CAGRPortfolio == nil {
		t.Fatal("CAGRPortfolio is undefined, expected a rate")
	}
	if *result.CAGRPortfolio < 0.20 || *result.CAGRPortfolio > 0.25 {
		t.Errorf("CAGRPortfolio = %v, want ~0.249 for 2000 -> 2500 over ~1y", *result.CAGRPortfolio)
	}
}

func TestCompare_Idempotent(t *testing.T) {
	trades := []model.Trade{
		buy(date(2020, 1, 2), -1000),
		buy(date(2020, 7, 1), -500),
	}
	valuation := model.Valuation{Date: date(2021, 6, 1), MarketValue: 1900}
	series := makeSeries(date(2020, 1, 1), date(2021, 6, 1), 250, 0.5)

	first, err := Compare(trades, valuation, series)
	if err != nil {
		t.Fatalf("Compare() returned unexpected error: %v", err)
	}
	second, err := Compare(trades, valuation, series)
	if err != nil {
		t.Fatalf("Compare() returned unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Compare is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestCompare_NoQualifyingTrades(t *testing.T) {
	trades := []model.Trade{
		{Date: date(2020, 1, 2), Type: model.TradeSell, Amount: 400},
		{Date: date(2020, 2, 1), Type: model.TradeDividend, Amount: 10},
	}
	valuation := model.Valuation{Date: date(2021, 1, 2), MarketValue: 2500}
	series := makeSeries(date(2020, 1, 1), date(2021, 1, 2), 100, 0.1)

	result, err := Compare(trades, valuation, series)
	if err != nil {
		t.Fatalf("Compare() must not fail on an empty extraction, got: %v", err)
	}

	if result.XIRRPortfolio != nil || result.XIRRBenchmark != nil ||
		result.CAGRPortfolio != nil || result.CAGRBenchmark != nil {
		t.Errorf("Expected all-undefined result, got %+v", result)
	}
	if result.TotalInvested != 0 {
		t.Errorf("TotalInvested = %v, want 0", result.TotalInvested)
	}
	if result.CashFlows == nil || len(result.CashFlows) != 0 {
		t.Errorf("Expected empty cash-flow list, got %v", result.CashFlows)
	}
}

func TestCompare_ZeroValuationReportsUndefinedXIRR(t *testing.T) {
	// A worthless portfolio has no solvable money-weighted rate (the NPV
	// curve never crosses zero), but the lump-sum CAGR is a clean -100%.
	trades := []model.Trade{buy(date(2020, 1, 2), -1000)}
	valuation := model.Valuation{Date: date(2021, 1, 2), MarketValue: 0}
	series := makeSeries(date(2020, 1, 1), date(2021, 1, 2), 100, 0.1)

	result, err := Compare(trades, valuation, series)
	if err != nil {
		t.Fatalf("Compare() returned unexpected error: %v", err)
	}

	if result.XIRRPortfolio != nil {
		t.Errorf("XIRRPortfolio = %v, want undefined for zero valuation", *result.XIRRPortfolio)
	}
	if result.CAGRPortfolio == nil {
		t.Fatal("CAGRPortfolio is undefined, expected -1.0")
	}
	if !approxEqual(*result.CAGRPortfolio, -1.0, 1e-9) {
		t.Errorf("CAGRPortfolio = %v, want -1.0", *result.CAGRPortfolio)
	}
}

func TestCompare_SameDayValuationReportsUndefinedCAGR(t *testing.T) {
	// Valuation on the first trade date leaves zero elapsed time.
	trades := []model.Trade{buy(date(2020, 1, 2), -1000)}
	valuation := model.Valuation{Date: date(2020, 1, 2), MarketValue: 1000}
	series := makeSeries(date(2020, 1, 1), date(2020, 1, 10), 100, 0.1)

	result, err := Compare(trades, valuation, series)
	if err != nil {
		t.Fatalf("Compare() returned unexpected error: %v", err)
	}

	if result.CAGRPortfolio != nil {
		t.Errorf("CAGRPortfolio = %v, want undefined for zero-length period", *result.CAGRPortfolio)
	}
	if result.CAGRBenchmark != nil {
		t.Errorf("CAGRBenchmark = %v, want undefined for zero-length period", *result.CAGRBenchmark)
	}
}

func TestCompare_TradePredatesPriceHistory(t *testing.T) {
	trades := []model.Trade{buy(date(2019, 1, 2), -1000)}
	valuation := model.Valuation{Date: date(2021, 1, 2), MarketValue: 1200}
	series := makeSeries(date(2020, 1, 1), date(2021, 1, 2), 100, 0.1)

	_, err := Compare(trades, valuation, series)
	if !errors.Is(err, apperrors.ErrNoPriorPrice) {
		t.Errorf("Expected ErrNoPriorPrice, got %v", err)
	}
}
