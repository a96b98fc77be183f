package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benchfolio/backend/internal/apperrors"
	"github.com/benchfolio/backend/internal/testutil"
)

// TestComparisonService_Compare tests the full comparison pipeline against a
// seeded database.
//
// WHY: This is the product: everything else exists to feed this computation.
// The pipeline must stitch session, trades, valuation, and benchmark prices
// together and hand back defined rates for a plain profitable scenario.
func TestComparisonService_Compare(t *testing.T) {
	priceStart := time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC)
	priceEnd := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)
	valuationDate := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)

	t.Run("computes defined rates for a profitable portfolio", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestComparisonService(t, db)

		session := testutil.NewSession().WithValuation(valuationDate, 2600).Build(t, db)
		testutil.CreateBuy(t, db, session.ID, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), -1000)
		testutil.CreateBuy(t, db, session.ID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), -1000)
		testutil.CreateBenchmarkPrices(t, db, "^GSPC", priceStart, priceEnd, 100)

		// Execute
		result, err := svc.Compare(context.Background(), session.ID, "^GSPC")

		// Assert
		if err != nil {
			t.Fatalf("Compare() returned unexpected error: %v", err)
		}

		if result.Benchmark != "^GSPC" {
			t.Errorf("Expected benchmark ^GSPC, got %s", result.Benchmark)
		}
		if result.TotalInvested != 2000 {
			t.Errorf("Expected total invested 2000, got %v", result.TotalInvested)
		}
		if len(result.CashFlows) != 2 {
			t.Errorf("Expected 2 cash flows, got %d", len(result.CashFlows))
		}

		if result.XIRRPortfolio == nil {
			t.Fatal("Expected portfolio XIRR to be defined")
		}
		if *result.XIRRPortfolio <= 0 {
			t.Errorf("Expected positive portfolio XIRR for a gain, got %v", *result.XIRRPortfolio)
		}
		if result.XIRRBenchmark == nil {
			t.Fatal("Expected benchmark XIRR to be defined")
		}
		if *result.XIRRBenchmark <= 0 {
			t.Errorf("Expected positive benchmark XIRR for a rising index, got %v", *result.XIRRBenchmark)
		}
		if result.CAGRPortfolio == nil || result.CAGRBenchmark == nil {
			t.Fatal("Expected both CAGR values to be defined")
		}
	})

	t.Run("is deterministic across repeated calls", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestComparisonService(t, db)

		session := testutil.NewSession().WithValuation(valuationDate, 2600).Build(t, db)
		testutil.CreateBuy(t, db, session.ID, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), -1000)
		testutil.CreateBenchmarkPrices(t, db, "^GSPC", priceStart, priceEnd, 100)

		// Execute
		first, err := svc.Compare(context.Background(), session.ID, "^GSPC")
		if err != nil {
			t.Fatalf("First Compare() returned unexpected error: %v", err)
		}
		second, err := svc.Compare(context.Background(), session.ID, "^GSPC")
		if err != nil {
			t.Fatalf("Second Compare() returned unexpected error: %v", err)
		}

		// Assert
		if *first.XIRRPortfolio != *second.XIRRPortfolio {
			t.Errorf("Portfolio XIRR differs between runs: %v vs %v", *first.XIRRPortfolio, *second.XIRRPortfolio)
		}
		if *first.XIRRBenchmark != *second.XIRRBenchmark {
			t.Errorf("Benchmark XIRR differs between runs: %v vs %v", *first.XIRRBenchmark, *second.XIRRBenchmark)
		}
	})

	t.Run("fails when no valuation has been submitted", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestComparisonService(t, db)
		session := testutil.CreateSession(t, db)

		// Execute
		_, err := svc.Compare(context.Background(), session.ID, "^GSPC")

		// Assert
		if !errors.Is(err, apperrors.ErrValuationNotSet) {
			t.Errorf("Expected ErrValuationNotSet, got %v", err)
		}
	})

	t.Run("returns all-undefined rates when no trades qualify", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestComparisonService(t, db)
		session := testutil.NewSession().WithValuation(valuationDate, 2600).Build(t, db)

		// Execute
		result, err := svc.Compare(context.Background(), session.ID, "^GSPC")

		// Assert
		if err != nil {
			t.Fatalf("Compare() returned unexpected error: %v", err)
		}
		if result.XIRRPortfolio != nil || result.XIRRBenchmark != nil ||
			result.CAGRPortfolio != nil || result.CAGRBenchmark != nil {
			t.Error("Expected all rates undefined for a session without trades")
		}
		if result.TotalInvested != 0 {
			t.Errorf("Expected total invested 0, got %v", result.TotalInvested)
		}
	})

	t.Run("fails for untracked benchmark symbols", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestComparisonService(t, db)
		session := testutil.NewSession().WithValuation(valuationDate, 2600).Build(t, db)
		testutil.CreateBuy(t, db, session.ID, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), -1000)

		// Execute
		_, err := svc.Compare(context.Background(), session.ID, "^NOPE")

		// Assert
		if !errors.Is(err, apperrors.ErrBenchmarkNotFound) {
			t.Errorf("Expected ErrBenchmarkNotFound, got %v", err)
		}
	})

	t.Run("fails for unknown sessions", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestComparisonService(t, db)

		// Execute
		_, err := svc.Compare(context.Background(), testutil.MakeID(), "^GSPC")

		// Assert
		if !errors.Is(err, apperrors.ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}
