package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/benchfolio/backend/internal/apperrors"
	"github.com/benchfolio/backend/internal/model"
	"github.com/benchfolio/backend/internal/testutil"
)

const sampleCSV = `RecordType,TradeDate,Action,Symbol,Description,Quantity,Price,Amount
Trade,2024-01-02,BUY,VTI,VANGUARD TOTAL STOCK MARKET ETF,4,250.00,"-1,000.00"
Trade,2024-02-01,BUY,VTI,VANGUARD TOTAL STOCK MARKET ETF,2,255.00,-510.00
Trade,2024-03-01,Dividend,VTI,DIVIDEND PAYMENT,0,0,12.34
Other,2024-03-15,Journal,,CASH JOURNAL,0,0,100.00
Trade,2024-04-01,SELL,VTI,VANGUARD TOTAL STOCK MARKET ETF,1,260.00,260.00
`

// TestImportService_ImportTrades tests trade-history CSV parsing and storage.
//
// WHY: The import is the entry point for all user data. It must tolerate the
// quirks of real brokerage exports (quoted thousands separators, mixed date
// layouts, non-trade records) without corrupting the computed results.
func TestImportService_ImportTrades(t *testing.T) {
	t.Run("imports trade rows and skips non-trade records", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		session := testutil.CreateSession(t, db)

		// Execute
		summary, err := svc.ImportTrades(context.Background(), session.ID, strings.NewReader(sampleCSV))

		// Assert
		if err != nil {
			t.Fatalf("ImportTrades() returned unexpected error: %v", err)
		}
		if summary.Imported != 4 {
			t.Errorf("Expected 4 imported rows, got %d", summary.Imported)
		}
		if summary.Skipped != 1 {
			t.Errorf("Expected 1 skipped row, got %d", summary.Skipped)
		}

		trades, err := svc.GetTrades(session.ID)
		if err != nil {
			t.Fatalf("GetTrades() returned unexpected error: %v", err)
		}
		if len(trades) != 4 {
			t.Fatalf("Expected 4 stored trades, got %d", len(trades))
		}

		// First row: quoted thousands separator parsed as a plain number
		if trades[0].Amount != -1000.00 {
			t.Errorf("Expected first amount -1000.00, got %v", trades[0].Amount)
		}
		if trades[0].Type != model.TradeBuy {
			t.Errorf("Expected first trade type buy, got %s", trades[0].Type)
		}
	})

	t.Run("normalizes action names case-insensitively", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		session := testutil.CreateSession(t, db)

		csv := "RecordType,TradeDate,Action,Amount\n" +
			"Trade,2024-01-02,buy,-100\n" +
			"Trade,2024-01-03,Sell,50\n" +
			"Trade,2024-01-04,DIV,5\n" +
			"Trade,2024-01-05,Journal,10\n"

		// Execute
		_, err := svc.ImportTrades(context.Background(), session.ID, strings.NewReader(csv))
		if err != nil {
			t.Fatalf("ImportTrades() returned unexpected error: %v", err)
		}

		trades, err := svc.GetTrades(session.ID)
		if err != nil {
			t.Fatalf("GetTrades() returned unexpected error: %v", err)
		}

		// Assert
		want := []model.TradeType{model.TradeBuy, model.TradeSell, model.TradeDividend, model.TradeOther}
		for i, typ := range want {
			if trades[i].Type != typ {
				t.Errorf("Trade %d: expected type %s, got %s", i, typ, trades[i].Type)
			}
		}
	})

	t.Run("accepts US date layout", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		session := testutil.CreateSession(t, db)

		csv := "RecordType,TradeDate,Action,Amount\n" +
			"Trade,01/02/2024,BUY,-100\n"

		// Execute
		summary, err := svc.ImportTrades(context.Background(), session.ID, strings.NewReader(csv))
		if err != nil {
			t.Fatalf("ImportTrades() returned unexpected error: %v", err)
		}
		if summary.Imported != 1 {
			t.Fatalf("Expected 1 imported row, got %d", summary.Imported)
		}

		trades, _ := svc.GetTrades(session.ID)
		if got := trades[0].Date.Format("2006-01-02"); got != "2024-01-02" {
			t.Errorf("Expected date 2024-01-02, got %s", got)
		}
	})

	t.Run("skips rows with unparseable dates or amounts", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		session := testutil.CreateSession(t, db)

		csv := "RecordType,TradeDate,Action,Amount\n" +
			"Trade,not-a-date,BUY,-100\n" +
			"Trade,2024-01-02,BUY,not-a-number\n" +
			"Trade,2024-01-03,BUY,-200\n"

		// Execute
		summary, err := svc.ImportTrades(context.Background(), session.ID, strings.NewReader(csv))

		// Assert
		if err != nil {
			t.Fatalf("ImportTrades() returned unexpected error: %v", err)
		}
		if summary.Imported != 1 {
			t.Errorf("Expected 1 imported row, got %d", summary.Imported)
		}
		if summary.Skipped != 2 {
			t.Errorf("Expected 2 skipped rows, got %d", summary.Skipped)
		}
	})

	t.Run("fails with missing required headers", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		session := testutil.CreateSession(t, db)

		csv := "Date,Thing,Stuff\n2024-01-02,BUY,-100\n"

		// Execute
		_, err := svc.ImportTrades(context.Background(), session.ID, strings.NewReader(csv))

		// Assert
		if !errors.Is(err, apperrors.ErrInvalidCSVHeaders) {
			t.Errorf("Expected ErrInvalidCSVHeaders, got %v", err)
		}
	})

	t.Run("re-upload replaces previously imported trades", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		session := testutil.CreateSession(t, db)

		first := "RecordType,TradeDate,Action,Amount\n" +
			"Trade,2024-01-02,BUY,-100\n" +
			"Trade,2024-01-03,BUY,-200\n"
		second := "RecordType,TradeDate,Action,Amount\n" +
			"Trade,2024-02-01,BUY,-500\n"

		// Execute
		if _, err := svc.ImportTrades(context.Background(), session.ID, strings.NewReader(first)); err != nil {
			t.Fatalf("First ImportTrades() returned unexpected error: %v", err)
		}
		if _, err := svc.ImportTrades(context.Background(), session.ID, strings.NewReader(second)); err != nil {
			t.Fatalf("Second ImportTrades() returned unexpected error: %v", err)
		}

		// Assert
		trades, err := svc.GetTrades(session.ID)
		if err != nil {
			t.Fatalf("GetTrades() returned unexpected error: %v", err)
		}
		if len(trades) != 1 {
			t.Fatalf("Expected 1 trade after re-upload, got %d", len(trades))
		}
		if trades[0].Amount != -500 {
			t.Errorf("Expected amount -500, got %v", trades[0].Amount)
		}
	})

	t.Run("returns trades ordered by date", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		session := testutil.CreateSession(t, db)

		csv := "RecordType,TradeDate,Action,Amount\n" +
			"Trade,2024-03-01,BUY,-300\n" +
			"Trade,2024-01-02,BUY,-100\n" +
			"Trade,2024-02-01,BUY,-200\n"

		// Execute
		if _, err := svc.ImportTrades(context.Background(), session.ID, strings.NewReader(csv)); err != nil {
			t.Fatalf("ImportTrades() returned unexpected error: %v", err)
		}

		trades, err := svc.GetTrades(session.ID)
		if err != nil {
			t.Fatalf("GetTrades() returned unexpected error: %v", err)
		}

		// Assert
		for i := 1; i < len(trades); i++ {
			if trades[i].Date.Before(trades[i-1].Date) {
				t.Errorf("Trades out of order at index %d", i)
			}
		}
	})
}
