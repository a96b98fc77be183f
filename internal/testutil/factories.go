// Package testutil provides shared helpers for setting up test databases,
// building test fixtures, and constructing services with test dependencies.
package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/benchfolio/backend/internal/model"
)

// SessionBuilder builds upload-session fixtures.
//
// Example usage:
//
//	session := testutil.NewSession().
//	    WithValuation(date, 2500).
//	    Build(t, db)
type SessionBuilder struct {
	ID            string
	CreatedAt     time.Time
	ExpiresAt     time.Time
	ValuationDate *time.Time
	MarketValue   *float64
}

// NewSession creates a SessionBuilder with sensible defaults.
func NewSession() *SessionBuilder {
	now := time.Now().UTC()
	return &SessionBuilder{
		ID:        MakeID(),
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
}

// WithID sets a custom ID.
func (b *SessionBuilder) WithID(id string) *SessionBuilder {
	b.ID = id
	return b
}

// WithExpiresAt sets a custom expiry.
func (b *SessionBuilder) WithExpiresAt(expiresAt time.Time) *SessionBuilder {
	b.ExpiresAt = expiresAt
	return b
}

// Expired marks the session as already expired.
func (b *SessionBuilder) Expired() *SessionBuilder {
	b.ExpiresAt = time.Now().UTC().Add(-time.Hour)
	return b
}

// WithValuation sets the valuation snapshot.
func (b *SessionBuilder) WithValuation(date time.Time, marketValue float64) *SessionBuilder {
	b.ValuationDate = &date
	b.MarketValue = &marketValue
	return b
}

// Build creates the session in the database and returns it.
func (b *SessionBuilder) Build(t *testing.T, db *sql.DB) model.Session {
	t.Helper()

	query := `
		INSERT INTO session (id, created_at, expires_at, valuation_date, market_value)
		VALUES (?, ?, ?, ?, ?)
	`

	var valuationDate interface{}
	if b.ValuationDate != nil {
		valuationDate = b.ValuationDate.UTC().Format("2006-01-02")
	}

	_, err := db.Exec(query,
		b.ID,
		b.CreatedAt.Format(time.RFC3339),
		b.ExpiresAt.Format(time.RFC3339),
		valuationDate,
		b.MarketValue,
	)
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return model.Session{
		ID:            b.ID,
		CreatedAt:     b.CreatedAt,
		ExpiresAt:     b.ExpiresAt,
		ValuationDate: b.ValuationDate,
		MarketValue:   b.MarketValue,
	}
}

// CreateSession creates a session with default values.
//
// Example usage:
//
//	session := testutil.CreateSession(t, db)
func CreateSession(t *testing.T, db *sql.DB) model.Session {
	t.Helper()
	return NewSession().Build(t, db)
}

// TradeBuilder builds trade fixtures scoped to a session.
//
// Example usage:
//
//	trade := testutil.NewTrade(session.ID).
//	    WithDate(date).
//	    WithAmount(-1000).
//	    Build(t, db)
type TradeBuilder struct {
	ID          string
	SessionID   string
	Date        time.Time
	Type        model.TradeType
	Symbol      string
	Description string
	Quantity    float64
	Price       float64
	Amount      float64
}

// NewTrade creates a TradeBuilder with sensible defaults: a 1000 dollar buy.
func NewTrade(sessionID string) *TradeBuilder {
	return &TradeBuilder{
		ID:        MakeID(),
		SessionID: sessionID,
		Date:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Type:      model.TradeBuy,
		Symbol:    "VTI",
		Quantity:  4,
		Price:     250,
		Amount:    -1000,
	}
}

// WithDate sets the trade date.
func (b *TradeBuilder) WithDate(date time.Time) *TradeBuilder {
	b.Date = date
	return b
}

// WithType sets the trade type.
func (b *TradeBuilder) WithType(tradeType model.TradeType) *TradeBuilder {
	b.Type = tradeType
	return b
}

// WithSymbol sets the traded symbol.
func (b *TradeBuilder) WithSymbol(symbol string) *TradeBuilder {
	b.Symbol = symbol
	return b
}

// WithAmount sets the signed cash amount.
func (b *TradeBuilder) WithAmount(amount float64) *TradeBuilder {
	b.Amount = amount
	return b
}

// Build creates the trade in the database and returns it.
func (b *TradeBuilder) Build(t *testing.T, db *sql.DB) model.Trade {
	t.Helper()

	query := `
		INSERT INTO trade (id, session_id, date, type, symbol, description, quantity, price, amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID,
		b.SessionID,
		b.Date.UTC().Format("2006-01-02"),
		string(b.Type),
		b.Symbol,
		b.Description,
		b.Quantity,
		b.Price,
		b.Amount,
	)
	if err != nil {
		t.Fatalf("Failed to create test trade: %v", err)
	}

	return model.Trade{
		ID:          b.ID,
		SessionID:   b.SessionID,
		Date:        b.Date,
		Type:        b.Type,
		Symbol:      b.Symbol,
		Description: b.Description,
		Quantity:    b.Quantity,
		Price:       b.Price,
		Amount:      b.Amount,
	}
}

// CreateBuy creates a buy trade for the session on the given date.
//
// Example usage:
//
//	trade := testutil.CreateBuy(t, db, session.ID, date, -1000)
func CreateBuy(t *testing.T, db *sql.DB, sessionID string, date time.Time, amount float64) model.Trade {
	t.Helper()
	return NewTrade(sessionID).WithDate(date).WithAmount(amount).Build(t, db)
}

// CreateBenchmarkPrices stores one close per weekday between start and end
// (inclusive) for the symbol, walking the price up by one per trading day.
// Weekends are skipped so tests exercise the on-or-before lookup.
func CreateBenchmarkPrices(t *testing.T, db *sql.DB, symbol string, start, end time.Time, basePrice float64) {
	t.Helper()

	query := `
		INSERT INTO benchmark_price (id, symbol, date, price)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(symbol, date) DO UPDATE SET price = excluded.price
	`

	price := basePrice
	for d := start.UTC(); !d.After(end.UTC()); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if _, err := db.Exec(query, MakeID(), symbol, d.Format("2006-01-02"), price); err != nil {
			t.Fatalf("Failed to create test benchmark price: %v", err)
		}
		price++
	}
}

// CreateBenchmark registers a benchmark symbol for tracking.
func CreateBenchmark(t *testing.T, db *sql.DB, symbol, name string) model.Benchmark {
	t.Helper()

	benchmark := model.Benchmark{ID: MakeID(), Symbol: symbol, Name: name}
	_, err := db.Exec(
		`INSERT INTO benchmark (id, symbol, name) VALUES (?, ?, ?)`,
		benchmark.ID, benchmark.Symbol, benchmark.Name,
	)
	if err != nil {
		t.Fatalf("Failed to create test benchmark: %v", err)
	}
	return benchmark
}
