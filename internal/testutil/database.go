package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Upload session table
		CREATE TABLE session (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			expires_at DATETIME NOT NULL,
			valuation_date DATE,
			market_value FLOAT
		);

		-- Imported trade rows, scoped to a session
		CREATE TABLE trade (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			session_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			type VARCHAR(10) NOT NULL,
			symbol VARCHAR(10),
			description TEXT,
			quantity FLOAT NOT NULL DEFAULT 0,
			price FLOAT NOT NULL DEFAULT 0,
			amount FLOAT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(session_id) REFERENCES session(id) ON DELETE CASCADE
		);

		-- Tracked benchmark indexes
		CREATE TABLE benchmark (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			symbol VARCHAR(10) NOT NULL UNIQUE,
			name VARCHAR(100) NOT NULL
		);

		-- Daily benchmark closing prices
		CREATE TABLE benchmark_price (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			symbol VARCHAR(10) NOT NULL,
			date DATE NOT NULL,
			price FLOAT NOT NULL,
			CONSTRAINT unique_benchmark_price UNIQUE (symbol, date)
		);

		CREATE INDEX ix_session_expires_at ON session(expires_at);
		CREATE INDEX ix_trade_session_id ON trade(session_id);
		CREATE INDEX ix_trade_session_id_date ON trade(session_id, date);
		CREATE INDEX ix_benchmark_price_symbol_date ON benchmark_price(symbol, date);

		-- The S&P 500 index is tracked by default
		INSERT INTO benchmark (id, symbol, name)
		VALUES ('a1f0f2c4-0000-4000-8000-000000000001', '^GSPC', 'S&P 500');
	`

	_, err := db.Exec(schema)
	return err
}
