package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/benchfolio/backend/internal/apperrors"
	"github.com/benchfolio/backend/internal/model"
)

// BenchmarkRepository provides data access methods for the benchmark and
// benchmark_price tables.
type BenchmarkRepository struct {
	db *sql.DB
}

// NewBenchmarkRepository creates a new BenchmarkRepository with the provided database connection.
func NewBenchmarkRepository(db *sql.DB) *BenchmarkRepository {
	return &BenchmarkRepository{db: db}
}

// GetBenchmark retrieves a tracked benchmark by symbol.
// Returns apperrors.ErrBenchmarkNotFound when the symbol is not tracked.
func (r *BenchmarkRepository) GetBenchmark(symbol string) (model.Benchmark, error) {
	var b model.Benchmark
	err := r.db.QueryRow(
		`SELECT id, symbol, name FROM benchmark WHERE symbol = ?`, symbol,
	).Scan(&b.ID, &b.Symbol, &b.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Benchmark{}, apperrors.ErrBenchmarkNotFound
	}
	if err != nil {
		return model.Benchmark{}, fmt.Errorf("failed to query benchmark: %w", err)
	}
	return b, nil
}

// ListBenchmarks returns all tracked benchmarks.
func (r *BenchmarkRepository) ListBenchmarks() ([]model.Benchmark, error) {
	rows, err := r.db.Query(`SELECT id, symbol, name FROM benchmark ORDER BY symbol ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query benchmark table: %w", err)
	}
	defer rows.Close()

	benchmarks := []model.Benchmark{}
	for rows.Next() {
		var b model.Benchmark
		if err := rows.Scan(&b.ID, &b.Symbol, &b.Name); err != nil {
			return nil, fmt.Errorf("failed to scan benchmark table results: %w", err)
		}
		benchmarks = append(benchmarks, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating benchmark table: %w", err)
	}
	return benchmarks, nil
}

// GetPrices retrieves daily closes for a symbol within the inclusive date
// range, sorted by date ascending.
func (r *BenchmarkRepository) GetPrices(symbol string, startDate, endDate time.Time) ([]model.BenchmarkPrice, error) {
	query := `
		SELECT id, symbol, date, price
		FROM benchmark_price
		WHERE symbol = ?
		AND date >= ?
		AND date <= ?
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query, symbol,
		startDate.UTC().Format("2006-01-02"),
		endDate.UTC().Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query benchmark_price table: %w", err)
	}
	defer rows.Close()

	prices := []model.BenchmarkPrice{}
	for rows.Next() {
		var p model.BenchmarkPrice
		var dateStr string

		if err := rows.Scan(&p.ID, &p.Symbol, &dateStr, &p.Price); err != nil {
			return nil, fmt.Errorf("failed to scan benchmark_price table results: %w", err)
		}
		if p.Date, err = ParseTime(dateStr); err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating benchmark_price table: %w", err)
	}
	return prices, nil
}

// GetCoverage returns the earliest and latest stored price dates for a
// symbol. The boolean is false when no prices are stored at all.
func (r *BenchmarkRepository) GetCoverage(symbol string) (time.Time, time.Time, bool, error) {
	var minStr, maxStr sql.NullString
	err := r.db.QueryRow(
		`SELECT MIN(date), MAX(date) FROM benchmark_price WHERE symbol = ?`, symbol,
	).Scan(&minStr, &maxStr)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to query price coverage: %w", err)
	}
	if !minStr.Valid || !maxStr.Valid {
		return time.Time{}, time.Time{}, false, nil
	}

	earliest, err := ParseTime(minStr.String)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	latest, err := ParseTime(maxStr.String)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	return earliest, latest, true, nil
}

// UpsertPrices stores a batch of daily closes inside one transaction,
// replacing any row that already exists for the same symbol and date.
// Re-fetching an overlapping range is therefore safe.
func (r *BenchmarkRepository) UpsertPrices(ctx context.Context, prices []model.BenchmarkPrice) error {
	if len(prices) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin price upsert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO benchmark_price (id, symbol, date, price)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(symbol, date) DO UPDATE SET price = excluded.price
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare price upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range prices {
		_, err := stmt.ExecContext(ctx,
			p.ID,
			p.Symbol,
			p.Date.UTC().Format("2006-01-02"),
			p.Price,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert price: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit price upsert: %w", err)
	}
	return nil
}
