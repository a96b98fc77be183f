package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/benchfolio/backend/internal/model"
)

// TradeRepository provides data access methods for the trade table.
// Trades are always scoped to an upload session.
type TradeRepository struct {
	db *sql.DB
}

// NewTradeRepository creates a new TradeRepository with the provided database connection.
func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// InsertTrades stores a batch of imported trade rows inside one transaction,
// so a half-failed import leaves no partial state behind.
func (r *TradeRepository) InsertTrades(ctx context.Context, trades []model.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin trade insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trade (id, session_id, date, type, symbol, description, quantity, price, amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare trade insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range trades {
		_, err := stmt.ExecContext(ctx,
			t.ID,
			t.SessionID,
			t.Date.UTC().Format("2006-01-02"),
			string(t.Type),
			t.Symbol,
			t.Description,
			t.Quantity,
			t.Price,
			t.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trade: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit trade insert: %w", err)
	}
	return nil
}

// GetTradesBySession retrieves all trades for a session, sorted by date
// ascending. Same-day rows keep their insertion order (rowid) so the
// cash-flow extraction sees them exactly as imported.
func (r *TradeRepository) GetTradesBySession(sessionID string) ([]model.Trade, error) {
	query := `
		SELECT id, session_id, date, type, symbol, description, quantity, price, amount, created_at
		FROM trade
		WHERE session_id = ?
		ORDER BY date ASC, rowid ASC
	`

	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	trades := []model.Trade{}
	for rows.Next() {
		var t model.Trade
		var typeStr, dateStr, createdAtStr string

		err := rows.Scan(
			&t.ID,
			&t.SessionID,
			&dateStr,
			&typeStr,
			&t.Symbol,
			&t.Description,
			&t.Quantity,
			&t.Price,
			&t.Amount,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade table results: %w", err)
		}

		t.Type = model.TradeType(typeStr)
		if t.Date, err = ParseTime(dateStr); err != nil {
			return nil, err
		}
		if t.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			return nil, err
		}

		trades = append(trades, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade table: %w", err)
	}
	return trades, nil
}

// DeleteBySession removes all trades for the given session. Used when a
// client re-uploads a corrected trade-history export.
func (r *TradeRepository) DeleteBySession(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM trade WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete trades: %w", err)
	}
	return nil
}
