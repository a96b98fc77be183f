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

// SessionRepository provides data access methods for the session table.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository with the provided database connection.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// InsertSession stores a new upload session.
func (r *SessionRepository) InsertSession(ctx context.Context, session *model.Session) error {
	query := `
		INSERT INTO session (id, created_at, expires_at)
		VALUES (?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.CreatedAt.UTC().Format(time.RFC3339),
		session.ExpiresAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by its ID.
// Returns apperrors.ErrSessionNotFound when no row exists.
func (r *SessionRepository) GetSession(id string) (model.Session, error) {
	query := `
		SELECT id, created_at, expires_at, valuation_date, market_value
		FROM session
		WHERE id = ?
	`

	var s model.Session
	var createdAtStr, expiresAtStr string
	var valuationDateStr sql.NullString
	var marketValue sql.NullFloat64

	err := r.db.QueryRow(query, id).Scan(
		&s.ID,
		&createdAtStr,
		&expiresAtStr,
		&valuationDateStr,
		&marketValue,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Session{}, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to query session: %w", err)
	}

	if s.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Session{}, err
	}
	if s.ExpiresAt, err = ParseTime(expiresAtStr); err != nil {
		return model.Session{}, err
	}

	if valuationDateStr.Valid && marketValue.Valid {
		valuationDate, err := ParseTime(valuationDateStr.String)
		if err != nil {
			return model.Session{}, err
		}
		s.ValuationDate = &valuationDate
		s.MarketValue = &marketValue.Float64
	}

	return s, nil
}

// SetValuation stores the user-supplied mark-to-market snapshot on a session.
// Returns apperrors.ErrSessionNotFound when the session does not exist.
func (r *SessionRepository) SetValuation(ctx context.Context, id string, valuation model.Valuation) error {
	query := `
		UPDATE session
		SET valuation_date = ?, market_value = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		valuation.Date.UTC().Format("2006-01-02"),
		valuation.MarketValue,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update valuation: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check valuation update: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

// DeleteExpired removes all sessions whose expiry is before the given time.
// Trades cascade via the session foreign key. Returns the number of sessions
// removed.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM session WHERE expires_at < ?`,
		now.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted sessions: %w", err)
	}
	return affected, nil
}
