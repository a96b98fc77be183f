package model

import "time"

// Session represents a single upload-and-compare session. Uploaded trades and
// the valuation are scoped to one session and are never visible across
// sessions. Sessions expire and are purged together with their trades.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`

	// Valuation fields are nil until the client submits a valuation.
	ValuationDate *time.Time `json:"valuationDate,omitempty"`
	MarketValue   *float64   `json:"marketValue,omitempty"`
}

// Valuation is the user-supplied mark-to-market snapshot of the portfolio,
// appended to every cash-flow series as the terminal positive flow.
type Valuation struct {
	Date        time.Time `json:"date"`
	MarketValue float64   `json:"marketValue"`
}
