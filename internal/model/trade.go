package model

import "time"

// TradeType classifies a row from a brokerage trade-history export.
type TradeType string

// Recognised trade types. Only buys represent capital entering the portfolio
// for return computation; the remaining types are retained for display and
// audit but excluded from cash-flow extraction.
const (
	TradeBuy      TradeType = "buy"
	TradeSell     TradeType = "sell"
	TradeDividend TradeType = "dividend"
	TradeFee      TradeType = "fee"
	TradeTransfer TradeType = "transfer"
	TradeOther    TradeType = "other"
)

// ValidTradeTypes contains the allowed trade type values.
var ValidTradeTypes = map[TradeType]bool{
	TradeBuy: true, TradeSell: true, TradeDividend: true,
	TradeFee: true, TradeTransfer: true, TradeOther: true,
}

// Trade represents a single row imported from a brokerage trade-history
// export, scoped to an upload session. Amount is signed: negative for money
// leaving the investor (buys), positive for money received.
type Trade struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"sessionId"`
	Date        time.Time `json:"date"`
	Type        TradeType `json:"type"`
	Symbol      string    `json:"symbol,omitempty"`
	Description string    `json:"description,omitempty"`
	Quantity    float64   `json:"quantity,omitempty"`
	Price       float64   `json:"price,omitempty"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
