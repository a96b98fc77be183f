// Package returns implements the money-weighted and lump-sum return
// calculations used to compare a brokerage account against a benchmark index.
//
// The package is pure computation: no I/O, no hidden state. Callers supply a
// list of trades, a portfolio valuation, and a benchmark price series; Compare
// produces four annualised rates plus the normalized cash-flow list. Rates
// that are mathematically undefined for the given inputs (all-outflow series,
// zero elapsed time) are reported as nil markers, never as panics.
package returns

import "time"

// daysPerYear is the fixed day-count convention. A 365-day year (not 365.25)
// introduces a small error over multi-year periods but keeps period math
// consistent with the imported trade data.
const daysPerYear = 365.0

// CashFlow is a dated, signed movement of money. Negative = capital leaving
// the investor (a buy); positive = money received (the terminal valuation).
type CashFlow struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// Result holds the four headline rates plus supporting figures. Rate fields
// are nil when the corresponding computation is undefined for the inputs;
// presentation layers must render these distinctly from a numeric zero.
type Result struct {
	XIRRPortfolio *float64 `json:"xirrPortfolio"`
	XIRRBenchmark *float64 `json:"xirrBenchmark"`
	CAGRPortfolio *float64 `json:"cagrPortfolio"`
	CAGRBenchmark *float64 `json:"cagrBenchmark"`

	TotalInvested float64    `json:"totalInvested"`
	CashFlows     []CashFlow `json:"cashFlows"`
}

// yearsBetween returns the elapsed time from start to end in fractional
// years under the fixed 365-day convention.
func yearsBetween(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24 / daysPerYear
}
