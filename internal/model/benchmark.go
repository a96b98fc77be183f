package model

import "time"

// Benchmark represents a tracked benchmark index.
type Benchmark struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// BenchmarkPrice is one daily closing price for a benchmark symbol.
// Prices are loaded once per trading day and treated as immutable.
type BenchmarkPrice struct {
	ID     string    `json:"id"`
	Symbol string    `json:"symbol"`
	Date   time.Time `json:"date"`
	Price  float64   `json:"price"`
}
