package yahoo

import "time"

// Response represents the raw JSON response structure from the Yahoo Finance
// chart API. It maps directly to the wire format, containing nested
// structures for metadata, timestamps, and price indicators.
type Response struct {
	Chart Chart `json:"chart"`
}

// Chart is the top-level payload of a chart API response.
type Chart struct {
	Result []Result `json:"result"`
	Error  *string  `json:"error"`
}

// Result holds one instrument's metadata and raw price arrays.
type Result struct {
	Meta       Meta             `json:"meta"`
	Timestamp  []int64          `json:"timestamp"`
	Indicators ResultIndicators `json:"indicators"`
}

// ResultIndicators wraps the quote arrays of a chart result.
type ResultIndicators struct {
	Quote []Quote `json:"quote"`
}

// Meta carries symbol metadata (name, currency, exchange).
type Meta struct {
	Currency         string `json:"currency"`
	Symbol           string `json:"symbol"`
	ExchangeName     string `json:"exchangeName"`
	FullExchangeName string `json:"fullExchangeName"`
	LongName         string `json:"longName"`
	Shortname        string `json:"shortName"`
}

// Quote contains the parallel OHLCV arrays, index-aligned with Timestamp.
type Quote struct {
	Open   []float64 `json:"open"`
	Close  []float64 `json:"close"`
	Volume []int64   `json:"volume"`
	High   []float64 `json:"high"`
	Low    []float64 `json:"low"`
}

// PriceChart represents a parsed and structured price chart from Yahoo
// Finance. This is the application's internal representation after parsing
// the raw Response, with type-safe access to daily data points.
type PriceChart struct {
	Currency         string       `json:"currency"`
	Symbol           string       `json:"symbol"`
	ExchangeName     string       `json:"exchangeName"`
	FullExchangeName string       `json:"fullExchangeName"`
	LongName         string       `json:"longName"`
	Shortname        string       `json:"shortName"`
	Indicators       []Indicators `json:"indicators"`
}

// Indicators represents a single trading day's price data.
// Date has its time component set to midnight UTC.
type Indicators struct {
	Date       time.Time
	PriceOpen  float64
	PriceClose float64
	Volume     int64
	PriceHigh  float64
	PriceLow   float64
}
