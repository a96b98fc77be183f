package testutil

import (
	"sync"
	"time"

	"github.com/benchfolio/backend/internal/yahoo"
)

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// It returns predefined test data instead of making actual API calls.
// Safe for concurrent use; RefreshAll queries symbols in parallel.
type MockYahooClient struct {
	mu sync.Mutex
	// MockResponse is the response to return from query methods
	MockResponse yahoo.Response
	// MockError is the error to return from query methods
	MockError error
	// QueryCount tracks how many times a query method was called
	QueryCount int
}

// NewMockYahooClient creates a new mock Yahoo client with default test data.
// The default data includes 5 days of historical prices suitable for testing.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{
		MockResponse: CreateMockYahooResponse(5),
		MockError:    nil,
		QueryCount:   0,
	}
}

// QueryYahooFiveDaySymbol mocks the 5-day symbol query with predefined test data.
// It returns the configured MockResponse and MockError.
func (m *MockYahooClient) QueryYahooFiveDaySymbol(_ string) (yahoo.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryCount++
	if m.MockError != nil {
		return yahoo.Response{}, m.MockError
	}
	return m.MockResponse, nil
}

// QueryYahooSymbolByDateRange mocks the date range query with predefined test data.
// It returns the configured MockResponse and MockError.
func (m *MockYahooClient) QueryYahooSymbolByDateRange(_ string, _, _ time.Time) (yahoo.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryCount++
	if m.MockError != nil {
		return yahoo.Response{}, m.MockError
	}
	return m.MockResponse, nil
}

// ParseChart delegates to the real ParseChart method since it's pure logic with no side effects.
func (m *MockYahooClient) ParseChart(yahooResult yahoo.Response) (yahoo.PriceChart, error) {
	// Use the real implementation for parsing since it's deterministic
	client := yahoo.NewFinanceClient()
	return client.ParseChart(yahooResult)
}

// WithError configures the mock to return the specified error.
func (m *MockYahooClient) WithError(err error) *MockYahooClient {
	m.MockError = err
	return m
}

// WithResponse configures the mock to return the specified response.
func (m *MockYahooClient) WithResponse(resp yahoo.Response) *MockYahooClient {
	m.MockResponse = resp
	return m
}

// WithEmptyResponse configures the mock to return a response with no rows.
func (m *MockYahooClient) WithEmptyResponse() *MockYahooClient {
	m.MockResponse = yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{{}},
		},
	}
	return m
}

// CreateMockYahooResponse creates a mock Yahoo Finance API response with
// `days` days of price data ending yesterday. Each day has realistic OHLCV
// data suitable for testing.
func CreateMockYahooResponse(days int) yahoo.Response {
	now := time.Now().UTC()
	yesterday := time.Date(now.Year(), now.Month(), now.Day()-1, 0, 0, 0, 0, time.UTC)
	return CreateMockYahooResponseForRange(yesterday.AddDate(0, 0, -(days-1)), yesterday, 100.0)
}

// CreateMockYahooResponseForRange creates a mock response covering every
// weekday between start and end (inclusive), with closes walking up by one
// per trading day from basePrice. Matches the shape of CreateBenchmarkPrices
// so repository fixtures and mocked API data agree.
func CreateMockYahooResponseForRange(start, end time.Time, basePrice float64) yahoo.Response {
	var timestamps []int64
	var opens, highs, lows, closes []float64
	var volumes []int64

	price := basePrice
	for d := start.UTC(); !d.After(end.UTC()); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		timestamps = append(timestamps, d.Unix())
		opens = append(opens, price-0.5)
		highs = append(highs, price+1)
		lows = append(lows, price-1)
		closes = append(closes, price)
		volumes = append(volumes, 1_000_000)
		price++
	}

	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{
				{
					Meta: yahoo.Meta{
						Currency:     "USD",
						Symbol:       "^GSPC",
						ExchangeName: "SNP",
						LongName:     "S&P 500",
						Shortname:    "S&P 500",
					},
					Timestamp: timestamps,
					Indicators: yahoo.ResultIndicators{
						Quote: []yahoo.Quote{
							{
								Open:   opens,
								Close:  closes,
								Volume: volumes,
								High:   highs,
								Low:    lows,
							},
						},
					},
				},
			},
		},
	}
}
