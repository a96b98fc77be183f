package service

import (
	"context"

	"github.com/benchfolio/backend/internal/apperrors"
	"github.com/benchfolio/backend/internal/model"
	"github.com/benchfolio/backend/internal/returns"
)

// coverageMargin is how far before the first trade the price series must
// reach, so buys on non-trading days can resolve to a prior close.
const coverageMargin = 7 // days

// ComparisonResult is the full response of a comparison request: the four
// rates plus the inputs they were computed from.
type ComparisonResult struct {
	Benchmark string          `json:"benchmark"`
	Valuation model.Valuation `json:"valuation"`
	returns.Result
}

// ComparisonService sequences the comparison pipeline: load the session's
// trades and valuation, ensure benchmark price coverage, and run the pure
// returns computation. All I/O happens here; the engine itself stays free of
// side effects.
type ComparisonService struct {
	sessionService   *SessionService
	importService    *ImportService
	benchmarkService *BenchmarkService
}

// NewComparisonService creates a new ComparisonService with the provided service dependencies.
func NewComparisonService(
	sessionService *SessionService,
	importService *ImportService,
	benchmarkService *BenchmarkService,
) *ComparisonService {
	return &ComparisonService{
		sessionService:   sessionService,
		importService:    importService,
		benchmarkService: benchmarkService,
	}
}

// Compare computes the portfolio-versus-benchmark result for a session.
//
// Fails with apperrors.ErrValuationNotSet when no valuation has been
// submitted, and with apperrors.ErrBenchmarkNotFound for untracked symbols.
// A session with no qualifying trades produces an all-undefined result, not
// an error.
func (s *ComparisonService) Compare(ctx context.Context, sessionID, symbol string) (ComparisonResult, error) {
	session, err := s.sessionService.GetSession(sessionID)
	if err != nil {
		return ComparisonResult{}, err
	}
	if session.ValuationDate == nil || session.MarketValue == nil {
		return ComparisonResult{}, apperrors.ErrValuationNotSet
	}
	valuation := model.Valuation{Date: *session.ValuationDate, MarketValue: *session.MarketValue}

	trades, err := s.importService.GetTrades(sessionID)
	if err != nil {
		return ComparisonResult{}, err
	}

	result := ComparisonResult{
		Benchmark: symbol,
		Valuation: valuation,
		Result:    returns.Result{CashFlows: []returns.CashFlow{}},
	}

	if len(trades) == 0 {
		return result, nil
	}

	// Trades come back date-ordered, so the coverage window starts a few
	// days before the first one.
	seriesStart := trades[0].Date.AddDate(0, 0, -coverageMargin)
	if err := s.benchmarkService.EnsureCoverage(ctx, symbol, seriesStart, valuation.Date); err != nil {
		return ComparisonResult{}, err
	}

	series, err := s.benchmarkService.PriceSeries(symbol, seriesStart, valuation.Date)
	if err != nil {
		return ComparisonResult{}, err
	}

	computed, err := returns.Compare(trades, valuation, series)
	if err != nil {
		return ComparisonResult{}, err
	}

	result.Result = computed
	return result, nil
}
