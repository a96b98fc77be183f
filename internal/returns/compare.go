package returns

import (
	"errors"

	"github.com/benchfolio/backend/internal/apperrors"
	"github.com/benchfolio/backend/internal/model"
)

// Compare runs the full comparison pipeline over the uploaded trades, the
// user's valuation, and the benchmark price series:
//
//	extract cash flows -> total invested -> portfolio XIRR ->
//	benchmark projection -> benchmark XIRR ->
//	portfolio lump-sum CAGR -> benchmark lump-sum CAGR
//
// Undefined rates (solver non-convergence, zero elapsed period) are recovered
// here and reported as nil fields; a trade history with no qualifying buy
// rows yields an all-undefined Result. Only ErrNoPriorPrice is returned as an
// error, since a buy that predates the price history makes the whole
// benchmark projection meaningless.
//
// Compare performs no I/O and keeps no state: identical inputs produce
// identical results.
func Compare(trades []model.Trade, valuation model.Valuation, series *PriceSeries) (Result, error) {
	flows, err := ExtractCashFlows(trades)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoCashFlows) {
			return Result{CashFlows: []CashFlow{}}, nil
		}
		return Result{}, err
	}

	result := Result{
		TotalInvested: TotalInvested(flows),
		CashFlows:     flows,
	}

	valuationDate := day(valuation.Date)
	terminal := CashFlow{Date: valuationDate, Amount: valuation.MarketValue}

	result.XIRRPortfolio = definedRate(XIRR(flows, terminal))

	projected, shares, err := ProjectBenchmark(flows, series)
	if err != nil {
		return Result{}, err
	}
	finalPrice, err := series.OnOrBefore(valuationDate)
	if err != nil {
		return Result{}, err
	}
	benchTerminal := CashFlow{Date: valuationDate, Amount: shares * finalPrice}
	result.XIRRBenchmark = definedRate(XIRR(projected, benchTerminal))

	years := yearsBetween(flows[0].Date, valuationDate)
	result.CAGRPortfolio = definedRate(CAGR(result.TotalInvested, valuation.MarketValue, years))

	startPrice, err := series.OnOrBefore(flows[0].Date)
	if err != nil {
		return Result{}, err
	}
	benchFinal := result.TotalInvested / startPrice * finalPrice
	result.CAGRBenchmark = definedRate(CAGR(result.TotalInvested, benchFinal, years))

	return result, nil
}

// definedRate converts a (rate, err) pair into the nil-means-undefined
// representation used by Result. Non-convergence and invalid periods are the
// expected undefined cases; anything else would be a programming error in
// this package and is treated the same way.
func definedRate(rate float64, err error) *float64 {
	if err != nil {
		return nil
	}
	return &rate
}
