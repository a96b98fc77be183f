package returns

// ProjectBenchmark simulates investing each buy into the benchmark instead.
// For every negative flow the equivalent number of benchmark shares is bought
// at that date's effective price (previous close on non-trading days), and
// the share count accumulates across the series.
//
// The projected flows keep the original dates and signed amounts unchanged:
// the dollars invested are identical, only the implied instrument differs.
// That is what makes the benchmark XIRR directly comparable to the portfolio
// XIRR. The returned share count is later redeemed at the valuation date's
// effective price to form the benchmark's terminal flow.
//
// Returns ErrNoPriorPrice when any buy predates the available price history.
func ProjectBenchmark(flows []CashFlow, series *PriceSeries) ([]CashFlow, float64, error) {
	projected := make([]CashFlow, len(flows))
	copy(projected, flows)

	shares := 0.0
	for _, f := range flows {
		if f.Amount >= 0 {
			continue
		}
		price, err := series.OnOrBefore(f.Date)
		if err != nil {
			return nil, 0, err
		}
		shares += -f.Amount / price
	}
	return projected, shares, nil
}
