package returns

import (
	"math"
	"sort"

	"github.com/benchfolio/backend/internal/apperrors"
)

// Solver bounds. Rates below -99.9% make the discount base non-positive and
// blow up the power term; the upper cap stops Newton steps from oscillating
// off to infinity on near-degenerate series.
const (
	xirrMaxIter = 100
	xirrTol     = 1e-6
	minRate     = -0.999
	maxRate     = 100.0
)

// XNPV is the net present value of irregularly dated cash flows at the given
// annual rate. Time is measured in 365-day years from the first flow's date.
func XNPV(rate float64, flows []CashFlow) float64 {
	if len(flows) == 0 {
		return 0
	}
	t0 := flows[0].Date
	sum := 0.0
	for _, f := range flows {
		sum += f.Amount / math.Pow(1+rate, yearsBetween(t0, f.Date))
	}
	return sum
}

// XIRR solves for the annualised rate r such that the net present value of
// the given flows plus the terminal flow is zero. The terminal flow is the
// portfolio valuation (or, for the benchmark case, accumulated shares times
// the valuation date's effective price).
//
// The solver runs Newton-Raphson from a simple-return starting guess and
// falls back to bisection over a bounded bracket when Newton fails to
// converge. Returns ErrNoConvergence when the series has no sign change
// (all flows the same sign, or a zero valuation against outflows only) or
// when neither method converges within its iteration budget.
func XIRR(flows []CashFlow, terminal CashFlow) (float64, error) {
	all := make([]CashFlow, 0, len(flows)+1)
	all = append(all, flows...)
	if terminal.Amount != 0 {
		all = append(all, CashFlow{Date: day(terminal.Date), Amount: terminal.Amount})
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date.Before(all[j].Date)
	})

	// A rate only exists when the NPV curve can cross zero, which requires
	// at least one flow of each sign.
	hasNeg, hasPos := false, false
	for _, f := range all {
		if f.Amount < 0 {
			hasNeg = true
		}
		if f.Amount > 0 {
			hasPos = true
		}
	}
	if !hasNeg || !hasPos {
		return 0, apperrors.ErrNoConvergence
	}

	// Year fraction of each flow relative to the first.
	t0 := all[0].Date
	years := make([]float64, len(all))
	for i, f := range all {
		years[i] = yearsBetween(t0, f.Date)
	}

	if rate, ok := newtonXIRR(all, years); ok {
		return rate, nil
	}
	if rate, ok := bisectXIRR(all, years); ok {
		return rate, nil
	}
	return 0, apperrors.ErrNoConvergence
}

// newtonXIRR runs Newton-Raphson on the NPV function, seeded with the simple
// (money-weighted-naive) return so that typical series converge in a handful
// of iterations.
func newtonXIRR(flows []CashFlow, years []float64) (float64, bool) {
	totalInvested, totalReceived := 0.0, 0.0
	for _, f := range flows {
		if f.Amount < 0 {
			totalInvested -= f.Amount
		} else {
			totalReceived += f.Amount
		}
	}

	rate := 0.1
	if totalInvested > 0 {
		simple := totalReceived/totalInvested - 1
		if simple > -0.9 && simple < 10 {
			rate = simple
		}
	}

	for iter := 0; iter < xirrMaxIter; iter++ {
		npv, dnpv := 0.0, 0.0
		for i, f := range flows {
			y := years[i]
			base := 1 + rate
			if base <= 0 {
				rate = minRate
				base = 1 + rate
			}
			discount := math.Pow(base, y)
			if discount == 0 {
				continue
			}
			npv += f.Amount / discount
			if y != 0 {
				dnpv -= y * f.Amount / (discount * base)
			}
		}

		if math.Abs(npv) < xirrTol {
			return rate, true
		}
		if dnpv == 0 {
			return 0, false
		}

		next := rate - npv/dnpv
		if next < minRate {
			next = minRate
		}
		if next > maxRate {
			next = maxRate
		}
		rate = next
	}

	return 0, false
}

// bisectXIRR is the fallback solver: bisection over a fixed bracket. It only
// succeeds when the NPV changes sign between the bracket ends.
func bisectXIRR(flows []CashFlow, years []float64) (float64, bool) {
	const bisectMaxIter = 200

	npvAt := func(rate float64) float64 {
		sum := 0.0
		for i, f := range flows {
			base := 1 + rate
			if base <= 0 {
				return math.NaN()
			}
			sum += f.Amount / math.Pow(base, years[i])
		}
		return sum
	}

	lo, hi := -0.99, 10.0
	npvLo, npvHi := npvAt(lo), npvAt(hi)
	if math.IsNaN(npvLo) || math.IsNaN(npvHi) || npvLo*npvHi > 0 {
		return 0, false
	}

	for iter := 0; iter < bisectMaxIter; iter++ {
		mid := (lo + hi) / 2
		npvMid := npvAt(mid)
		if math.IsNaN(npvMid) {
			return 0, false
		}
		if math.Abs(npvMid) < xirrTol {
			return mid, true
		}
		if npvMid*npvLo < 0 {
			hi = mid
		} else {
			lo = mid
			npvLo = npvMid
		}
	}

	return (lo + hi) / 2, true
}
