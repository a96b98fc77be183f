package returns

import (
	"math"

	"github.com/benchfolio/backend/internal/apperrors"
)

// CAGR computes the compound annual growth rate of a single lump-sum
// investment: (final/initial)^(1/years) - 1.
//
// Returns ErrInvalidPeriod when years or initial is non-positive (no root of
// a non-positive base over zero or negative time), or when final is negative,
// which cannot occur for a market value.
func CAGR(initial, final, years float64) (float64, error) {
	if years <= 0 || initial <= 0 || final < 0 {
		return 0, apperrors.ErrInvalidPeriod
	}
	return math.Pow(final/initial, 1/years) - 1, nil
}
