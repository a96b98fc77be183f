package returns

import (
	"sort"

	"github.com/benchfolio/backend/internal/apperrors"
	"github.com/benchfolio/backend/internal/model"
)

// ExtractCashFlows converts imported trade rows into the ordered cash-flow
// series used by the rate solver. Only buy rows qualify: they become negative
// flows (capital leaving the investor). Sells, dividends, fees, and transfers
// are filtered out rather than modelled, so exclusion is not an error.
//
// Same-day trades are kept as separate flows. The XIRR sum is linear in its
// flows, so intra-day netting would not change the solved rate; preserving
// the rows keeps the audit list faithful to the upload.
//
// The result is sorted non-decreasing by date with a stable sort, so
// same-day rows keep their input order. Returns ErrNoCashFlows when no buy
// rows are present.
func ExtractCashFlows(trades []model.Trade) ([]CashFlow, error) {
	flows := make([]CashFlow, 0, len(trades))
	for _, t := range trades {
		switch t.Type {
		case model.TradeBuy:
			amount := t.Amount
			if amount > 0 {
				// Some exports report buy amounts unsigned.
				amount = -amount
			}
			flows = append(flows, CashFlow{Date: day(t.Date), Amount: amount})
		case model.TradeSell, model.TradeDividend, model.TradeFee, model.TradeTransfer, model.TradeOther:
			// Not capital movement for return purposes.
		}
	}

	if len(flows) == 0 {
		return nil, apperrors.ErrNoCashFlows
	}

	sort.SliceStable(flows, func(i, j int) bool {
		return flows[i].Date.Before(flows[j].Date)
	})
	return flows, nil
}

// TotalInvested sums the absolute value of all negative flows, i.e. the cash
// the investor put in.
func TotalInvested(flows []CashFlow) float64 {
	total := 0.0
	for _, f := range flows {
		if f.Amount < 0 {
			total -= f.Amount
		}
	}
	return total
}
