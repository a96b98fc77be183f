package request

// SetValuationRequest is the body of a valuation submission: the user's
// statement of what the account is worth on a given date.
type SetValuationRequest struct {
	Date        string  `json:"date"`
	MarketValue float64 `json:"marketValue"`
}
