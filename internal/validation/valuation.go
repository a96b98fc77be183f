package validation

import (
	"strings"
	"time"

	"github.com/benchfolio/backend/internal/api/request"
)

// ValidateSetValuation validates a valuation submission.
//
// Required fields:
//   - date: Must be in YYYY-MM-DD format
//   - marketValue: Must be non-negative (zero means a fully liquidated account)
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateSetValuation(req request.SetValuationRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if req.MarketValue < 0 {
		errors["marketValue"] = "marketValue must be non-negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
