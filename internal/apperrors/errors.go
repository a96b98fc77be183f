package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrSessionNotFound indicates that a session with the given ID does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired indicates that the session exists but its lifetime has elapsed.
	ErrSessionExpired = errors.New("session expired")

	// ErrValuationNotSet indicates that the session has no portfolio valuation yet.
	ErrValuationNotSet = errors.New("valuation not set for session")

	// ErrBenchmarkNotFound indicates that a benchmark symbol is not tracked.
	ErrBenchmarkNotFound = errors.New("benchmark not found")
)

// Computation errors represent mathematically undefined results in the
// returns engine. They are recovered at the comparison boundary and surfaced
// as "undefined" markers, never as crashes.
var (
	// ErrNoPriorPrice indicates a price lookup for a date that precedes all
	// available benchmark history. No meaningful projection is possible, so
	// this one fails the whole computation.
	ErrNoPriorPrice = errors.New("no price on or before requested date")

	// ErrNoConvergence indicates the rate solver could not bracket a sign
	// change or converge within its iteration budget.
	ErrNoConvergence = errors.New("rate solver did not converge")

	// ErrInvalidPeriod indicates a non-positive elapsed time or non-positive
	// base value passed to the growth-rate calculation.
	ErrInvalidPeriod = errors.New("invalid period for growth rate")

	// ErrNoCashFlows indicates that no qualifying buy rows were found in the
	// uploaded trade history.
	ErrNoCashFlows = errors.New("no qualifying cash flows")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidTradeType indicates an unrecognised trade action in an import row.
	ErrInvalidTradeType = errors.New("invalid trade type")

	// ErrInvalidSessionToken indicates a missing, malformed, or expired session token.
	ErrInvalidSessionToken = errors.New("invalid session token")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These indicate that an operation failed, but not due to
// missing entities or validation issues.
var (
	// Session operation errors
	ErrFailedToCreateSession   = errors.New("failed to create session")
	ErrFailedToRetrieveSession = errors.New("failed to retrieve session")

	// Trade import errors
	ErrFailedToImportTrades   = errors.New("failed to import trades")
	ErrFailedToRetrieveTrades = errors.New("failed to retrieve trades")
	ErrInvalidCSVHeaders      = errors.New("invalid CSV headers")

	// Benchmark operation errors
	ErrFailedToRetrievePrices = errors.New("failed to retrieve benchmark prices")
	ErrFailedToRefreshPrices  = errors.New("failed to refresh benchmark prices")
	ErrFailedToStoreValuation = errors.New("failed to store valuation")
	ErrFailedToComputeReturns = errors.New("failed to compute returns")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)
