package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/benchfolio/backend/internal/config"
	"github.com/benchfolio/backend/internal/repository"
	"github.com/benchfolio/backend/internal/service"
	"github.com/benchfolio/backend/internal/yahoo"
)

func NewTestSessionService(t *testing.T, db *sql.DB) *service.SessionService {
	t.Helper()

	sessionRepo := repository.NewSessionRepository(db)

	svc, err := service.NewSessionService(sessionRepo, config.SessionConfig{
		TTL: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("Failed to create test session service: %v", err)
	}
	return svc
}

func NewTestImportService(t *testing.T, db *sql.DB) *service.ImportService {
	t.Helper()

	tradeRepo := repository.NewTradeRepository(db)

	return service.NewImportService(tradeRepo)
}

func NewTestBenchmarkService(t *testing.T, db *sql.DB) *service.BenchmarkService {
	t.Helper()

	return NewTestBenchmarkServiceWithMockYahoo(t, db, NewMockYahooClient())
}

func NewTestBenchmarkServiceWithMockYahoo(t *testing.T, db *sql.DB, mockYahoo yahoo.Client) *service.BenchmarkService {
	t.Helper()

	benchmarkRepo := repository.NewBenchmarkRepository(db)

	return service.NewBenchmarkService(benchmarkRepo, mockYahoo)
}

func NewTestComparisonService(t *testing.T, db *sql.DB) *service.ComparisonService {
	t.Helper()

	return service.NewComparisonService(
		NewTestSessionService(t, db),
		NewTestImportService(t, db),
		NewTestBenchmarkService(t, db),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a unique ID for test fixtures.
func MakeID() string {
	return uuid.New().String()
}
