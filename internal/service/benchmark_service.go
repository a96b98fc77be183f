package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/benchfolio/backend/internal/model"
	"github.com/benchfolio/backend/internal/repository"
	"github.com/benchfolio/backend/internal/returns"
	"github.com/benchfolio/backend/internal/yahoo"
)

// BenchmarkService maintains the benchmark price store and serves price
// series to the comparison pipeline. Missing history is backfilled on demand
// from Yahoo Finance; a scheduled refresh keeps recent closes current.
type BenchmarkService struct {
	benchmarkRepo *repository.BenchmarkRepository
	yahooClient   yahoo.Client
}

// NewBenchmarkService creates a new BenchmarkService with the provided
// repository and Yahoo client dependencies.
func NewBenchmarkService(benchmarkRepo *repository.BenchmarkRepository, yahooClient yahoo.Client) *BenchmarkService {
	return &BenchmarkService{
		benchmarkRepo: benchmarkRepo,
		yahooClient:   yahooClient,
	}
}

// ListBenchmarks returns all tracked benchmarks.
func (s *BenchmarkService) ListBenchmarks() ([]model.Benchmark, error) {
	return s.benchmarkRepo.ListBenchmarks()
}

// EnsureCoverage makes sure daily closes for the symbol are stored for the
// inclusive range [startDate, endDate], backfilling from Yahoo Finance when
// the stored range falls short. Returns apperrors.ErrBenchmarkNotFound for
// untracked symbols.
func (s *BenchmarkService) EnsureCoverage(ctx context.Context, symbol string, startDate, endDate time.Time) error {
	if _, err := s.benchmarkRepo.GetBenchmark(symbol); err != nil {
		return err
	}

	earliest, latest, ok, err := s.benchmarkRepo.GetCoverage(symbol)
	if err != nil {
		return err
	}
	if ok && !startDate.Before(earliest) && !endDate.After(latest) {
		return nil
	}

	return s.backfill(ctx, symbol, startDate, endDate)
}

// backfill fetches the full requested range and upserts it; overlap with
// already-stored rows is harmless.
func (s *BenchmarkService) backfill(ctx context.Context, symbol string, startDate, endDate time.Time) error {
	// The chart API treats period2 as exclusive.
	resp, err := s.yahooClient.QueryYahooSymbolByDateRange(symbol, startDate, endDate.AddDate(0, 0, 1))
	if err != nil {
		return fmt.Errorf("failed to fetch prices for %s: %w", symbol, err)
	}
	chart, err := s.yahooClient.ParseChart(resp)
	if err != nil {
		return fmt.Errorf("failed to parse prices for %s: %w", symbol, err)
	}

	return s.storeChart(ctx, symbol, chart)
}

// Refresh fetches the most recent closes for one benchmark.
func (s *BenchmarkService) Refresh(ctx context.Context, symbol string) error {
	resp, err := s.yahooClient.QueryYahooFiveDaySymbol(symbol)
	if err != nil {
		return fmt.Errorf("failed to refresh prices for %s: %w", symbol, err)
	}
	chart, err := s.yahooClient.ParseChart(resp)
	if err != nil {
		return fmt.Errorf("failed to parse refresh for %s: %w", symbol, err)
	}

	return s.storeChart(ctx, symbol, chart)
}

// RefreshAll refreshes every tracked benchmark concurrently. Intended to run
// on the daily schedule; failures are joined so one bad symbol does not hide
// the others.
func (s *BenchmarkService) RefreshAll(ctx context.Context) error {
	benchmarks, err := s.benchmarkRepo.ListBenchmarks()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, b := range benchmarks {
		b := b
		g.Go(func() error {
			if err := s.Refresh(ctx, b.Symbol); err != nil {
				log.Printf("benchmark refresh failed for %s: %v", b.Symbol, err)
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// PriceSeries loads the stored closes for the inclusive range and builds the
// immutable series consumed by the returns engine.
func (s *BenchmarkService) PriceSeries(symbol string, startDate, endDate time.Time) (*returns.PriceSeries, error) {
	prices, err := s.benchmarkRepo.GetPrices(symbol, startDate, endDate)
	if err != nil {
		return nil, err
	}

	points := make([]returns.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = returns.PricePoint{Date: p.Date, Price: p.Price}
	}
	return returns.NewPriceSeries(points), nil
}

// storeChart converts a parsed chart into price rows and upserts them,
// dropping zero closes (Yahoo pads halted days with zeros).
func (s *BenchmarkService) storeChart(ctx context.Context, symbol string, chart yahoo.PriceChart) error {
	prices := make([]model.BenchmarkPrice, 0, len(chart.Indicators))
	for _, ind := range chart.Indicators {
		if ind.PriceClose <= 0 {
			continue
		}
		prices = append(prices, model.BenchmarkPrice{
			ID:     uuid.New().String(),
			Symbol: symbol,
			Date:   ind.Date,
			Price:  ind.PriceClose,
		})
	}
	return s.benchmarkRepo.UpsertPrices(ctx, prices)
}
