package handlers

import (
	"net/http"

	"github.com/benchfolio/backend/internal/api/response"
	"github.com/benchfolio/backend/internal/apperrors"
	"github.com/benchfolio/backend/internal/service"
)

// BenchmarkHandler handles HTTP requests for benchmark endpoints.
type BenchmarkHandler struct {
	benchmarkService *service.BenchmarkService
}

// NewBenchmarkHandler creates a new BenchmarkHandler with the provided service dependency.
func NewBenchmarkHandler(benchmarkService *service.BenchmarkService) *BenchmarkHandler {
	return &BenchmarkHandler{
		benchmarkService: benchmarkService,
	}
}

// ListBenchmarks handles GET requests to retrieve all tracked benchmarks.
//
// Endpoint: GET /api/benchmark
// Response: 200 OK with array of Benchmark
// Error: 500 Internal Server Error if retrieval fails
func (h *BenchmarkHandler) ListBenchmarks(w http.ResponseWriter, _ *http.Request) {
	benchmarks, err := h.benchmarkService.ListBenchmarks()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, benchmarks)
}

// RefreshPrices handles POST requests to refresh the latest closes for every
// tracked benchmark. The same refresh runs daily on the scheduler; this
// endpoint exists for manual catch-up.
//
// Endpoint: POST /api/benchmark/refresh
// Response: 204 No Content on success
// Error: 500 Internal Server Error if any refresh fails
func (h *BenchmarkHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	if err := h.benchmarkService.RefreshAll(r.Context()); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshPrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
