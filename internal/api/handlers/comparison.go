package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/benchfolio/backend/internal/api/response"
	"github.com/benchfolio/backend/internal/apperrors"
	"github.com/benchfolio/backend/internal/config"
	"github.com/benchfolio/backend/internal/service"
)

// ComparisonHandler handles HTTP requests for the comparison endpoint.
// It serves as the HTTP layer adapter, parsing requests and delegating
// the computation to the comparisonService.
type ComparisonHandler struct {
	comparisonService *service.ComparisonService
	defaultSymbol     string
}

// NewComparisonHandler creates a new ComparisonHandler with the provided
// service dependency and benchmark configuration.
func NewComparisonHandler(comparisonService *service.ComparisonService, cfg config.BenchmarkConfig) *ComparisonHandler {
	return &ComparisonHandler{
		comparisonService: comparisonService,
		defaultSymbol:     cfg.DefaultSymbol,
	}
}

// Compare handles GET requests to compute portfolio-versus-benchmark returns
// for a session. The benchmark symbol comes from the "symbol" query
// parameter, falling back to the configured default.
//
// Endpoint: GET /api/session/{uuid}/comparison?symbol=^GSPC
// Response: 200 OK with ComparisonResult
// Error: 400 Bad Request if session ID is invalid (validated by middleware)
// Error: 404 Not Found if the session does not exist or the benchmark is untracked
// Error: 409 Conflict if no valuation has been submitted yet
// Error: 422 Unprocessable Entity if a trade predates available price history
// Error: 500 Internal Server Error if the computation fails
func (h *ComparisonHandler) Compare(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "uuid")

	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		symbol = h.defaultSymbol
	}

	result, err := h.comparisonService.Compare(r.Context(), sessionID, symbol)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSessionNotFound), errors.Is(err, apperrors.ErrSessionExpired):
			response.RespondError(w, http.StatusNotFound, err.Error(), "")
		case errors.Is(err, apperrors.ErrBenchmarkNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrBenchmarkNotFound.Error(), symbol)
		case errors.Is(err, apperrors.ErrValuationNotSet):
			response.RespondError(w, http.StatusConflict, apperrors.ErrValuationNotSet.Error(), "")
		case errors.Is(err, apperrors.ErrNoPriorPrice):
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrNoPriorPrice.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeReturns.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
