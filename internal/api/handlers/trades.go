package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/benchfolio/backend/internal/api/response"
	"github.com/benchfolio/backend/internal/apperrors"
	"github.com/benchfolio/backend/internal/service"
)

// maxUploadBytes caps trade-history uploads. Real exports are a few hundred
// kilobytes at most.
const maxUploadBytes = 10 << 20

// TradeHandler handles HTTP requests for trade-history endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the importService.
type TradeHandler struct {
	importService *service.ImportService
}

// NewTradeHandler creates a new TradeHandler with the provided service dependency.
func NewTradeHandler(importService *service.ImportService) *TradeHandler {
	return &TradeHandler{
		importService: importService,
	}
}

// ImportTrades handles POST requests to upload a trade-history CSV for a
// session. Accepts either a multipart form with a "file" field or a raw CSV
// body. Re-uploading replaces the session's previously imported trades.
//
// Endpoint: POST /api/session/{uuid}/trades
// Response: 200 OK with ImportSummary
// Error: 400 Bad Request if session ID is invalid (validated by middleware) or headers are malformed
// Error: 500 Internal Server Error if the import fails
func (h *TradeHandler) ImportTrades(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "uuid")

	body, err := uploadReader(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid upload", err.Error())
		return
	}
	defer body.Close()

	summary, err := h.importService.ImportTrades(r.Context(), sessionID, body)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCSVHeaders) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidCSVHeaders.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToImportTrades.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// ListTrades handles GET requests to retrieve all imported trades for a
// session, ordered by date.
//
// Endpoint: GET /api/session/{uuid}/trades
// Response: 200 OK with array of Trade
// Error: 400 Bad Request if session ID is invalid (validated by middleware)
// Error: 500 Internal Server Error if retrieval fails
func (h *TradeHandler) ListTrades(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "uuid")

	trades, err := h.importService.GetTrades(sessionID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTrades.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, trades)
}

// uploadReader extracts the CSV stream from the request: the "file" part of
// a multipart form when present, otherwise the raw body.
func uploadReader(r *http.Request) (io.ReadCloser, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err == nil {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		return file, nil
	}

	return r.Body, nil
}
