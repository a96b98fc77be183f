package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/benchfolio/backend/internal/api/request"
	"github.com/benchfolio/backend/internal/api/response"
	"github.com/benchfolio/backend/internal/apperrors"
	"github.com/benchfolio/backend/internal/service"
	"github.com/benchfolio/backend/internal/validation"
)

// ValuationHandler handles HTTP requests for the valuation endpoint.
type ValuationHandler struct {
	sessionService *service.SessionService
}

// NewValuationHandler creates a new ValuationHandler with the provided service dependency.
func NewValuationHandler(sessionService *service.SessionService) *ValuationHandler {
	return &ValuationHandler{
		sessionService: sessionService,
	}
}

// SetValuation handles PUT requests to store the user-supplied market value
// snapshot for a session. Submitting again overwrites the previous valuation.
//
// Endpoint: PUT /api/session/{uuid}/valuation
// Request Body: SetValuationRequest (date, marketValue)
// Response: 200 OK with Valuation
// Error: 400 Bad Request if session ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if the session does not exist
// Error: 500 Internal Server Error if the update fails
func (h *ValuationHandler) SetValuation(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.SetValuationRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSetValuation(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	valuation, err := h.sessionService.SetValuation(r.Context(), sessionID, req.Date, req.MarketValue)
	if err != nil {
		if errors.Is(err, apperrors.ErrSessionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSessionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToStoreValuation.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, valuation)
}
