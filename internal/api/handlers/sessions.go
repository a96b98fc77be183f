package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/benchfolio/backend/internal/api/response"
	"github.com/benchfolio/backend/internal/apperrors"
	"github.com/benchfolio/backend/internal/model"
	"github.com/benchfolio/backend/internal/service"
)

// SessionHandler handles HTTP requests for upload-session endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the sessionService.
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new SessionHandler with the provided service dependency.
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// CreateSessionResponse pairs a new session with its bearer token. The token
// is only ever returned here; clients must keep it to access the session.
type CreateSessionResponse struct {
	Session model.Session `json:"session"`
	Token   string        `json:"token"`
}

// CreateSession handles POST requests to open a new upload session.
//
// Endpoint: POST /api/session
// Response: 201 Created with CreateSessionResponse
// Error: 500 Internal Server Error if creation fails
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, token, err := h.sessionService.CreateSession(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCreateSession.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, CreateSessionResponse{
		Session: session,
		Token:   token,
	})
}

// GetSession handles GET requests to retrieve a session by ID.
//
// Endpoint: GET /api/session/{uuid}
// Response: 200 OK with Session
// Error: 400 Bad Request if session ID is invalid (validated by middleware)
// Error: 404 Not Found if the session does not exist or has expired
// Error: 500 Internal Server Error if retrieval fails
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "uuid")

	session, err := h.sessionService.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSessionNotFound) || errors.Is(err, apperrors.ErrSessionExpired) {
			response.RespondError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSession.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, session)
}
