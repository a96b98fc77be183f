package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/benchfolio/backend/internal/api/response"
	"github.com/benchfolio/backend/internal/apperrors"
	"github.com/benchfolio/backend/internal/service"
)

// NewSessionTokenMiddleware returns middleware that requires a valid session
// bearer token whose encoded session ID matches the uuid URL parameter. The
// token is the only credential for a session, so a mismatch is treated the
// same as a missing token.
//
// Expects: Authorization: Bearer <token>
// Returns 401 Unauthorized when the token is missing, invalid, or scoped to
// a different session.
func NewSessionTokenMiddleware(sessionService *service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				response.RespondError(w, http.StatusUnauthorized, "session token is required", "")
				return
			}

			sessionID, err := sessionService.VerifyToken(token)
			if err != nil {
				response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidSessionToken.Error(), "")
				return
			}

			if sessionID != chi.URLParam(r, "uuid") {
				response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidSessionToken.Error(), "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}
