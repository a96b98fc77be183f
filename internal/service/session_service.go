package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"

	"github.com/benchfolio/backend/internal/apperrors"
	"github.com/benchfolio/backend/internal/config"
	"github.com/benchfolio/backend/internal/model"
	"github.com/benchfolio/backend/internal/repository"
)

// SessionService handles upload-session lifecycle: creation, token
// verification, valuation updates, and expiry.
//
// Session tokens are fernet-encrypted session IDs. The token is the only
// credential for a session, which keeps uploads isolated per client without
// any user accounts.
type SessionService struct {
	sessionRepo *repository.SessionRepository
	key         *fernet.Key
	ttl         time.Duration
}

// NewSessionService creates a new SessionService. When cfg.FernetKey is
// empty a fresh key is generated, which invalidates outstanding tokens on
// restart; set SESSION_FERNET_KEY in production to avoid that.
func NewSessionService(sessionRepo *repository.SessionRepository, cfg config.SessionConfig) (*SessionService, error) {
	var key *fernet.Key
	if cfg.FernetKey != "" {
		decoded, err := fernet.DecodeKey(cfg.FernetKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode session fernet key: %w", err)
		}
		key = decoded
	} else {
		key = &fernet.Key{}
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate session fernet key: %w", err)
		}
	}

	return &SessionService{
		sessionRepo: sessionRepo,
		key:         key,
		ttl:         cfg.TTL,
	}, nil
}

// CreateSession creates a new upload session and returns it together with
// its bearer token.
func (s *SessionService) CreateSession(ctx context.Context) (model.Session, string, error) {
	now := time.Now().UTC()
	session := model.Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.sessionRepo.InsertSession(ctx, &session); err != nil {
		return model.Session{}, "", fmt.Errorf("failed to create session: %w", err)
	}

	token, err := fernet.EncryptAndSign([]byte(session.ID), s.key)
	if err != nil {
		return model.Session{}, "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return session, string(token), nil
}

// VerifyToken checks a bearer token and returns the session ID it encodes.
// Returns apperrors.ErrInvalidSessionToken for malformed, forged, or aged-out
// tokens.
func (s *SessionService) VerifyToken(token string) (string, error) {
	msg := fernet.VerifyAndDecrypt([]byte(token), s.ttl, []*fernet.Key{s.key})
	if msg == nil {
		return "", apperrors.ErrInvalidSessionToken
	}
	return string(msg), nil
}

// GetSession retrieves a session by ID, rejecting expired ones.
func (s *SessionService) GetSession(id string) (model.Session, error) {
	session, err := s.sessionRepo.GetSession(id)
	if err != nil {
		return model.Session{}, err
	}
	if time.Now().UTC().After(session.ExpiresAt) {
		return model.Session{}, apperrors.ErrSessionExpired
	}
	return session, nil
}

// SetValuation stores the user-supplied mark-to-market snapshot. The date
// must parse as YYYY-MM-DD and the market value must be non-negative; those
// checks live in the validation layer, this method only persists.
func (s *SessionService) SetValuation(ctx context.Context, id string, dateStr string, marketValue float64) (model.Valuation, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return model.Valuation{}, fmt.Errorf("failed to parse valuation date: %w", err)
	}
	if marketValue < 0 {
		return model.Valuation{}, apperrors.ErrNegativeAmount
	}

	valuation := model.Valuation{Date: date.UTC(), MarketValue: marketValue}
	if err := s.sessionRepo.SetValuation(ctx, id, valuation); err != nil {
		return model.Valuation{}, err
	}
	return valuation, nil
}

// PurgeExpired deletes all expired sessions and their trades.
// Run periodically from the scheduler.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx, time.Now().UTC())
}
