package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/domain"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/store"
	"github.com/aussiebroadwan/leadcapture/pkg/cryptox"
	"github.com/aussiebroadwan/leadcapture/pkg/idx"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// DefaultSessionTTL is the sliding lifetime of a browser session.
const DefaultSessionTTL = 24 * time.Hour

// cliSessionTTL keeps the command line session out of housekeeping's way.
const cliSessionTTL = 100 * 365 * 24 * time.Hour

// SessionService creates and resolves browser sessions. Every resolve slides
// the expiry forward by TTL.
type SessionService struct {
	Store store.Store
	TTL   time.Duration
	Now   func() time.Time
}

func NewSessionService(st store.Store, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{Store: st, TTL: ttl, Now: time.Now}
}

// Create starts a new anonymous session with a fresh CSRF token.
func (s *SessionService) Create(ctx context.Context) (domain.Session, error) {
	now := s.Now().UTC()

	csrf, err := cryptox.GenerateToken(cryptox.CSRFTokenSize)
	if err != nil {
		return domain.Session{}, fmt.Errorf("generate csrf token: %w", err)
	}

	sess := domain.Session{
		ID:         idx.NewAt(now).String(),
		CSRFToken:  csrf,
		CreatedAt:  now,
		LastSeenAt: now,
		ExpiresAt:  now.Add(s.TTL),
	}
	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		return domain.Session{}, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Resolve loads the session for a cookie value. Malformed and unknown ids
// give ErrSessionNotFound; an expired session is deleted and gives
// ErrSessionExpired.
func (s *SessionService) Resolve(ctx context.Context, id string) (domain.Session, error) {
	if !idx.Valid(id) {
		return domain.Session{}, ErrSessionNotFound
	}

	sess, err := s.Store.Sessions().GetSession(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}

	now := s.Now().UTC()
	if sess.Expired(now) {
		_ = s.Store.Sessions().DeleteSession(ctx, id)
		return domain.Session{}, ErrSessionExpired
	}

	sess.LastSeenAt = now
	sess.ExpiresAt = now.Add(s.TTL)
	if err := s.Store.Sessions().TouchSession(ctx, id, sess.LastSeenAt, sess.ExpiresAt); err != nil {
		return domain.Session{}, fmt.Errorf("touch session: %w", err)
	}
	return sess, nil
}

// Destroy removes a session and everything stored under it.
func (s *SessionService) Destroy(ctx context.Context, id string) error {
	return s.Store.Sessions().DeleteSession(ctx, id)
}

// EnsureCLI makes sure the fixed command line session exists.
func (s *SessionService) EnsureCLI(ctx context.Context) error {
	_, err := s.Store.Sessions().GetSession(ctx, domain.CLISessionID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	now := s.Now().UTC()
	err = s.Store.Sessions().CreateSession(ctx, domain.Session{
		ID:         domain.CLISessionID,
		CSRFToken:  cryptox.MustGenerateToken(cryptox.CSRFTokenSize),
		CreatedAt:  now,
		LastSeenAt: now,
		ExpiresAt:  now.Add(cliSessionTTL),
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return nil
	}
	return err
}

// CheckCSRF reports whether token matches the session's CSRF token.
func (s *SessionService) CheckCSRF(sess domain.Session, token string) bool {
	return cryptox.EqualTokens(sess.CSRFToken, token)
}
