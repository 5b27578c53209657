package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/store"
	"github.com/aussiebroadwan/leadcapture/pkg/cryptox"
	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
	"github.com/aussiebroadwan/leadcapture/pkg/slogx"
)

// TokenVault is a leadsdk.TokenStore bound to one session. The token is kept
// under leadsdk.TokenStorageKey, sealed with the master key.
type TokenVault struct {
	Store     store.Store
	Sealer    *cryptox.Sealer
	SessionID string
}

func NewTokenVault(st store.Store, sealer *cryptox.Sealer, sessionID string) *TokenVault {
	return &TokenVault{Store: st, Sealer: sealer, SessionID: sessionID}
}

// Token returns the stored token. A token sealed under a different master
// key (an ephemeral key from a previous run) is dropped and reported as
// leadsdk.ErrNoToken, so the user is simply asked to log in again.
func (v *TokenVault) Token(ctx context.Context) (string, error) {
	sealed, err := v.Store.Values().GetValue(ctx, v.SessionID, leadsdk.TokenStorageKey)
	if errors.Is(err, store.ErrNotFound) {
		return "", leadsdk.ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}

	plain, err := v.Sealer.Open(sealed)
	if err != nil {
		slogx.FromContext(ctx).Warn("discarding unreadable token", "session_id", v.SessionID, "error", err)
		_ = v.ClearToken(ctx)
		return "", leadsdk.ErrNoToken
	}
	return string(plain), nil
}

func (v *TokenVault) SetToken(ctx context.Context, token string) error {
	sealed, err := v.Sealer.Seal([]byte(token))
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	return v.Store.Values().PutValue(ctx, v.SessionID, leadsdk.TokenStorageKey, sealed)
}

func (v *TokenVault) ClearToken(ctx context.Context) error {
	return v.Store.Values().DeleteValue(ctx, v.SessionID, leadsdk.TokenStorageKey)
}
