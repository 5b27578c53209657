package state

import (
	"context"
	"sync"

	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
)

// Auth is the two-state login flag of one user agent. It has no notion of
// expiry; a stale token only surfaces as a failed API call.
type Auth struct {
	mu            sync.RWMutex
	authenticated bool
}

func (a *Auth) Login() {
	a.mu.Lock()
	a.authenticated = true
	a.mu.Unlock()
}

func (a *Auth) Logout() {
	a.mu.Lock()
	a.authenticated = false
	a.mu.Unlock()
}

func (a *Auth) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.authenticated
}

// Restore derives the flag from the token store, so a persisted token keeps
// the user signed in across restarts.
func (a *Auth) Restore(ctx context.Context, tokens leadsdk.TokenStore) {
	tok, err := tokens.Token(ctx)

	a.mu.Lock()
	a.authenticated = err == nil && tok != ""
	a.mu.Unlock()
}
