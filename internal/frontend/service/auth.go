package service

import (
	"context"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/metrics"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/state"
	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
)

// AuthService signs a user agent in and out.
type AuthService struct {
	Client  *leadsdk.Client
	Metrics *metrics.Collector
}

// Login authenticates against the API with tokens as the agent's storage.
// Only a successful login flips the auth flag; on failure the state is left
// exactly as it was and the result carries the message to show.
func (s *AuthService) Login(
	ctx context.Context,
	st *state.AppState,
	tokens leadsdk.TokenStore,
	email, password string,
) leadsdk.Result[string] {
	client := s.Client.WithTokens(tokens)
	res := observe(s.Metrics, "login", func() leadsdk.Result[string] {
		return client.Login(ctx, email, password)
	})

	if res.Success {
		st.Auth.Login()
	}
	return res
}

// Logout forgets the token and resets the agent's state, even when the token
// could not be cleared.
func (s *AuthService) Logout(ctx context.Context, st *state.AppState, tokens leadsdk.TokenStore) leadsdk.Result[struct{}] {
	res := s.Client.WithTokens(tokens).Logout(ctx)
	st.Reset()
	return res
}
