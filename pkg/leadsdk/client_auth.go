package leadsdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Login exchanges credentials for a bearer token and stores it. Data is the
// token on success.
func (c *Client) Login(ctx context.Context, email, password string) Result[string] {
	const op = "login"

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/login",
		LoginRequest{Email: email, Password: password}, nil)
	if err != nil {
		return fail[string](ctx, op, MsgLoginFailed, err)
	}

	env, err := decodeEnvelope[string](resp)
	if err != nil {
		return fail[string](ctx, op, MsgLoginFailed, err)
	}

	if env.Data == "" {
		return fail[string](ctx, op, MsgLoginFailed, errors.New("login succeeded without a token"))
	}

	if err := c.Tokens.SetToken(ctx, env.Data); err != nil {
		return fail[string](ctx, op, MsgLoginFailed, fmt.Errorf("failed to store token: %w", err))
	}

	return succeed(env.Message, env.Data)
}

// Logout forgets the stored token. The API has no logout endpoint, so this
// never touches the network.
func (c *Client) Logout(ctx context.Context) Result[struct{}] {
	if err := c.Tokens.ClearToken(ctx); err != nil {
		return fail[struct{}](ctx, "logout", MsgLogoutFailed, err)
	}
	return succeed("Logged out", struct{}{})
}

// Authenticated reports whether a token is currently stored.
func (c *Client) Authenticated(ctx context.Context) bool {
	token, err := c.Tokens.Token(ctx)
	return err == nil && token != ""
}
