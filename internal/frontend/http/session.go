package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/domain"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/service"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/state"
	"github.com/aussiebroadwan/leadcapture/pkg/slogx"
)

const (
	sessionCookieName = "leadfront_session"
	csrfFieldName     = "csrf_token"
)

type ctxKeyAgent struct{}

// agent is everything a handler needs about the browser it is serving.
type agent struct {
	Session domain.Session
	State   *state.AppState
	Tokens  *service.TokenVault
}

func agentFromContext(ctx context.Context) *agent {
	a, _ := ctx.Value(ctxKeyAgent{}).(*agent)
	return a
}

// withSession resolves the session cookie, starting a new session when the
// cookie is missing, unknown or expired, and attaches the agent to the context.
func (r *Router) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		logger := slogx.FromContext(ctx)

		sess, err := r.resolveSession(req)
		if err != nil {
			logger.Error("failed to establish session", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    sess.ID,
			Path:     "/",
			Expires:  sess.ExpiresAt,
			HttpOnly: true,
			Secure:   r.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})

		tokens := service.NewTokenVault(r.store, r.sealer, sess.ID)
		st, created := r.registry.Get(sess.ID)
		if created {
			st.Restore(ctx, tokens)
			r.metrics.SetActiveSessions(r.registry.Len())
		}

		ctx = slogx.With(ctx, "session_id", sess.ID)
		ctx = context.WithValue(ctx, ctxKeyAgent{}, &agent{
			Session: sess,
			State:   st,
			Tokens:  tokens,
		})
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func (r *Router) resolveSession(req *http.Request) (domain.Session, error) {
	ctx := req.Context()

	if c, err := req.Cookie(sessionCookieName); err == nil {
		sess, err := r.SessionService.Resolve(ctx, c.Value)
		switch {
		case err == nil:
			return sess, nil
		case errors.Is(err, service.ErrSessionExpired):
			r.registry.Drop(c.Value)
		case errors.Is(err, service.ErrSessionNotFound):
		default:
			return domain.Session{}, err
		}
	}

	sess, err := r.SessionService.Create(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	slogx.FromContext(ctx).Debug("session started", "session_id", sess.ID)
	return sess, nil
}

// requireCSRF rejects state-changing requests without the session's token.
func (r *Router) requireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodGet || req.Method == http.MethodHead {
			next.ServeHTTP(w, req)
			return
		}

		a := agentFromContext(req.Context())
		if a == nil || !r.SessionService.CheckCSRF(a.Session, req.PostFormValue(csrfFieldName)) {
			slogx.FromContext(req.Context()).Warn("csrf token mismatch", "path", req.URL.Path)
			http.Error(w, "Invalid or missing form token. Reload the page and try again.", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// requireAuth sends anonymous agents to the login page.
func (r *Router) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		a := agentFromContext(req.Context())
		if a == nil || !a.State.Auth.IsAuthenticated() {
			http.Redirect(w, req, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, req)
	})
}
