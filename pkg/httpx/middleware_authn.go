package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/leadcapture/pkg/slogx"
)

// TokenVerifier validates a raw bearer token and returns its subject.
type TokenVerifier interface {
	Verify(raw string) (subject string, err error)
}

// TokenVerifierFunc adapts a plain function to TokenVerifier.
type TokenVerifierFunc func(raw string) (string, error)

func (f TokenVerifierFunc) Verify(raw string) (string, error) { return f(raw) }

// DenyFunc writes the response for a request that failed authentication.
type DenyFunc func(w http.ResponseWriter, r *http.Request, desc string)

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	return raw, raw != ""
}

// AuthnMiddleware rejects requests without a valid bearer token. deny may be
// nil, in which case an RFC 6750 challenge is written.
func AuthnMiddleware(v TokenVerifier, deny DenyFunc) Middleware {
	if deny == nil {
		deny = writeBearerError
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := BearerToken(r)
			if !ok {
				deny(w, r, "missing bearer token")
				return
			}

			subject, err := v.Verify(raw)
			if err != nil {
				log.Warn("bearer verify failed", "error", err)
				deny(w, r, "token verification failed")
				return
			}

			ctx = context.WithValue(ctx, CtxKeySubject, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, _ *http.Request, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
