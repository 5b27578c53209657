package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aussiebroadwan/leadcapture/pkg/idx"
)

// DefaultTokenTTL is how long an administrator token lasts when none is configured.
const DefaultTokenTTL = 24 * time.Hour

// AdminClaims are carried by the bearer tokens the lead API hands out on login.
type AdminClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email,omitempty"`
}

// NewAdminClaims stamps a token for the administrator identified by subject and
// email, valid for ttl from issuedAt. The token id is a fresh ULID.
func NewAdminClaims(subject, email, issuer string, ttl time.Duration, issuedAt time.Time) AdminClaims {
	return AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			ID:        idx.NewAt(issuedAt).String(),
		},
		Email: email,
	}
}

// Policy is what a verifier insists on beyond a good signature. Empty fields
// are not enforced.
type Policy struct {
	Issuer   string
	Audience []string
	Leeway   time.Duration
}

// Check applies p to the claims as of now.
func (c *AdminClaims) Check(p Policy, now time.Time) error {
	if p.Issuer != "" && c.Issuer != p.Issuer {
		return ErrIssuer
	}
	if len(p.Audience) > 0 && !slices.ContainsFunc(p.Audience, func(want string) bool {
		return slices.Contains(c.Audience, want)
	}) {
		return ErrAudience
	}
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(p.Leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-p.Leeway)) {
		return ErrNotYetValid
	}
	return nil
}
