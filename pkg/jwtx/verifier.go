package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrAudience    = errors.New("jwtx: audience mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrInvalid     = errors.New("jwtx: invalid token")
)

// HS256Verifier validates tokens signed by an HS256Signer with the same secret.
type HS256Verifier struct {
	secret []byte
	policy Policy
	clock  func() time.Time
}

// NewVerifierHS256 creates a verifier enforcing policy. clock may be nil to use
// the wall clock.
func NewVerifierHS256(secret []byte, policy Policy, clock func() time.Time) *HS256Verifier {
	if clock == nil {
		clock = time.Now
	}
	return &HS256Verifier{
		secret: append([]byte(nil), secret...),
		policy: policy,
		clock:  clock,
	}
}

// Verify checks the signature of tokenStr, then its claims against the policy.
func (v *HS256Verifier) Verify(tokenStr string) (AdminClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims AdminClaims
	if _, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}); err != nil {
		return AdminClaims{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if err := claims.Check(v.policy, v.clock()); err != nil {
		return AdminClaims{}, err
	}
	return claims, nil
}

// Subject verifies raw and returns who it was issued to, matching
// httpx.TokenVerifierFunc.
func (v *HS256Verifier) Subject(raw string) (string, error) {
	c, err := v.Verify(raw)
	if err != nil {
		return "", err
	}
	return c.Subject, nil
}
