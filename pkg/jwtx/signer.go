package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretSize is the smallest HMAC secret accepted, in bytes.
const MinSecretSize = 32

var ErrWeakSecret = errors.New("jwtx: secret shorter than 32 bytes")

// HS256Signer issues administrator tokens with a shared HMAC-SHA256 secret.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 copies secret, refusing anything under MinSecretSize.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinSecretSize {
		return nil, ErrWeakSecret
	}
	return &HS256Signer{secret: append([]byte(nil), secret...)}, nil
}

// Sign returns the compact JWS for claims.
func (s *HS256Signer) Sign(claims AdminClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
