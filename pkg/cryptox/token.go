package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// Random byte counts for the secrets this module mints. Encoded lengths are
// base64url without padding.
const (
	CSRFTokenSize = 16 // 22 chars, one per browser session
	SecretSize    = 32 // 43 chars, signing secrets and master keys
)

// GenerateToken returns size random bytes encoded as base64url.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("cryptox: token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// MustGenerateToken panics where GenerateToken would fail. Startup only.
func MustGenerateToken(size int) string {
	token, err := GenerateToken(size)
	if err != nil {
		panic(err)
	}
	return token
}

// EqualTokens compares in constant time. An empty token matches nothing, so a
// session missing its CSRF token can never be satisfied by an empty form field.
func EqualTokens(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
