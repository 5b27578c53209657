package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// MasterKeyEnv is consulted when no key file is configured.
const MasterKeyEnv = "LEADFRONT_MASTER_KEY"

// ErrCiphertextTooShort is returned when sealed data cannot even hold a nonce.
var ErrCiphertextTooShort = errors.New("cryptox: ciphertext too short")

// Sealer encrypts small secrets (API bearer tokens) at rest with AES-256-GCM.
// Output format is [12-byte nonce][ciphertext][16-byte auth tag].
type Sealer struct {
	aead      cipher.AEAD
	Ephemeral bool // key was generated at startup and dies with the process
}

// NewSealer derives a 32-byte key from arbitrary key material using SHA-256.
func NewSealer(keyMaterial []byte) (*Sealer, error) {
	if len(keyMaterial) == 0 {
		return nil, errors.New("cryptox: empty key material")
	}

	key := sha256.Sum256(keyMaterial)
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &Sealer{aead: gcm}, nil
}

// LoadSealer loads key material from:
//  1. the file at path (if set)
//  2. the LEADFRONT_MASTER_KEY environment variable
//  3. a random key for development, sealed values won't survive a restart
func LoadSealer(path string) (*Sealer, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read master key file: %w", err)
		}
		return NewSealer([]byte(strings.TrimSpace(string(data))))
	}

	if env := os.Getenv(MasterKeyEnv); env != "" {
		return NewSealer([]byte(env))
	}

	material := make([]byte, 32)
	if _, err := rand.Read(material); err != nil {
		return nil, fmt.Errorf("failed to generate ephemeral master key: %w", err)
	}
	s, err := NewSealer(material)
	if err != nil {
		return nil, err
	}
	s.Ephemeral = true
	return s, nil
}

// Seal encrypts and authenticates plaintext with a fresh random nonce.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	nonceSize := s.aead.NonceSize()
	if len(sealed) < nonceSize {
		return nil, ErrCiphertextTooShort
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plaintext, nil
}
