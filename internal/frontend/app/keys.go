package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/aussiebroadwan/leadcapture/pkg/cryptox"
)

// InitSealer returns the sealer used to encrypt API tokens at rest.
//
// Key sources, in order:
//   - MasterKeyPath when set.
//   - The LEADFRONT_MASTER_KEY environment variable.
//   - A key file next to the database, generated on first use. CLI commands
//     run as separate processes and must agree on the key.
//   - For an in-memory database, a random key. Stored tokens die with the process.
func InitSealer(cfg Config, logger *slog.Logger) (*cryptox.Sealer, error) {
	path := cfg.MasterKeyPath
	if path == "" && os.Getenv(cryptox.MasterKeyEnv) == "" && cfg.DatabaseFile != ":memory:" {
		path = cfg.DatabaseFile + ".key"
		created, err := ensureKeyFile(path)
		if err != nil {
			return nil, err
		}
		if created {
			logger.Info("generated master key", "path", path)
		}
	}

	sealer, err := cryptox.LoadSealer(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load master key: %w", err)
	}
	if sealer.Ephemeral {
		logger.Warn("using an ephemeral master key; stored tokens will not survive a restart")
	}
	return sealer, nil
}

// ensureKeyFile writes a fresh random key to path unless one exists.
func ensureKeyFile(path string) (created bool, err error) {
	_, err = os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to stat master key: %w", err)
	}

	key, err := cryptox.GenerateToken(cryptox.SecretSize)
	if err != nil {
		return false, fmt.Errorf("failed to generate master key: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		// Another process won the race.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create master key: %w", err)
	}
	if _, err := f.WriteString(key + "\n"); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("failed to write master key: %w", err)
	}
	return true, f.Close()
}
