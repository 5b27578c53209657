package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/aussiebroadwan/leadcapture/internal/stubapi"
	"github.com/aussiebroadwan/leadcapture/pkg/cryptox"
)

// ErrMissingAdminPassword is returned when the stub has no admin password.
var ErrMissingAdminPassword = errors.New("STUB_ADMIN_PASSWORD is required")

// RunStub serves the development lead API until ctx is done.
func RunStub(ctx context.Context, cfg StubConfig, ln net.Listener) error {
	logger := newLogger("leadapi-stub", cfg.Env, cfg.LogLevel, cfg.LogFormat, nil)

	if cfg.AdminPassword == "" {
		return ErrMissingAdminPassword
	}

	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		secret = []byte(cryptox.MustGenerateToken(cryptox.SecretSize))
		logger.Warn("no STUB_JWT_SECRET set; tokens will not survive a restart")
	}

	srv, err := stubapi.New(stubapi.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		JWTSecret:     secret,
		TokenTTL:      cfg.TokenTTL,
		Version:       BuildVersion,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize stub api: %w", err)
	}

	server := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 3 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Serve(ln)
	}()
	logger.Info("stub lead api starting", "addr", ln.Addr().String(), "admin", cfg.AdminEmail)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("stub lead api stopped")
	return nil
}
