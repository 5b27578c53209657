package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/domain"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/service"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/state"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/store"
	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
)

// Agent is the command line's single user agent. Its token lives in the same
// store as browser sessions, under the fixed "cli" session.
type Agent struct {
	Logger *slog.Logger
	State  *state.AppState
	Tokens *service.TokenVault
	Auth   *service.AuthService
	Leads  *service.LeadsService

	db store.Store
}

// NewAgent opens the store, makes sure the cli session exists and restores
// the auth flag from whatever token it holds. Logs go to logOut, or stderr
// when nil, so they never mix with command output.
func NewAgent(ctx context.Context, cfg Config, logOut io.Writer) (*Agent, error) {
	if logOut == nil {
		logOut = os.Stderr
	}
	logger := newLogger("leadfront-cli", cfg.Env, cfg.LogLevel, cfg.LogFormat, logOut)

	db, err := openStore(cfg.DatabaseFile)
	if err != nil {
		return nil, err
	}

	sealer, err := InitSealer(cfg, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := service.NewSessionService(db, 0).EnsureCLI(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	client := newClient(cfg)
	a := &Agent{
		Logger: logger,
		State:  state.New(cfg.SearchDebounce),
		Tokens: service.NewTokenVault(db, sealer, domain.CLISessionID),
		Auth:   &service.AuthService{Client: client},
		Leads:  &service.LeadsService{Client: client},
		db:     db,
	}
	a.State.Restore(ctx, a.Tokens)
	return a, nil
}

func (a *Agent) Login(ctx context.Context, email, password string) leadsdk.Result[string] {
	return a.Auth.Login(ctx, a.State, a.Tokens, email, password)
}

func (a *Agent) Logout(ctx context.Context) leadsdk.Result[struct{}] {
	return a.Auth.Logout(ctx, a.State, a.Tokens)
}

func (a *Agent) Close() error {
	a.State.Close()
	return a.db.Close()
}
