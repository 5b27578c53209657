// Package stubapi is an in-memory stand-in for the remote lead API. It speaks
// the same envelope protocol as the real service and is meant for local
// development and tests only: nothing survives a restart.
package stubapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/aussiebroadwan/leadcapture/api/leadapi" // Swagger docs
	"github.com/aussiebroadwan/leadcapture/pkg/cryptox"
	"github.com/aussiebroadwan/leadcapture/pkg/httpx"
	"github.com/aussiebroadwan/leadcapture/pkg/idx"
	"github.com/aussiebroadwan/leadcapture/pkg/jwtx"
	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
	"github.com/aussiebroadwan/leadcapture/pkg/slogx"
)

const (
	// Issuer is the iss claim of every token the stub signs.
	Issuer = "leadapi-stub"

	// CreatedAtLayout mirrors the remote API, which omits the UTC marker.
	CreatedAtLayout = "2006-01-02T15:04:05.000"

	DefaultAdminEmail = "admin@example.com"
)

var ErrMissingSecret = errors.New("stubapi: jwt secret is required")

// Config configures a Server. A zero TokenTTL uses jwtx.DefaultTokenTTL.
type Config struct {
	AdminEmail    string
	AdminPassword string
	JWTSecret     []byte
	TokenTTL      time.Duration
	Version       string
	Logger        *slog.Logger
}

// Server holds the stub's leads and credentials.
type Server struct {
	adminEmail string
	adminHash  string
	tokenTTL   time.Duration
	version    string
	startTime  time.Time
	logger     *slog.Logger

	signer   *jwtx.HS256Signer
	verifier *jwtx.HS256Verifier

	// now is swapped in tests.
	now func() time.Time

	mu    sync.RWMutex
	leads []leadsdk.Lead
}

// New hashes the admin password and prepares the token signer.
func New(cfg Config) (*Server, error) {
	if len(cfg.JWTSecret) == 0 {
		return nil, ErrMissingSecret
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = DefaultAdminEmail
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = jwtx.DefaultTokenTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = slogx.Discard()
	}
	if cfg.AdminPassword == "" {
		return nil, errors.New("stubapi: admin password is required")
	}

	hash, err := cryptox.HashPassword(cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	signer, err := jwtx.NewSignerHS256(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	s := &Server{
		adminEmail: strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		adminHash:  hash,
		tokenTTL:   cfg.TokenTTL,
		version:    cfg.Version,
		startTime:  time.Now(),
		logger:     cfg.Logger,
		signer:     signer,
		now:        time.Now,
	}
	s.verifier = jwtx.NewVerifierHS256(cfg.JWTSecret, jwtx.Policy{Issuer: Issuer}, func() time.Time { return s.now() })
	return s, nil
}

// Seed appends leads as if they had been created through the API. Leads
// without an id or creation time get one.
func (s *Server) Seed(leads ...leadsdk.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range leads {
		if l.ID == "" {
			l.ID = idx.New().String()
		}
		if l.CreatedAt == "" {
			l.CreatedAt = s.now().UTC().Format(CreatedAtLayout)
		}
		s.leads = append(s.leads, l)
	}
}

// Leads returns a copy of every stored lead.
func (s *Server) Leads() []leadsdk.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.leads)
}

// Handler returns the routed API with request logging.
//
//	@title						Lead API (development stub)
//	@version					0.1.0
//	@description				In-memory implementation of the lead capture API used for local development.
//	@description				Every response is an envelope of the form {"status": bool, "message": string, "data": any}.
//
//	@host						localhost:8080
//	@BasePath					/
//	@schemes					http
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT returned by /api/auth/login. Format: "Bearer {token}".
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	authn := httpx.AuthnMiddleware(httpx.TokenVerifierFunc(s.verifier.Subject), denyEnvelope)

	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/leads", s.handleCreateLead)
	mux.Handle("GET /api/leads", httpx.Chain(http.HandlerFunc(s.handleListLeads), authn))
	mux.Handle("DELETE /api/leads", httpx.Chain(http.HandlerFunc(s.handleDeleteLeads), authn))

	mux.Handle("GET /livez", httpx.LivezHandler(s.startTime, s.version))
	mux.Handle("/swagger/", httpSwagger.Handler())

	return httpx.Chain(mux, slogx.HTTPMiddleware(s.logger))
}
