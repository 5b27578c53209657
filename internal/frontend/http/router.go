package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/metrics"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/service"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/state"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/store"
	"github.com/aussiebroadwan/leadcapture/pkg/cryptox"
	"github.com/aussiebroadwan/leadcapture/pkg/httpx"
	"github.com/aussiebroadwan/leadcapture/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion  string
	startTime     time.Time
	logger        *slog.Logger
	pages         *renderer
	debounce      time.Duration
	secureCookies bool
	now           func() time.Time

	store    store.Store
	sealer   *cryptox.Sealer
	registry *state.Registry
	metrics  *metrics.Collector

	SessionService *service.SessionService
	AuthService    *service.AuthService
	LeadsService   *service.LeadsService

	// APICheck reports whether the remote lead API is reachable. Optional.
	APICheck httpx.HealthCheck
}

// Options are the Router settings that are not services.
type Options struct {
	BuildVersion   string
	SearchDebounce time.Duration
	SecureCookies  bool
}

func NewRouter(
	st store.Store,
	sealer *cryptox.Sealer,
	registry *state.Registry,
	m *metrics.Collector,
	logger *slog.Logger,
	opts Options,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		buildVersion:  opts.BuildVersion,
		startTime:     time.Now(),
		logger:        logger,
		pages:         mustLoadPages(),
		debounce:      opts.SearchDebounce,
		secureCookies: opts.SecureCookies,
		now:           time.Now,
		store:         st,
		sealer:        sealer,
		registry:      registry,
		metrics:       m,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.SecurityHeaders,
		r.metrics.Middleware,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerPublic()
	r.registerAdmin()
	r.registerSystem()

	// Anything else goes back to the root, which picks login or home.
	r.Mux.Handle("/", http.RedirectHandler("/", http.StatusFound))
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// page wraps a handler that needs a browser session.
func (r *Router) page(h http.HandlerFunc, mws ...httpx.Middleware) http.Handler {
	return httpx.Chain(h, append([]httpx.Middleware{r.withSession, r.requireCSRF}, mws...)...)
}

func (r *Router) registerPublic() {
	r.Mux.Handle("GET /{$}",
		httpx.Chain(r.page(r.handleRoot),
			httpx.RateLimitByIP(httpx.LenientLimit, httpx.WithDenier(r.denyRateLimited)),
		),
	)

	// GET /signup - public lead form
	r.Mux.Handle("GET /signup",
		httpx.Chain(r.page(r.handleSignupGet),
			httpx.RateLimitByIP(httpx.LenientLimit, httpx.WithDenier(r.denyRateLimited)),
		),
	)

	// POST /signup - moderate rate limit by IP (anonymous writes)
	r.Mux.Handle("POST /signup",
		httpx.Chain(r.page(r.handleSignupPost),
			httpx.RateLimitByIP(httpx.ModerateLimit, httpx.WithDenier(r.denyRateLimited)),
		),
	)

	r.Mux.Handle("GET /login",
		httpx.Chain(r.page(r.handleLoginGet),
			httpx.RateLimitByIP(httpx.LenientLimit, httpx.WithDenier(r.denyRateLimited)),
		),
	)

	// POST /login - strict rate limit by IP + email to slow password guessing
	r.Mux.Handle("POST /login",
		httpx.Chain(r.page(r.handleLoginPost),
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "email", httpx.WithDenier(r.denyRateLimited)),
		),
	)

	r.Mux.Handle("POST /logout",
		httpx.Chain(r.page(r.handleLogout),
			httpx.RateLimitByIP(httpx.LenientLimit, httpx.WithDenier(r.denyRateLimited)),
		),
	)
}

func (r *Router) registerAdmin() {
	lenient := httpx.RateLimitByIP(httpx.LenientLimit, httpx.WithDenier(r.denyRateLimited))

	r.Mux.Handle("GET /home", httpx.Chain(r.page(r.handleHome, r.requireAuth), lenient))
	r.Mux.Handle("POST /home/select", httpx.Chain(r.page(r.handleSelect, r.requireAuth), lenient))
	r.Mux.Handle("POST /home/select-all", httpx.Chain(r.page(r.handleSelectAll, r.requireAuth), lenient))

	// POST /home/delete - moderate rate limit, each call is a bulk write upstream
	r.Mux.Handle("POST /home/delete",
		httpx.Chain(r.page(r.handleDelete, r.requireAuth),
			httpx.RateLimitByIP(httpx.ModerateLimit, httpx.WithDenier(r.denyRateLimited)),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	checks := map[string]httpx.HealthCheck{
		"database": r.store.Ping,
	}
	if r.APICheck != nil {
		checks["lead_api"] = r.APICheck
	}

	r.Mux.Handle("GET /livez",
		httpx.Chain(httpx.LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(httpx.ReadyzHandler(r.startTime, r.buildVersion, checks),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
	r.Mux.Handle("GET /static/", staticHandler())
}

// APIReachable builds a health check that issues a GET against baseURL and
// accepts any HTTP response as proof the API is up.
func APIReachable(client *http.Client, baseURL string) httpx.HealthCheck {
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		return resp.Body.Close()
	}
}
