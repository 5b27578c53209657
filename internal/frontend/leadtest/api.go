package leadtest

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/leadcapture/internal/stubapi"
	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
)

// Admin credentials accepted by the API started with StartAPI.
const (
	AdminEmail    = "admin@example.com"
	AdminPassword = "correct horse battery staple"
)

// API is a running stub of the lead API.
type API struct {
	Server *stubapi.Server
	URL    string
}

// StartAPI starts a stub lead API seeded with leads. It is shut down when
// the test ends.
func StartAPI(tb testing.TB, leads ...leadsdk.Lead) *API {
	tb.Helper()

	srv, err := stubapi.New(stubapi.Config{
		AdminEmail:    AdminEmail,
		AdminPassword: AdminPassword,
		JWTSecret:     []byte(strings.Repeat("k", 32)),
	})
	if err != nil {
		tb.Fatalf("start stub api: %v", err)
	}
	srv.Seed(leads...)

	ts := httptest.NewServer(srv.Handler())
	tb.Cleanup(ts.Close)

	return &API{Server: srv, URL: ts.URL}
}

// Client returns a client for the API with an in-memory token store.
func (a *API) Client() *leadsdk.Client {
	return leadsdk.NewClient(a.URL, leadsdk.NewMemoryTokenStore())
}
