package leadsdk_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, code int, status bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func newServer(t *testing.T, h http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("stores token on success", func(t *testing.T) {
		t.Parallel()

		srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/auth/login", r.URL.Path)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body leadsdk.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, leadsdk.LoginRequest{Email: "admin@example.com", Password: "secret"}, body)

			writeEnvelope(w, http.StatusOK, true, "Login successful", "tok-123")
		})

		tokens := leadsdk.NewMemoryTokenStore()
		client := leadsdk.NewClient(srv.URL+"/", tokens)

		res := client.Login(context.Background(), "admin@example.com", "secret")
		require.True(t, res.Success)
		require.Equal(t, leadsdk.OutcomeOK, res.Outcome)
		require.Equal(t, "Login successful", res.Message)
		require.Equal(t, "tok-123", res.Data)

		tok, err := tokens.Token(context.Background())
		require.NoError(t, err)
		require.Equal(t, "tok-123", tok)
		require.True(t, client.Authenticated(context.Background()))
	})

	t.Run("surfaces server message on rejection", func(t *testing.T) {
		t.Parallel()

		srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusUnauthorized, false, "bad credentials", nil)
		})

		tokens := leadsdk.NewMemoryTokenStore()
		res := leadsdk.NewClient(srv.URL, tokens).Login(context.Background(), "admin@example.com", "nope")

		require.False(t, res.Success)
		require.Equal(t, leadsdk.OutcomeRejected, res.Outcome)
		require.Equal(t, "bad credentials", res.Message)

		_, err := tokens.Token(context.Background())
		require.ErrorIs(t, err, leadsdk.ErrNoToken)
	})

	t.Run("generic message when the body is not an envelope", func(t *testing.T) {
		t.Parallel()

		srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, "<html>bad gateway</html>")
		})

		res := leadsdk.NewClient(srv.URL, nil).Login(context.Background(), "a@b.co", "pw")
		require.False(t, res.Success)
		require.Equal(t, leadsdk.OutcomeTransport, res.Outcome)
		require.Equal(t, leadsdk.MsgLoginFailed, res.Message)
	})

	t.Run("generic message when the server is unreachable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		res := leadsdk.NewClient(url, nil).Login(context.Background(), "a@b.co", "pw")
		require.Equal(t, leadsdk.OutcomeTransport, res.Outcome)
		require.Equal(t, "An error occurred while logging in", res.Message)
	})

	t.Run("token store failure is a transport failure", func(t *testing.T) {
		t.Parallel()

		srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, true, "Login successful", "tok")
		})

		res := leadsdk.NewClient(srv.URL, brokenStore{}).Login(context.Background(), "a@b.co", "pw")
		require.False(t, res.Success)
		require.Equal(t, leadsdk.OutcomeTransport, res.Outcome)
	})
}

func TestBearerOperationsWithoutToken(t *testing.T) {
	t.Parallel()

	srv, calls := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, "ok", []leadsdk.Lead{})
	})
	client := leadsdk.NewClient(srv.URL, leadsdk.NewMemoryTokenStore())

	list := client.ListLeads(context.Background())
	require.False(t, list.Success)
	require.Equal(t, leadsdk.OutcomeNotAuthenticated, list.Outcome)
	require.Equal(t, leadsdk.MsgNotAuthenticated, list.Message)
	require.Nil(t, list.Data)

	del := client.DeleteLeads(context.Background(), []string{"1"})
	require.Equal(t, leadsdk.OutcomeNotAuthenticated, del.Outcome)

	require.Zero(t, calls.Load(), "no request may be sent without a token")
}

func TestListLeads(t *testing.T) {
	t.Parallel()

	t.Run("sends bearer and decodes leads", func(t *testing.T) {
		t.Parallel()

		srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			require.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
			writeEnvelope(w, http.StatusOK, true, "Leads fetched", []leadsdk.Lead{
				{ID: "1", FullName: "Ada Lovelace", Email: "ada@example.com", CreatedAt: "2023-01-12T10:00:00"},
				{ID: "2", FullName: "Alan Turing", Email: "alan@example.com", CompanyName: "Bletchley"},
			})
		})

		tokens := leadsdk.NewMemoryTokenStore()
		require.NoError(t, tokens.SetToken(context.Background(), "tok-abc"))

		res := leadsdk.NewClient(srv.URL, tokens).ListLeads(context.Background())
		require.True(t, res.Success)
		require.Equal(t, "Leads fetched", res.Message)
		require.Len(t, res.Data, 2)
		require.Equal(t, "Bletchley", res.Data[1].CompanyName)
		require.Equal(t, "2023-01-12T10:00:00", res.Data[0].CreatedAt)
	})

	t.Run("null data becomes an empty list", func(t *testing.T) {
		t.Parallel()

		srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, true, "Leads fetched", nil)
		})

		tokens := leadsdk.NewMemoryTokenStore()
		require.NoError(t, tokens.SetToken(context.Background(), "tok"))

		res := leadsdk.NewClient(srv.URL, tokens).ListLeads(context.Background())
		require.True(t, res.Success)
		require.NotNil(t, res.Data)
		require.Empty(t, res.Data)
	})

	t.Run("stale token is an ordinary rejection", func(t *testing.T) {
		t.Parallel()

		srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusUnauthorized, false, "Token expired", nil)
		})

		tokens := leadsdk.NewMemoryTokenStore()
		require.NoError(t, tokens.SetToken(context.Background(), "old"))

		res := leadsdk.NewClient(srv.URL, tokens).ListLeads(context.Background())
		require.Equal(t, leadsdk.OutcomeRejected, res.Outcome)
		require.Equal(t, "Token expired", res.Message)
	})
}

func TestDeleteLeads(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/leads", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var ids []string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ids))
		require.Equal(t, []string{"a", "b"}, ids)

		writeEnvelope(w, http.StatusOK, true, "Leads deleted", []string{"a", "b"})
	})

	tokens := leadsdk.NewMemoryTokenStore()
	require.NoError(t, tokens.SetToken(context.Background(), "tok"))

	res := leadsdk.NewClient(srv.URL, tokens).DeleteLeads(context.Background(), []string{"a", "b"})
	require.True(t, res.Success)
	require.Equal(t, "Leads deleted", res.Message)
}

func TestCreateLead(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))

		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.NotContains(t, in, "id")
		require.Equal(t, "Grace Hopper", in["fullName"])

		writeEnvelope(w, http.StatusCreated, true, "Lead created", leadsdk.Lead{
			ID: "42", FullName: "Grace Hopper", Email: "grace@example.com",
		})
	})

	res := leadsdk.NewClient(srv.URL, nil).CreateLead(context.Background(), leadsdk.Lead{
		ID: "client-side", FullName: "Grace Hopper", Email: "grace@example.com",
	})
	require.True(t, res.Success)
	require.Equal(t, "42", res.Data.ID)
	require.Equal(t, "Lead created", res.Message)
}

func TestCreateLeadRejectedWithoutMessage(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, false, "", nil)
	})

	res := leadsdk.NewClient(srv.URL, nil).CreateLead(context.Background(), leadsdk.Lead{FullName: "x", Email: "x@y.z"})
	require.Equal(t, leadsdk.OutcomeRejected, res.Outcome)
	require.Equal(t, leadsdk.MsgCreateLeadFailed, res.Message)
}

func TestWithTokens(t *testing.T) {
	t.Parallel()

	base := leadsdk.NewClient("", nil)
	require.Equal(t, leadsdk.DefaultBaseURL, base.BaseURL)

	other := leadsdk.NewMemoryTokenStore()
	derived := base.WithTokens(other)

	require.Same(t, base.HTTPClient, derived.HTTPClient)
	require.Same(t, other, derived.Tokens)
	require.NotSame(t, base.Tokens, derived.Tokens)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	tokens := leadsdk.NewMemoryTokenStore()
	require.NoError(t, tokens.SetToken(context.Background(), "tok"))

	client := leadsdk.NewClient("", tokens)
	require.True(t, client.Logout(context.Background()).Success)
	require.False(t, client.Authenticated(context.Background()))

	res := leadsdk.NewClient("", brokenStore{}).Logout(context.Background())
	require.Equal(t, leadsdk.MsgLogoutFailed, res.Message)
}

type brokenStore struct{}

func (brokenStore) Token(context.Context) (string, error) { return "", errors.New("disk on fire") }
func (brokenStore) SetToken(context.Context, string) error { return errors.New("disk on fire") }
func (brokenStore) ClearToken(context.Context) error       { return errors.New("disk on fire") }
