package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/leadtest"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/listview"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/metrics"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/state"
	"github.com/aussiebroadwan/leadcapture/internal/stubapi"
	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	api := leadtest.StartAPI(t)
	m := metrics.New()
	svc := &AuthService{Client: api.Client(), Metrics: m}

	t.Run("rejected credentials leave the agent anonymous", func(t *testing.T) {
		st := state.New(listview.DefaultQuietPeriod)
		t.Cleanup(st.Close)
		vault, _ := newTestVault(t)

		res := svc.Login(ctx, st, vault, leadtest.AdminEmail, "bad credentials")
		require.False(t, res.Success)
		require.Equal(t, stubapi.MsgBadCredentials, res.Message)
		require.False(t, st.Auth.IsAuthenticated())

		_, err := vault.Token(ctx)
		require.ErrorIs(t, err, leadsdk.ErrNoToken)
	})

	t.Run("success stores the token in the vault", func(t *testing.T) {
		st := state.New(listview.DefaultQuietPeriod)
		t.Cleanup(st.Close)
		vault, _ := newTestVault(t)

		res := svc.Login(ctx, st, vault, leadtest.AdminEmail, leadtest.AdminPassword)
		require.True(t, res.Success, res.Message)
		require.True(t, st.Auth.IsAuthenticated())

		tok, err := vault.Token(ctx)
		require.NoError(t, err)
		require.Equal(t, res.Data, tok)
	})

	require.Equal(t, 1.0, testutil.ToFloat64(m.APICallsTotal.WithLabelValues("login", leadsdk.OutcomeOK.String())))
	require.Equal(t, 1.0, testutil.ToFloat64(m.APICallsTotal.WithLabelValues("login", leadsdk.OutcomeRejected.String())))
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	api := leadtest.StartAPI(t, leadtest.Leads()...)
	auth := &AuthService{Client: api.Client()}
	leads := &LeadsService{Client: api.Client()}

	st := state.New(listview.DefaultQuietPeriod)
	t.Cleanup(st.Close)
	vault, sess := newTestVault(t)

	require.True(t, auth.Login(ctx, st, vault, leadtest.AdminEmail, leadtest.AdminPassword).Success)
	require.True(t, leads.Refresh(ctx, sess.ID, st, vault).Success)
	require.Equal(t, 4, st.Leads.Len())

	res := auth.Logout(ctx, st, vault)
	require.True(t, res.Success)
	require.False(t, st.Auth.IsAuthenticated())
	require.Zero(t, st.Leads.Len())

	_, err := vault.Token(ctx)
	require.ErrorIs(t, err, leadsdk.ErrNoToken)

	// A restored state stays anonymous once the token is gone.
	st.Restore(ctx, vault)
	require.False(t, st.Auth.IsAuthenticated())
}
