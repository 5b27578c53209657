package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/listview"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/metrics"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/state"
	"github.com/aussiebroadwan/leadcapture/pkg/slogx"
)

func TestHousekeepingCleanup(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	sessions := NewSessionService(st, time.Hour)
	sessions.Now = func() time.Time { return now }

	stale, err := sessions.Create(ctx)
	require.NoError(t, err)
	now = now.Add(90 * time.Minute)
	fresh, err := sessions.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, sessions.EnsureCLI(ctx))

	registry := state.NewRegistry(listview.DefaultQuietPeriod)
	registry.Get(stale.ID)
	registry.Get(fresh.ID)

	m := metrics.New()
	hk := NewHousekeepingService(st, registry, m, slogx.Discard(), 0)
	require.Equal(t, time.Hour, hk.Interval)
	hk.Now = func() time.Time { return now }

	require.Equal(t, 1, hk.Cleanup(ctx))
	require.Equal(t, 1, registry.Len())
	require.Equal(t, 1.0, testutil.ToFloat64(m.SessionsPurged))
	require.Equal(t, 1.0, testutil.ToFloat64(m.SessionsActive))

	_, err = sessions.Resolve(ctx, fresh.ID)
	require.NoError(t, err)
	_, err = sessions.Resolve(ctx, stale.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)

	require.Zero(t, hk.Cleanup(ctx))
}

func TestHousekeepingStartStop(t *testing.T) {
	st := newTestStore(t)
	hk := NewHousekeepingService(st, state.NewRegistry(0), nil, slogx.Discard(), time.Hour)

	hk.Start()
	hk.Stop()
}
