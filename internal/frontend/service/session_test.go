package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/domain"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/store"
	"github.com/aussiebroadwan/leadcapture/pkg/idx"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewSessionService(st, time.Hour)
	svc.Now = func() time.Time { return now }

	sess, err := svc.Create(ctx)
	require.NoError(t, err)
	require.True(t, idx.Valid(sess.ID))
	require.NotEmpty(t, sess.CSRFToken)
	require.Equal(t, now.Add(time.Hour), sess.ExpiresAt)

	now = now.Add(30 * time.Minute)
	got, err := svc.Resolve(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, sess.CSRFToken, got.CSRFToken)
	require.Equal(t, now.Add(time.Hour), got.ExpiresAt, "expiry slides on use")

	now = now.Add(2 * time.Hour)
	_, err = svc.Resolve(ctx, sess.ID)
	require.ErrorIs(t, err, ErrSessionExpired)

	_, err = st.Sessions().GetSession(ctx, sess.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSessionResolveUnknown(t *testing.T) {
	svc := NewSessionService(newTestStore(t), 0)
	require.Equal(t, DefaultSessionTTL, svc.TTL)

	for _, id := range []string{"", "not-a-ulid", idx.New().String()} {
		_, err := svc.Resolve(context.Background(), id)
		require.ErrorIs(t, err, ErrSessionNotFound, id)
	}
}

func TestSessionDestroy(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(newTestStore(t), 0)

	sess, err := svc.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.Destroy(ctx, sess.ID))

	_, err = svc.Resolve(ctx, sess.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestEnsureCLI(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := NewSessionService(st, 0)

	require.NoError(t, svc.EnsureCLI(ctx))
	require.NoError(t, svc.EnsureCLI(ctx))

	sess, err := st.Sessions().GetSession(ctx, domain.CLISessionID)
	require.NoError(t, err)
	require.False(t, sess.Expired(time.Now().Add(50*365*24*time.Hour)))
}

func TestCheckCSRF(t *testing.T) {
	svc := NewSessionService(newTestStore(t), 0)
	sess, err := svc.Create(context.Background())
	require.NoError(t, err)

	require.True(t, svc.CheckCSRF(sess, sess.CSRFToken))
	require.False(t, svc.CheckCSRF(sess, ""))
	require.False(t, svc.CheckCSRF(sess, sess.CSRFToken+"x"))
}
