package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/domain"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func testSession(id string, now time.Time, ttl time.Duration) domain.Session {
	return domain.Session{
		ID:         id,
		CSRFToken:  "csrf-" + id,
		CreatedAt:  now,
		LastSeenAt: now,
		ExpiresAt:  now.Add(ttl),
	}
}

func TestApplyMigrationsTwice(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestSessionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	in := testSession("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3S1", now, time.Hour)
	require.NoError(t, s.Sessions().CreateSession(ctx, in))

	got, err := s.Sessions().GetSession(ctx, in.ID)
	require.NoError(t, err)
	require.Equal(t, in, got)

	err = s.Sessions().CreateSession(ctx, in)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.Sessions().GetSession(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestTouchSession(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	in := testSession("touch", now, time.Hour)
	require.NoError(t, s.Sessions().CreateSession(ctx, in))

	later := now.Add(30 * time.Minute)
	require.NoError(t, s.Sessions().TouchSession(ctx, in.ID, later, later.Add(time.Hour)))

	got, err := s.Sessions().GetSession(ctx, in.ID)
	require.NoError(t, err)
	require.Equal(t, later, got.LastSeenAt)
	require.Equal(t, later.Add(time.Hour), got.ExpiresAt)
	require.Equal(t, now, got.CreatedAt)

	err = s.Sessions().TouchSession(ctx, "missing", later, later)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteExpiredSessions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	require.NoError(t, s.Sessions().CreateSession(ctx, testSession("old", now.Add(-2*time.Hour), time.Hour)))
	require.NoError(t, s.Sessions().CreateSession(ctx, testSession("edge", now.Add(-time.Hour), time.Hour)))
	require.NoError(t, s.Sessions().CreateSession(ctx, testSession("fresh", now, time.Hour)))

	ids, err := s.Sessions().DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"old", "edge"}, ids)

	_, err = s.Sessions().GetSession(ctx, "fresh")
	require.NoError(t, err)

	ids, err = s.Sessions().DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestValues(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Now().UTC()

	require.NoError(t, s.Sessions().CreateSession(ctx, testSession("sess", now, time.Hour)))

	_, err := s.Values().GetValue(ctx, "sess", "jwtToken")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Values().PutValue(ctx, "sess", "jwtToken", []byte("first")))
	require.NoError(t, s.Values().PutValue(ctx, "sess", "jwtToken", []byte("second")))

	v, err := s.Values().GetValue(ctx, "sess", "jwtToken")
	require.NoError(t, err)
	require.Equal(t, []byte("second"), v)

	require.NoError(t, s.Values().DeleteValue(ctx, "sess", "jwtToken"))
	require.NoError(t, s.Values().DeleteValue(ctx, "sess", "jwtToken"))

	_, err = s.Values().GetValue(ctx, "sess", "jwtToken")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestValuesRequireSession(t *testing.T) {
	s := newTestStore(t)
	err := s.Values().PutValue(context.Background(), "nobody", "k", []byte("v"))
	require.Error(t, err)
}

func TestDeleteSessionCascadesValues(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Sessions().CreateSession(ctx, testSession("sess", time.Now(), time.Hour)))
	require.NoError(t, s.Values().PutValue(ctx, "sess", "k", []byte("v")))
	require.NoError(t, s.Sessions().DeleteSession(ctx, "sess"))

	_, err := s.Values().GetValue(ctx, "sess", "k")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Now().UTC()

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Sessions().CreateSession(ctx, testSession("rolled", now, time.Hour)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Sessions().GetSession(ctx, "rolled")
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Sessions().CreateSession(ctx, testSession("kept", now, time.Hour)); err != nil {
			return err
		}
		return tx.Values().PutValue(ctx, "kept", "k", []byte("v"))
	})
	require.NoError(t, err)

	v, err := s.Values().GetValue(ctx, "kept", "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), v)
}

func TestNestedTxUnsupported(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Tx(ctx)
		return err
	})
	require.Error(t, err)
}
