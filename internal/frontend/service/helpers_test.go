package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/domain"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/store/drivers/sqlite"
	"github.com/aussiebroadwan/leadcapture/pkg/cryptox"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestSealer(t *testing.T, key string) *cryptox.Sealer {
	t.Helper()

	s, err := cryptox.NewSealer([]byte(key))
	require.NoError(t, err)
	return s
}

// newTestVault returns a vault over a freshly created session.
func newTestVault(t *testing.T) (*TokenVault, domain.Session) {
	t.Helper()

	st := newTestStore(t)
	sess, err := NewSessionService(st, 0).Create(context.Background())
	require.NoError(t, err)

	return NewTokenVault(st, newTestSealer(t, "master"), sess.ID), sess
}
