package cryptox_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/leadcapture/pkg/cryptox"
)

func TestGenerateTokenLengths(t *testing.T) {
	t.Parallel()

	for size, want := range map[int]int{
		cryptox.CSRFTokenSize: 22,
		cryptox.SecretSize:    43,
		3:                     4,
	} {
		tok, err := cryptox.GenerateToken(size)
		require.NoError(t, err)
		require.Len(t, tok, want)
	}
}

func TestGenerateTokenNeverRepeats(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 50)
	for range 50 {
		tok := cryptox.MustGenerateToken(cryptox.CSRFTokenSize)
		require.NotContains(t, seen, tok)
		seen[tok] = struct{}{}
	}
}

func TestGenerateTokenRejectsBadSize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, -4} {
		tok, err := cryptox.GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, tok)
	}
	require.Panics(t, func() { cryptox.MustGenerateToken(0) })
}

func TestEqualTokens(t *testing.T) {
	t.Parallel()

	tok := cryptox.MustGenerateToken(cryptox.CSRFTokenSize)

	require.True(t, cryptox.EqualTokens(tok, tok))
	require.False(t, cryptox.EqualTokens(tok, tok+"x"))
	require.False(t, cryptox.EqualTokens(tok, ""))
	require.False(t, cryptox.EqualTokens("", ""))
}
