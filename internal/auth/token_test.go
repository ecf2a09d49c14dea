package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenManager(t *testing.T) {
	t.Parallel()

	manager := NewTokenManager("test-secret-key-at-least-32-chars!!", time.Hour)
	id := Identity{UID: "uid-123", Email: "maria@example.com", DisplayName: "Maria"}

	t.Run("round-trips identity through a token", func(t *testing.T) {
		t.Parallel()
		token, err := manager.Generate(id)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		got, err := manager.Validate(token)
		require.NoError(t, err)
		require.Equal(t, id, got)
	})

	t.Run("rejects a forged token", func(t *testing.T) {
		t.Parallel()
		other := NewTokenManager("another-secret-key-entirely-here!!!", time.Hour)
		token, err := other.Generate(id)
		require.NoError(t, err)

		_, err = manager.Validate(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		t.Parallel()
		expired := NewTokenManager("test-secret-key-at-least-32-chars!!", -time.Minute)
		token, err := expired.Generate(id)
		require.NoError(t, err)

		_, err = manager.Validate(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()
		_, err := manager.Validate("not.a.token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestIdentityContext(t *testing.T) {
	t.Parallel()

	t.Run("round-trips identity through context", func(t *testing.T) {
		t.Parallel()
		ctx := WithIdentity(t.Context(), Identity{UID: "uid-123", Email: "maria@example.com"})
		got, ok := IdentityFromContext(ctx)
		require.True(t, ok)
		require.Equal(t, "uid-123", got.UID)
	})

	t.Run("anonymous context has no identity", func(t *testing.T) {
		t.Parallel()
		_, ok := IdentityFromContext(t.Context())
		require.False(t, ok)
	})

	t.Run("empty uid counts as anonymous", func(t *testing.T) {
		t.Parallel()
		ctx := WithIdentity(t.Context(), Identity{})
		_, ok := IdentityFromContext(ctx)
		require.False(t, ok)
	})
}
