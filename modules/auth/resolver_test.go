package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeskhq/jobdesk/modules/auth"
	"github.com/jobdeskhq/jobdesk/pkg/jwt"
)

func newTestResolver(t *testing.T) (*auth.Resolver, *auth.MemoryAccountStore, *auth.MemorySessionStore, *jwt.Service) {
	t.Helper()

	tokens, err := jwt.New("test-signing-key")
	require.NoError(t, err)

	accounts := auth.NewMemoryAccountStore()
	sessions := auth.NewMemorySessionStore()
	return auth.NewResolver(tokens, sessions, accounts), accounts, sessions, tokens
}

func seedAccount(t *testing.T, accounts *auth.MemoryAccountStore, id string, role auth.Role) *auth.Account {
	t.Helper()

	account := &auth.Account{
		ID:        id,
		Email:     id + "@example.com",
		Name:      "Test User",
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, accounts.Create(context.Background(), account))
	return account
}

func TestResolverResolve_SignedToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		t.Parallel()
		resolver, accounts, _, tokens := newTestResolver(t)
		seedAccount(t, accounts, "user_1", auth.RoleRecruiter)

		token, err := tokens.Sign(jwt.Claims{
			Subject:   "user_1",
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		})
		require.NoError(t, err)

		identity, err := resolver.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user_1", identity.AccountID)
		assert.Equal(t, auth.RoleRecruiter, identity.Role)
	})

	t.Run("account deleted after issuance", func(t *testing.T) {
		t.Parallel()
		resolver, accounts, _, tokens := newTestResolver(t)
		seedAccount(t, accounts, "user_2", auth.RoleSeeker)

		token, err := tokens.Sign(jwt.Claims{
			Subject:   "user_2",
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		})
		require.NoError(t, err)
		require.NoError(t, accounts.Delete(ctx, "user_2"))

		_, err = resolver.Resolve(ctx, token)
		require.ErrorIs(t, err, auth.ErrUnknownAccount)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()
		resolver, accounts, _, tokens := newTestResolver(t)
		seedAccount(t, accounts, "user_3", auth.RoleSeeker)

		token, err := tokens.Sign(jwt.Claims{
			Subject:   "user_3",
			ExpiresAt: time.Now().Add(-time.Minute).Unix(),
		})
		require.NoError(t, err)

		_, err = resolver.Resolve(ctx, token)
		require.ErrorIs(t, err, auth.ErrTokenExpired)
	})

	t.Run("tampered token", func(t *testing.T) {
		t.Parallel()
		resolver, accounts, _, tokens := newTestResolver(t)
		seedAccount(t, accounts, "user_4", auth.RoleSeeker)

		token, err := tokens.Sign(jwt.Claims{
			Subject:   "user_4",
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		})
		require.NoError(t, err)

		_, err = resolver.Resolve(ctx, token+"x")
		require.ErrorIs(t, err, auth.ErrTokenMalformed)
	})

	t.Run("envelope prefix with garbage body", func(t *testing.T) {
		t.Parallel()
		resolver, _, _, _ := newTestResolver(t)

		_, err := resolver.Resolve(ctx, "eyJnot-a-real-token")
		require.ErrorIs(t, err, auth.ErrTokenMalformed)
	})
}

func TestResolverResolve_Session(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("valid session", func(t *testing.T) {
		t.Parallel()
		resolver, accounts, sessions, _ := newTestResolver(t)
		seedAccount(t, accounts, "user_5", auth.RoleSeeker)

		require.NoError(t, sessions.Create(ctx, &auth.SessionRecord{
			AccountID: "user_5",
			Token:     "opaque-session-token",
			ExpiresAt: time.Now().Add(time.Hour),
			CreatedAt: time.Now(),
		}))

		identity, err := resolver.Resolve(ctx, "opaque-session-token")
		require.NoError(t, err)
		assert.Equal(t, "user_5", identity.AccountID)
	})

	t.Run("expired session and missing session are indistinguishable", func(t *testing.T) {
		t.Parallel()
		resolver, accounts, sessions, _ := newTestResolver(t)
		seedAccount(t, accounts, "user_6", auth.RoleSeeker)

		require.NoError(t, sessions.Create(ctx, &auth.SessionRecord{
			AccountID: "user_6",
			Token:     "expired-token",
			ExpiresAt: time.Now().Add(-time.Minute),
			CreatedAt: time.Now().Add(-time.Hour),
		}))

		_, expiredErr := resolver.Resolve(ctx, "expired-token")
		_, missingErr := resolver.Resolve(ctx, "never-existed-token")

		require.ErrorIs(t, expiredErr, auth.ErrInvalidSession)
		require.Equal(t, missingErr, expiredErr)
	})

	t.Run("session pointing at deleted account", func(t *testing.T) {
		t.Parallel()
		resolver, _, sessions, _ := newTestResolver(t)

		require.NoError(t, sessions.Create(ctx, &auth.SessionRecord{
			AccountID: "user_gone",
			Token:     "orphan-token",
			ExpiresAt: time.Now().Add(time.Hour),
			CreatedAt: time.Now(),
		}))

		_, err := resolver.Resolve(ctx, "orphan-token")
		require.ErrorIs(t, err, auth.ErrUnknownAccount)
	})

	t.Run("empty credential", func(t *testing.T) {
		t.Parallel()
		resolver, _, _, _ := newTestResolver(t)

		_, err := resolver.Resolve(ctx, "")
		require.ErrorIs(t, err, auth.ErrNotAuthenticated)
	})
}

func TestResolverRequireRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	resolver, accounts, _, tokens := newTestResolver(t)
	seedAccount(t, accounts, "user_7", auth.RoleSeeker)

	token, err := tokens.Sign(jwt.Claims{
		Subject:   "user_7",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	t.Run("matching role", func(t *testing.T) {
		t.Parallel()
		identity, err := resolver.RequireRole(ctx, token, auth.RoleSeeker)
		require.NoError(t, err)
		assert.Equal(t, "user_7", identity.AccountID)
	})

	t.Run("role mismatch is forbidden, not unauthorized", func(t *testing.T) {
		t.Parallel()
		_, err := resolver.RequireRole(ctx, token, auth.RoleRecruiter)
		require.ErrorIs(t, err, auth.ErrForbidden)
	})

	t.Run("resolution failure propagates unchanged", func(t *testing.T) {
		t.Parallel()
		_, err := resolver.RequireRole(ctx, "", auth.RoleRecruiter)
		require.ErrorIs(t, err, auth.ErrNotAuthenticated)
	})
}

// faultyAccountStore simulates a storage transport failure on lookup.
type faultyAccountStore struct {
	*auth.MemoryAccountStore
	findErr error
}

func (s *faultyAccountStore) Find(context.Context, string) (*auth.Account, error) {
	return nil, s.findErr
}

func TestResolverStorageFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	storeErr := errors.New("connection reset")
	accounts := &faultyAccountStore{MemoryAccountStore: auth.NewMemoryAccountStore(), findErr: storeErr}
	sessions := auth.NewMemorySessionStore()
	tokens, err := jwt.New("test-signing-key")
	require.NoError(t, err)
	resolver := auth.NewResolver(tokens, sessions, accounts)

	t.Run("signed token lookup failure is not an auth error", func(t *testing.T) {
		t.Parallel()
		token, err := tokens.Sign(jwt.Claims{
			Subject:   "user_1",
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		})
		require.NoError(t, err)

		_, err = resolver.Resolve(ctx, token)
		require.ErrorIs(t, err, storeErr)
		require.NotErrorIs(t, err, auth.ErrUnknownAccount)
	})

	t.Run("session lookup failure is not an auth error", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, sessions.Create(ctx, &auth.SessionRecord{
			AccountID: "user_1",
			Token:     "sess-token",
			ExpiresAt: time.Now().Add(time.Hour),
			CreatedAt: time.Now(),
		}))

		_, err := resolver.Resolve(ctx, "sess-token")
		require.ErrorIs(t, err, storeErr)
		require.NotErrorIs(t, err, auth.ErrUnknownAccount)
	})
}
