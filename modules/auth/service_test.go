package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeskhq/jobdesk/modules/auth"
	"github.com/jobdeskhq/jobdesk/pkg/jwt"
)

type fakeExchanger struct {
	identity *auth.BrokeredIdentity
	err      error
}

func (f *fakeExchanger) Exchange(ctx context.Context, sessionID string) (*auth.BrokeredIdentity, error) {
	return f.identity, f.err
}

func newTestService(t *testing.T, exchanger auth.IdentityExchanger, opts ...auth.ServiceOption) (*auth.Service, *auth.MemoryAccountStore, *auth.MemorySessionStore, *auth.Resolver) {
	t.Helper()

	tokens, err := jwt.New("test-signing-key")
	require.NoError(t, err)

	accounts := auth.NewMemoryAccountStore()
	sessions := auth.NewMemorySessionStore()
	svc := auth.NewService(accounts, sessions, tokens, exchanger, opts...)
	return svc, accounts, sessions, auth.NewResolver(tokens, sessions, accounts)
}

func TestServiceRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("recruiter sign-up issues a resolvable token", func(t *testing.T) {
		t.Parallel()
		svc, _, _, resolver := newTestService(t, nil)

		account, token, err := svc.Register(ctx, "r@example.com", "s3cret", "Recruiter", auth.RoleRecruiter)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		identity, err := resolver.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, account.ID, identity.AccountID)
		assert.Equal(t, auth.RoleRecruiter, identity.Role)
	})

	t.Run("admin role cannot self-register", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _ := newTestService(t, nil)

		_, _, err := svc.Register(ctx, "a@example.com", "s3cret", "Admin", auth.RoleAdmin)
		require.ErrorIs(t, err, auth.ErrInvalidRole)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _ := newTestService(t, nil)

		_, _, err := svc.Register(ctx, "dup@example.com", "s3cret", "One", auth.RoleSeeker)
		require.NoError(t, err)

		_, _, err = svc.Register(ctx, "dup@example.com", "s3cret", "Two", auth.RoleSeeker)
		require.ErrorIs(t, err, auth.ErrEmailTaken)
	})

	t.Run("register hooks run for new accounts", func(t *testing.T) {
		t.Parallel()
		var hooked []string
		svc, _, _, _ := newTestService(t, nil, auth.WithRegisterHook(func(ctx context.Context, account *auth.Account) error {
			hooked = append(hooked, account.ID)
			return nil
		}))

		account, _, err := svc.Register(ctx, "h@example.com", "s3cret", "Hooked", auth.RoleSeeker)
		require.NoError(t, err)
		assert.Equal(t, []string{account.ID}, hooked)
	})
}

func TestServiceLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, _, resolver := newTestService(t, nil)
	_, _, err := svc.Register(ctx, "user@example.com", "correct-password", "User", auth.RoleSeeker)
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		account, token, err := svc.Login(ctx, "user@example.com", "correct-password")
		require.NoError(t, err)

		identity, err := resolver.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, account.ID, identity.AccountID)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, _, wrongPassErr := svc.Login(ctx, "user@example.com", "wrong")
		_, _, unknownErr := svc.Login(ctx, "nobody@example.com", "whatever")

		require.ErrorIs(t, wrongPassErr, auth.ErrInvalidCredentials)
		require.Equal(t, unknownErr, wrongPassErr)
	})
}

func TestServiceExchangeSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("new account defaults to seeker role", func(t *testing.T) {
		t.Parallel()
		svc, _, _, resolver := newTestService(t, &fakeExchanger{
			identity: &auth.BrokeredIdentity{
				Email:        "oauth@example.com",
				Name:         "OAuth User",
				Picture:      "https://example.com/p.png",
				SessionToken: "broker-session-token",
			},
		})

		account, sessionToken, err := svc.ExchangeSession(ctx, "broker-session-id")
		require.NoError(t, err)
		assert.Equal(t, "broker-session-token", sessionToken)
		assert.Equal(t, auth.RoleSeeker, account.Role)

		identity, err := resolver.Resolve(ctx, sessionToken)
		require.NoError(t, err)
		assert.Equal(t, account.ID, identity.AccountID)
	})

	t.Run("existing account keeps its role, refreshes profile", func(t *testing.T) {
		t.Parallel()
		svc, accounts, _, _ := newTestService(t, &fakeExchanger{
			identity: &auth.BrokeredIdentity{
				Email:        "known@example.com",
				Name:         "New Name",
				Picture:      "https://example.com/new.png",
				SessionToken: "another-broker-token",
			},
		})

		_, _, err := svc.Register(ctx, "known@example.com", "pass", "Old Name", auth.RoleRecruiter)
		require.NoError(t, err)

		account, _, err := svc.ExchangeSession(ctx, "broker-session-id")
		require.NoError(t, err)
		assert.Equal(t, auth.RoleRecruiter, account.Role)

		stored, err := accounts.FindByEmail(ctx, "known@example.com")
		require.NoError(t, err)
		assert.Equal(t, "New Name", stored.Name)
	})

	t.Run("broker failure", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _ := newTestService(t, &fakeExchanger{err: errors.New("broker unreachable")})

		_, _, err := svc.ExchangeSession(ctx, "broker-session-id")
		require.ErrorIs(t, err, auth.ErrExchangeFailed)
	})
}

func TestServiceLogout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, _, resolver := newTestService(t, &fakeExchanger{
		identity: &auth.BrokeredIdentity{
			Email:        "bye@example.com",
			Name:         "Bye",
			SessionToken: "logout-token",
		},
	})

	_, sessionToken, err := svc.ExchangeSession(ctx, "broker-session-id")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sessionToken))

	_, err = resolver.Resolve(ctx, sessionToken)
	require.ErrorIs(t, err, auth.ErrInvalidSession)
}
