package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jobdeskhq/jobdesk/pkg/jwt"
)

// Resolver turns bearer material into an authenticated identity.
//
// Two structurally different credential schemes are supported: self-contained
// signed tokens issued by direct credential sign-in, and opaque session keys
// created by the brokered sign-in exchange. Dispatch is shape-based: material
// carrying the signed-token envelope prefix is verified statelessly,
// everything else is treated as a session lookup key.
type Resolver struct {
	tokens   *jwt.Service
	sessions SessionStore
	accounts AccountStore
}

// NewResolver creates a resolver over the given collaborators.
func NewResolver(tokens *jwt.Service, sessions SessionStore, accounts AccountStore) *Resolver {
	return &Resolver{
		tokens:   tokens,
		sessions: sessions,
		accounts: accounts,
	}
}

// Resolve authenticates the given bearer material. It has no side effects on
// success and never retries: every failure is terminal for the request.
func (r *Resolver) Resolve(ctx context.Context, credential string) (Identity, error) {
	if credential == "" {
		return Identity{}, ErrNotAuthenticated
	}

	if strings.HasPrefix(credential, jwt.EnvelopePrefix) {
		return r.resolveSignedToken(ctx, credential)
	}
	return r.resolveSession(ctx, credential)
}

// RequireRole resolves the credential and additionally asserts the caller's
// role. Resolution failures propagate unchanged; a role mismatch yields
// ErrForbidden so callers can tell "unknown" from "known but disallowed".
func (r *Resolver) RequireRole(ctx context.Context, credential string, role Role) (Identity, error) {
	identity, err := r.Resolve(ctx, credential)
	if err != nil {
		return Identity{}, err
	}

	if identity.Role != role {
		return Identity{}, ErrForbidden
	}

	return identity, nil
}

func (r *Resolver) resolveSignedToken(ctx context.Context, credential string) (Identity, error) {
	claims, err := r.tokens.Parse(credential)
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return Identity{}, ErrTokenExpired
	case err != nil:
		return Identity{}, ErrTokenMalformed
	}

	if claims.Subject == "" {
		return Identity{}, ErrTokenMalformed
	}

	// Tokens stay valid after account deletion, so the account lookup is the
	// final authority.
	account, err := r.accounts.Find(ctx, claims.Subject)
	switch {
	case errors.Is(err, ErrAccountNotFound):
		return Identity{}, ErrUnknownAccount
	case err != nil:
		return Identity{}, fmt.Errorf("failed to load account: %w", err)
	}

	return account.Identity(), nil
}

func (r *Resolver) resolveSession(ctx context.Context, token string) (Identity, error) {
	record, err := r.sessions.Find(ctx, token)
	if err != nil {
		return Identity{}, ErrInvalidSession
	}

	// An expired record behaves exactly like a missing one.
	if record.Expired(time.Now()) {
		return Identity{}, ErrInvalidSession
	}

	account, err := r.accounts.Find(ctx, record.AccountID)
	switch {
	case errors.Is(err, ErrAccountNotFound):
		return Identity{}, ErrUnknownAccount
	case err != nil:
		return Identity{}, fmt.Errorf("failed to load account: %w", err)
	}

	return account.Identity(), nil
}
