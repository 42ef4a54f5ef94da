package auth

import "errors"

var (
	// Credential resolution failures. All are terminal for the request and
	// surfaced verbatim; the resolver never retries.
	ErrNotAuthenticated = errors.New("auth: not authenticated")
	ErrTokenMalformed   = errors.New("auth: invalid token")
	ErrTokenExpired     = errors.New("auth: token expired")
	ErrInvalidSession   = errors.New("auth: invalid session")
	ErrUnknownAccount   = errors.New("auth: account not found")

	// ErrForbidden means the caller is known but the required role does not
	// match. Distinct from ErrNotAuthenticated on purpose.
	ErrForbidden = errors.New("auth: access denied")

	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	ErrInvalidRole        = errors.New("auth: invalid role")
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrExchangeFailed     = errors.New("auth: identity exchange failed")

	ErrAccountNotFound = errors.New("auth: account record not found")
	ErrSessionNotFound = errors.New("auth: session record not found")
)
