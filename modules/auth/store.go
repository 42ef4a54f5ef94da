package auth

import "context"

// AccountStore defines account persistence.
type AccountStore interface {
	// Find retrieves an account by id.
	// Returns ErrAccountNotFound if no account exists.
	Find(ctx context.Context, accountID string) (*Account, error)

	// FindByEmail retrieves an account by email.
	// Returns ErrAccountNotFound if no account exists.
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// Create stores a new account.
	Create(ctx context.Context, account *Account) error

	// UpdateProfile refreshes mutable display attributes.
	UpdateProfile(ctx context.Context, accountID, name, picture string) error

	// List returns all accounts. Used by the admin surface only.
	List(ctx context.Context) ([]Account, error)

	// Delete removes an account by id.
	Delete(ctx context.Context, accountID string) error
}

// SessionStore defines session record persistence.
type SessionStore interface {
	// Find retrieves a session record by its opaque token.
	// Returns ErrSessionNotFound if no record exists.
	Find(ctx context.Context, token string) (*SessionRecord, error)

	// Create stores a new session record.
	Create(ctx context.Context, record *SessionRecord) error

	// DeleteAll removes every record carrying the given token.
	DeleteAll(ctx context.Context, token string) error
}
