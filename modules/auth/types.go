package auth

import "time"

// Role is the closed set of account roles. Authorization decisions match
// against these values exhaustively; there is no default-allow branch.
type Role string

const (
	RoleSeeker    Role = "job_seeker"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// Valid reports whether the role is one of the known variants.
func (r Role) Valid() bool {
	switch r {
	case RoleSeeker, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

// Identity is the authenticated caller for the lifetime of one request.
// It is read from the account record at resolution time and never persisted.
type Identity struct {
	AccountID string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Picture   string    `json:"picture,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Account is the stored account record.
type Account struct {
	ID           string    `bson:"user_id"`
	Email        string    `bson:"email"`
	Name         string    `bson:"name"`
	Role         Role      `bson:"role"`
	Picture      string    `bson:"picture,omitempty"`
	PasswordHash []byte    `bson:"password_hash,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
}

// Identity derives the request-scoped identity from the account record.
func (a *Account) Identity() Identity {
	return Identity{
		AccountID: a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Role:      a.Role,
		Picture:   a.Picture,
		CreatedAt: a.CreatedAt,
	}
}

// SessionRecord is the stored opaque-token credential used for brokered
// sign-in. A record whose expiry has passed is treated exactly like a
// missing record.
type SessionRecord struct {
	AccountID string    `bson:"user_id"`
	Token     string    `bson:"session_token"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

// Expired reports whether the record's expiry has passed. Timestamps are
// normalized to UTC before comparison to tolerate naive values written by
// other systems.
func (s *SessionRecord) Expired(now time.Time) bool {
	return !now.UTC().Before(s.ExpiresAt.UTC())
}
