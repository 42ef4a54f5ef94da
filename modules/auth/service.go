package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jobdeskhq/jobdesk/pkg/jwt"
	"github.com/jobdeskhq/jobdesk/pkg/shortid"
)

// RegisterHook runs after an account is created, letting other modules set
// up their per-account records (profiles, entitlements).
type RegisterHook func(ctx context.Context, account *Account) error

// Service implements sign-up and both sign-in flows: direct email/password
// credentials producing a signed token, and the brokered exchange producing
// a stored session record.
type Service struct {
	accounts   AccountStore
	sessions   SessionStore
	tokens     *jwt.Service
	exchanger  IdentityExchanger
	tokenTTL   time.Duration
	sessionTTL time.Duration
	bcryptCost int
	logger     *slog.Logger
	hooks      []RegisterHook
}

// ServiceOption configures optional service behaviour.
type ServiceOption func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTokenTTL sets the lifetime baked into issued signed tokens.
func WithTokenTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) { s.tokenTTL = ttl }
}

// WithSessionTTL sets the lifetime of created session records.
func WithSessionTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) { s.sessionTTL = ttl }
}

// WithBcryptCost sets the bcrypt cost for password hashing.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) { s.bcryptCost = cost }
}

// WithRegisterHook appends a hook invoked after successful registration.
func WithRegisterHook(hook RegisterHook) ServiceOption {
	return func(s *Service) {
		if hook != nil {
			s.hooks = append(s.hooks, hook)
		}
	}
}

// NewService creates the auth service.
func NewService(accounts AccountStore, sessions SessionStore, tokens *jwt.Service, exchanger IdentityExchanger, opts ...ServiceOption) *Service {
	s := &Service{
		accounts:   accounts,
		sessions:   sessions,
		tokens:     tokens,
		exchanger:  exchanger,
		tokenTTL:   7 * 24 * time.Hour,
		sessionTTL: 7 * 24 * time.Hour,
		bcryptCost: bcrypt.DefaultCost,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account with email/password credentials and issues a
// signed token. Only seeker and recruiter roles can self-register.
func (s *Service) Register(ctx context.Context, email, password, name string, role Role) (*Account, string, error) {
	if role != RoleSeeker && role != RoleRecruiter {
		return nil, "", ErrInvalidRole
	}

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	account := &Account{
		ID:           shortid.New("user"),
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, "", fmt.Errorf("failed to create account: %w", err)
	}

	if err := s.runHooks(ctx, account); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(account.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.InfoContext(ctx, "account registered",
		slog.String("account_id", account.ID),
		slog.String("role", string(role)))

	return account, token, nil
}

// Login verifies email/password credentials and issues a signed token.
// Missing account and wrong password both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*Account, string, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(account.ID)
	if err != nil {
		return nil, "", err
	}

	return account, token, nil
}

// ExchangeSession completes a brokered sign-in: it trades the broker session
// id for a verified identity, upserts the account (new accounts default to
// the seeker role) and stores the broker's session token as a session record.
func (s *Service) ExchangeSession(ctx context.Context, brokerSessionID string) (*Account, string, error) {
	identity, err := s.exchanger.Exchange(ctx, brokerSessionID)
	if err != nil {
		s.logger.ErrorContext(ctx, "identity exchange failed", slog.Any("error", err))
		return nil, "", ErrExchangeFailed
	}

	account, err := s.accounts.FindByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		if err := s.accounts.UpdateProfile(ctx, account.ID, identity.Name, identity.Picture); err != nil {
			return nil, "", fmt.Errorf("failed to refresh account profile: %w", err)
		}
		account.Name = identity.Name
		account.Picture = identity.Picture
	default:
		account = &Account{
			ID:        shortid.New("user"),
			Email:     identity.Email,
			Name:      identity.Name,
			Role:      RoleSeeker,
			Picture:   identity.Picture,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.accounts.Create(ctx, account); err != nil {
			return nil, "", fmt.Errorf("failed to create account: %w", err)
		}
		if err := s.runHooks(ctx, account); err != nil {
			return nil, "", err
		}
	}

	record := &SessionRecord{
		AccountID: account.ID,
		Token:     identity.SessionToken,
		ExpiresAt: time.Now().UTC().Add(s.sessionTTL),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, record); err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	return account, identity.SessionToken, nil
}

// Logout removes every session record carrying the token. Signed tokens
// cannot be revoked; they simply expire.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteAll(ctx, token)
}

func (s *Service) issueToken(accountID string) (string, error) {
	now := time.Now()
	token, err := s.tokens.Sign(jwt.Claims{
		Subject:   accountID,
		ExpiresAt: now.Add(s.tokenTTL).Unix(),
		IssuedAt:  now.Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s *Service) runHooks(ctx context.Context, account *Account) error {
	for _, hook := range s.hooks {
		if err := hook(ctx, account); err != nil {
			return fmt.Errorf("register hook failed: %w", err)
		}
	}
	return nil
}
