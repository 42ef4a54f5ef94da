package auth

import "time"

// Config describes the auth module, loadable from the environment.
type Config struct {
	// SigningKey is the process-wide secret for signed tokens. Rotating it
	// invalidates every outstanding token.
	SigningKey string `env:"JWT_SECRET_KEY,required"`

	TokenTTL   time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"168h"`
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"168h"`

	// ExchangeURL is the identity broker's session-data endpoint.
	ExchangeURL     string        `env:"AUTH_EXCHANGE_URL"`
	ExchangeTimeout time.Duration `env:"AUTH_EXCHANGE_TIMEOUT" envDefault:"10s"`
}
