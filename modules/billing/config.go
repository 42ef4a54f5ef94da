package billing

import "time"

// Config holds payment provider credentials and engine tuning. Empty
// credentials leave the engine in demo mode.
type Config struct {
	RazorpayKeyID     string        `env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string        `env:"RAZORPAY_KEY_SECRET"`
	ProviderTimeout   time.Duration `env:"RAZORPAY_TIMEOUT" envDefault:"10s"`
	ActivationWindow  time.Duration `env:"SUBSCRIPTION_WINDOW" envDefault:"720h"`
}

// Configured reports whether provider credentials are present.
func (c Config) Configured() bool {
	return c.RazorpayKeyID != "" && c.RazorpayKeySecret != ""
}
