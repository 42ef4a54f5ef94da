package billing

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPlan         = errors.New("billing: invalid subscription plan")
	ErrSignatureInvalid    = errors.New("billing: payment signature verification failed")
	ErrOrderNotFound       = errors.New("billing: order not found")
	ErrEntitlementNotFound = errors.New("billing: entitlement not found")

	// ErrSubscriptionInactive means the caller must purchase or renew before
	// the gated operation is admitted.
	ErrSubscriptionInactive = errors.New("billing: subscription is not active")

	// ErrQuotaExceeded means the activation window's job limit is spent.
	// Returned wrapped in QuotaExceededError carrying the limit.
	ErrQuotaExceeded = errors.New("billing: job posting limit reached")

	// ErrProviderUnavailable marks transport-level provider failures
	// (timeouts, connection errors, provider 5xx). Only these trigger the
	// demo-mode fallback at order creation.
	ErrProviderUnavailable = errors.New("billing: payment provider unavailable")

	// ErrProviderRejected marks requests the provider understood and
	// refused. These surface to the caller instead of being masked as demo
	// mode.
	ErrProviderRejected = errors.New("billing: payment provider rejected the request")
)

// QuotaExceededError carries the plan and limit so callers can render an
// actionable upgrade message.
type QuotaExceededError struct {
	Plan  string
	Limit int64
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("billing: job posting limit of %d reached for the %s plan", e.Limit, e.Plan)
}

func (e *QuotaExceededError) Unwrap() error {
	return ErrQuotaExceeded
}
