package billing

import "context"

// ProviderOrder is the provider's view of a created order.
type ProviderOrder struct {
	ID       string
	Amount   int64
	Currency string
}

// Provider is the payment provider's order API.
//
// Implementations classify failures: transport-level problems are wrapped in
// ErrProviderUnavailable so the engine can fall back to demo mode, while
// requests the provider refused are wrapped in ErrProviderRejected and
// surface to the caller. A bare catch-all would silently mask programming
// errors as demo mode.
type Provider interface {
	CreateOrder(ctx context.Context, amount int64, currency string, notes map[string]string) (*ProviderOrder, error)
}
