package billing

import (
	"context"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	rzperrors "github.com/razorpay/razorpay-go/errors"
)

// RazorpayProvider implements Provider on the Razorpay order API.
type RazorpayProvider struct {
	client *razorpay.Client
}

// NewRazorpayProvider creates the provider from API credentials.
func NewRazorpayProvider(keyID, keySecret string) *RazorpayProvider {
	return &RazorpayProvider{client: razorpay.NewClient(keyID, keySecret)}
}

// CreateOrder creates an order with the provider. The underlying SDK call
// has no context support, so it runs in a goroutine and the result is
// abandoned if ctx expires first.
func (p *RazorpayProvider) CreateOrder(ctx context.Context, amount int64, currency string, notes map[string]string) (*ProviderOrder, error) {
	data := map[string]any{
		"amount":          amount,
		"currency":        currency,
		"payment_capture": 1,
	}
	if len(notes) > 0 {
		noteData := make(map[string]any, len(notes))
		for k, v := range notes {
			noteData[k] = v
		}
		data["notes"] = noteData
	}

	type orderResult struct {
		body map[string]any
		err  error
	}
	resultCh := make(chan orderResult, 1)
	go func() {
		body, err := p.client.Order.Create(data, nil)
		resultCh <- orderResult{body: body, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, errors.Join(ErrProviderUnavailable, ctx.Err())
	case res := <-resultCh:
		if res.err != nil {
			return nil, classifyProviderError(res.err)
		}
		return decodeProviderOrder(res.body)
	}
}

// classifyProviderError splits provider failures into "unavailable" (worth a
// demo-mode fallback) and "rejected" (our request was understood and
// refused, which must surface).
func classifyProviderError(err error) error {
	var badRequest *rzperrors.BadRequestError
	if errors.As(err, &badRequest) {
		return errors.Join(ErrProviderRejected, err)
	}
	return errors.Join(ErrProviderUnavailable, err)
}

func decodeProviderOrder(body map[string]any) (*ProviderOrder, error) {
	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: order response missing id", ErrProviderRejected)
	}

	order := &ProviderOrder{ID: id}
	if amount, ok := body["amount"].(float64); ok {
		order.Amount = int64(amount)
	}
	if currency, ok := body["currency"].(string); ok {
		order.Currency = currency
	}
	return order, nil
}
