package billing

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jobdeskhq/jobdesk/pkg/shortid"
)

// DemoOrderPrefix tags locally synthesized order ids so they are always
// distinguishable from provider-issued ones.
const DemoOrderPrefix = "order_demo_"

const demoKeyID = "demo_key"

// Engine orchestrates order creation, payment-proof verification and
// entitlement activation.
//
// Order creation trades strictness for availability: if the provider is
// unconfigured or unreachable the engine synthesizes a demo order rather
// than failing the caller. Verification is the opposite: live orders demand
// a valid signature and any unexpected failure is terminal, because failing
// to create an order costs a transaction while failing to verify a payment
// costs unearned access.
type Engine struct {
	plans        map[string]Plan
	entitlements EntitlementStore
	orders       OrderStore
	provider     Provider
	keyID        string
	secret       string
	window       time.Duration
	callTimeout  time.Duration
	logger       *slog.Logger
}

// EngineOption configures optional engine behaviour.
type EngineOption func(*Engine)

// WithEngineLogger sets a custom logger.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithActivationWindow overrides the subscription window length.
func WithActivationWindow(window time.Duration) EngineOption {
	return func(e *Engine) {
		if window > 0 {
			e.window = window
		}
	}
}

// WithProviderTimeout bounds each provider call.
func WithProviderTimeout(timeout time.Duration) EngineOption {
	return func(e *Engine) {
		if timeout > 0 {
			e.callTimeout = timeout
		}
	}
}

// NewEngine creates the subscription engine. A nil provider puts the engine
// permanently in demo mode; keyID/secret are the provider credentials used
// for checkout key material and signature verification.
func NewEngine(entitlements EntitlementStore, orders OrderStore, provider Provider, keyID, secret string, opts ...EngineOption) *Engine {
	e := &Engine{
		plans:        DefaultPlans(),
		entitlements: entitlements,
		orders:       orders,
		provider:     provider,
		keyID:        keyID,
		secret:       secret,
		window:       30 * 24 * time.Hour,
		callTimeout:  10 * time.Second,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Plans returns the plan table the engine gates against.
func (e *Engine) Plans() map[string]Plan {
	return e.plans
}

// CreateOrder validates the plan and creates a payment order for it.
// Provider unavailability never fails the caller; the engine falls back to
// a locally synthesized demo order instead.
func (e *Engine) CreateOrder(ctx context.Context, accountID, planID string) (*OrderView, error) {
	plan, ok := e.plans[planID]
	if !ok || !plan.Purchasable() {
		return nil, ErrInvalidPlan
	}

	if e.provider == nil {
		e.logger.WarnContext(ctx, "payment provider not configured, creating demo order",
			slog.String("account_id", accountID),
			slog.String("plan", planID))
		return e.createDemoOrder(ctx, accountID, plan)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()

	providerOrder, err := e.provider.CreateOrder(callCtx, plan.Amount, plan.Currency, map[string]string{
		"user_id": accountID,
		"plan":    planID,
	})
	switch {
	case errors.Is(err, ErrProviderUnavailable):
		e.logger.WarnContext(ctx, "payment provider unavailable, falling back to demo order",
			slog.String("account_id", accountID),
			slog.Any("error", err))
		return e.createDemoOrder(ctx, accountID, plan)
	case err != nil:
		return nil, fmt.Errorf("order creation failed: %w", err)
	}

	if err := e.orders.Create(ctx, &PendingOrder{
		ID:        shortid.New("pay"),
		OrderID:   providerOrder.ID,
		AccountID: accountID,
		Plan:      planID,
		Amount:    plan.Amount,
		Status:    OrderCreated,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	return &OrderView{
		OrderID:  providerOrder.ID,
		Amount:   plan.Amount,
		Currency: plan.Currency,
		KeyID:    e.keyID,
		DemoMode: false,
	}, nil
}

func (e *Engine) createDemoOrder(ctx context.Context, accountID string, plan Plan) (*OrderView, error) {
	orderID := DemoOrderPrefix + strings.TrimPrefix(shortid.New("x"), "x_")

	if err := e.orders.Create(ctx, &PendingOrder{
		ID:        shortid.New("pay"),
		OrderID:   orderID,
		AccountID: accountID,
		Plan:      plan.ID,
		Amount:    plan.Amount,
		Status:    OrderCreated,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("failed to persist demo order: %w", err)
	}

	return &OrderView{
		OrderID:  orderID,
		Amount:   plan.Amount,
		Currency: plan.Currency,
		KeyID:    demoKeyID,
		DemoMode: true,
	}, nil
}

// VerifyPayment checks the payment proof for an order and activates the
// entitlement exactly once. Re-running verification for an already
// activated order succeeds without re-mutating the entitlement window, so
// retried provider callbacks cannot extend the subscription twice.
func (e *Engine) VerifyPayment(ctx context.Context, orderID, paymentID, signature, accountID string) (*ActivationResult, error) {
	if strings.HasPrefix(orderID, DemoOrderPrefix) {
		return e.verifyDemoOrder(ctx, orderID, paymentID, accountID)
	}

	// The signature is recomputed locally and compared constant-time; a
	// forged callback is rejected before any state is read or written.
	if !e.signatureValid(orderID, paymentID, signature) {
		return nil, ErrSignatureInvalid
	}

	order, err := e.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	transitioned, err := e.orders.MarkActivated(ctx, orderID, OrderActivated, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if !transitioned {
		return e.alreadyActivated(ctx, accountID, order.Plan, false)
	}

	result, err := e.activate(ctx, accountID, order.Plan, false)
	if err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "subscription activated",
		slog.String("account_id", accountID),
		slog.String("order_id", orderID),
		slog.String("plan", order.Plan))

	return result, nil
}

// verifyDemoOrder is deliberately permissive: no real provider issued the
// order, so there is no proof to check. A missing order record (created in
// a prior fallback and never durably stored) resolves to the default plan.
func (e *Engine) verifyDemoOrder(ctx context.Context, orderID, paymentID, accountID string) (*ActivationResult, error) {
	plan := PlanBasic

	order, err := e.orders.Get(ctx, orderID)
	switch {
	case errors.Is(err, ErrOrderNotFound):
		if err := e.orders.Create(ctx, &PendingOrder{
			ID:        shortid.New("pay"),
			OrderID:   orderID,
			AccountID: accountID,
			Plan:      plan,
			Amount:    e.plans[plan].Amount,
			Status:    OrderCreated,
			CreatedAt: time.Now().UTC(),
		}); err != nil {
			return nil, fmt.Errorf("failed to persist demo order: %w", err)
		}
	case err != nil:
		return nil, err
	default:
		plan = order.Plan
	}

	transitioned, err := e.orders.MarkActivated(ctx, orderID, OrderActivatedUnverified, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if !transitioned {
		return e.alreadyActivated(ctx, accountID, plan, true)
	}

	return e.activate(ctx, accountID, plan, true)
}

// activate resets the entitlement to a fresh window. Renewal does not stack
// remaining days from a prior window.
func (e *Engine) activate(ctx context.Context, accountID, plan string, demo bool) (*ActivationResult, error) {
	start := time.Now().UTC()
	end := start.Add(e.window)

	if err := e.entitlements.Activate(ctx, accountID, plan, start, end); err != nil {
		return nil, fmt.Errorf("failed to activate entitlement: %w", err)
	}

	return &ActivationResult{Plan: plan, ValidUntil: end, DemoMode: demo}, nil
}

// alreadyActivated reports success for a replayed verification without
// touching the entitlement.
func (e *Engine) alreadyActivated(ctx context.Context, accountID, plan string, demo bool) (*ActivationResult, error) {
	result := &ActivationResult{Plan: plan, DemoMode: demo}
	if entitlement, err := e.entitlements.Get(ctx, accountID); err == nil && entitlement.WindowEnd != nil {
		result.Plan = entitlement.Plan
		result.ValidUntil = *entitlement.WindowEnd
	}
	return result, nil
}

func (e *Engine) signatureValid(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(e.secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
