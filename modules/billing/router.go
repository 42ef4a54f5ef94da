package billing

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jobdeskhq/jobdesk/core"
	"github.com/jobdeskhq/jobdesk/modules/auth"
)

// Router mounts the payment endpoints. Both are recruiter-only.
func Router(engine *Engine, resolver *auth.Resolver) chi.Router {
	h := &handlers{engine: engine, resolver: resolver}

	r := chi.NewRouter()
	r.Post("/create-order", h.createOrder)
	r.Post("/verify-payment", h.verifyPayment)
	return r
}

type handlers struct {
	engine   *Engine
	resolver *auth.Resolver
}

func (h *handlers) createOrder(w http.ResponseWriter, r *http.Request) {
	identity, err := h.resolver.RequireRole(r.Context(), auth.CredentialFromRequest(r), auth.RoleRecruiter)
	if err != nil {
		core.Error(w, auth.HTTPError(err))
		return
	}

	var req struct {
		Plan string `json:"plan"`
	}
	if err := core.DecodeJSON(r, &req); err != nil {
		core.Error(w, err)
		return
	}

	order, err := h.engine.CreateOrder(r.Context(), identity.AccountID, req.Plan)
	if err != nil {
		core.Error(w, httpError(err))
		return
	}

	core.JSON(w, http.StatusOK, order)
}

func (h *handlers) verifyPayment(w http.ResponseWriter, r *http.Request) {
	identity, err := h.resolver.RequireRole(r.Context(), auth.CredentialFromRequest(r), auth.RoleRecruiter)
	if err != nil {
		core.Error(w, auth.HTTPError(err))
		return
	}

	var req struct {
		OrderID   string `json:"razorpay_order_id"`
		PaymentID string `json:"razorpay_payment_id"`
		Signature string `json:"razorpay_signature"`
	}
	if err := core.DecodeJSON(r, &req); err != nil {
		core.Error(w, err)
		return
	}
	if req.OrderID == "" || req.PaymentID == "" {
		core.Error(w, core.ErrBadRequest.WithMessage("order id and payment id are required"))
		return
	}

	result, err := h.engine.VerifyPayment(r.Context(), req.OrderID, req.PaymentID, req.Signature, identity.AccountID)
	if err != nil {
		core.Error(w, httpError(err))
		return
	}

	core.JSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"plan":        result.Plan,
		"valid_until": result.ValidUntil,
		"demo_mode":   result.DemoMode,
	})
}

// httpError maps billing errors onto boundary status codes.
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidPlan):
		return core.ErrBadRequest.WithMessage(err.Error())
	case errors.Is(err, ErrSignatureInvalid):
		return core.ErrBadRequest.WithMessage(err.Error())
	case errors.Is(err, ErrOrderNotFound):
		return core.ErrNotFound.WithMessage(err.Error())
	case errors.Is(err, ErrProviderRejected):
		return core.ErrBadRequest.WithMessage(err.Error())
	case errors.Is(err, ErrSubscriptionInactive), errors.Is(err, ErrQuotaExceeded):
		return core.ErrPaymentRequired.WithMessage(err.Error())
	default:
		return err
	}
}

// HTTPError exposes the billing error mapping to modules gating their
// operations on the quota gate.
func HTTPError(err error) error {
	return httpError(err)
}
