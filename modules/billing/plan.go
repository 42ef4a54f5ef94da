package billing

// Plan ids form a closed table; anything outside it is treated as a legacy
// plan with a zero job limit.
const (
	PlanFree       = "free"
	PlanBasic      = "basic"
	PlanPremium    = "premium"
	PlanEnterprise = "enterprise"
)

// Plan describes a subscription tier: its monthly price and how many job
// postings it admits per activation window.
type Plan struct {
	ID       string
	Amount   int64 // price in the smallest currency unit (paise)
	Currency string
	JobLimit int64
}

// Purchasable reports whether the plan goes through the payment provider.
// The zero-cost tier is granted implicitly and has no activation window.
func (p Plan) Purchasable() bool {
	return p.Amount > 0
}

// DefaultPlans returns the fixed plan table.
func DefaultPlans() map[string]Plan {
	return map[string]Plan{
		PlanFree:       {ID: PlanFree, Amount: 0, Currency: "INR", JobLimit: 1},
		PlanBasic:      {ID: PlanBasic, Amount: 99900, Currency: "INR", JobLimit: 10},
		PlanPremium:    {ID: PlanPremium, Amount: 249900, Currency: "INR", JobLimit: 50},
		PlanEnterprise: {ID: PlanEnterprise, Amount: 499900, Currency: "INR", JobLimit: 999},
	}
}
