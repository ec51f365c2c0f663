package plans

// Plan describes one subscription plan offered on the site.
// Amount is in JPY minor units (JPY has no decimals, so yen == minor units).
type Plan struct {
	ID          string
	Name        string
	PriceID     string
	Amount      int64
	Description string
}

// Configured reports whether the plan has a Stripe price reference.
// Price IDs live in the Stripe Dashboard and reach us via environment
// variables, so an empty value means a deployment problem, not a user error.
func (p Plan) Configured() bool {
	return p.PriceID != ""
}

// Plan identifiers accepted by the API
const (
	PlanLight    = "light"
	PlanStandard = "standard"
	PlanPremium  = "premium"
)

// Catalog is the fixed plan set, built once at startup and never mutated
type Catalog struct {
	plans map[string]Plan
	order []string
}

// NewCatalog builds the catalog with the env-configured Stripe price IDs
func NewCatalog(priceLight, priceStandard, pricePremium string) *Catalog {
	all := []Plan{
		{
			ID:          PlanLight,
			Name:        "ライトプラン",
			PriceID:     priceLight,
			Amount:      50000,
			Description: "AIニュースレポート、メールサポート",
		},
		{
			ID:          PlanStandard,
			Name:        "スタンダードプラン",
			PriceID:     priceStandard,
			Amount:      300000,
			Description: "30時間/月、同時3件、月次レポート",
		},
		{
			ID:          PlanPremium,
			Name:        "プレミアムプラン",
			PriceID:     pricePremium,
			Amount:      500000,
			Description: "60時間/月、無制限、優先対応、専任担当",
		},
	}

	c := &Catalog{plans: make(map[string]Plan, len(all))}
	for _, p := range all {
		c.plans[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c
}

// Lookup returns the plan for the given identifier. Any string is accepted;
// only membership in the fixed set succeeds.
func (c *Catalog) Lookup(planID string) (Plan, bool) {
	p, ok := c.plans[planID]
	return p, ok
}

// All returns the plans in display order
func (c *Catalog) All() []Plan {
	out := make([]Plan, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.plans[id])
	}
	return out
}
