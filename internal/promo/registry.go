package promo

import "strings"

// Kind distinguishes how a promotion computes its discount.
type Kind string

const (
	KindPercent Kind = "percent"
	KindFixed   Kind = "fixed"
)

// Promo is one entry of the static promotion registry.
type Promo struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Kind        Kind   `json:"kind"`
	Percent     int    `json:"percent,omitempty"`
	Value       int64  `json:"value,omitempty"`
	MinOrder    int64  `json:"minOrder,omitempty"`
	// AutoManaged promos are applied and removed by the cart itself;
	// entering one manually hands it straight to that management.
	AutoManaged bool `json:"autoManaged,omitempty"`
}

// AutoDiscountCode is applied automatically when a logo design and any
// website package share the cart.
const AutoDiscountCode = "LOGOWEBSITE20"

// Registry holds the known promotions keyed by canonical code.
type Registry struct {
	promos map[string]Promo
}

// DefaultRegistry returns the published promotion set.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Promo{Code: "TMM10", Description: "10% off your order", Kind: KindPercent, Percent: 10},
		Promo{Code: "NEWUSER", Description: "15% off for new customers", Kind: KindPercent, Percent: 15},
		Promo{Code: "SUMMER25", Description: "25% off summer special", Kind: KindPercent, Percent: 25},
		Promo{Code: "SAVE5000", Description: "Flat ₹5,000 off on orders above ₹50,000", Kind: KindFixed, Value: 5000, MinOrder: 50000},
		Promo{Code: AutoDiscountCode, Description: "20% off logo + website combo", Kind: KindPercent, Percent: 20, AutoManaged: true},
	)
}

// NewRegistry builds a registry from explicit entries. Codes are
// canonicalized to upper case.
func NewRegistry(promos ...Promo) *Registry {
	m := make(map[string]Promo, len(promos))
	for _, p := range promos {
		p.Code = Canonical(p.Code)
		m[p.Code] = p
	}
	return &Registry{promos: m}
}

// Lookup finds a promotion by code, canonicalizing first.
func (r *Registry) Lookup(code string) (Promo, bool) {
	p, ok := r.promos[Canonical(code)]
	return p, ok
}

// Canonical normalizes user-entered codes for lookup.
func Canonical(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
