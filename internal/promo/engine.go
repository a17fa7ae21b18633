package promo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tmm-digital/quote-api/internal/common"
	"github.com/tmm-digital/quote-api/internal/pricing"
)

var (
	// ErrUnknownCode is returned for codes missing from the registry.
	ErrUnknownCode = errors.New("unknown promo code")
	// ErrMinOrderNotMet indicates the subtotal is below the promo threshold.
	ErrMinOrderNotMet = errors.New("minimum order value not met")
)

// Applied records a discount attached to a cart. Auto distinguishes codes the
// cart manages itself from customer-entered ones. The amount is derived from
// the subtotal current at the last reconcile, never frozen at apply time.
type Applied struct {
	Code   string        `json:"code"`
	Amount pricing.Money `json:"amount"`
	Auto   bool          `json:"auto,omitempty"`
}

// Engine validates codes against the registry and computes discount amounts.
type Engine struct {
	Registry *Registry
}

// NewEngine wires an engine over the given registry.
func NewEngine(r *Registry) Engine {
	return Engine{Registry: r}
}

// Validate checks a manually entered code against the current subtotal.
// Validity is checked only at apply time; an applied discount is not
// revalidated when the cart later changes. The auto-managed code is a valid
// entry like any other and simply stays under the cart's management.
func (e Engine) Validate(code string, subtotal pricing.Money) (Promo, error) {
	p, ok := e.Registry.Lookup(code)
	if !ok {
		return Promo{}, ErrUnknownCode
	}
	if p.MinOrder > 0 && subtotal < p.MinOrder {
		return Promo{}, fmt.Errorf("%s: %w", p.Description, ErrMinOrderNotMet)
	}
	return p, nil
}

// Discount computes the rupee discount of a promo against a subtotal.
// Percent promos round half up; fixed promos never exceed the subtotal.
func (e Engine) Discount(p Promo, subtotal pricing.Money) pricing.Money {
	if subtotal <= 0 {
		return 0
	}
	switch p.Kind {
	case KindPercent:
		return (subtotal*pricing.Money(p.Percent) + 50) / 100
	case KindFixed:
		if p.Value > subtotal {
			return subtotal
		}
		return p.Value
	}
	return 0
}

// Amount computes the current value of an applied code against a subtotal.
// Codes missing from the registry contribute nothing.
func (e Engine) Amount(code string, subtotal pricing.Money) pricing.Money {
	p, ok := e.Registry.Lookup(code)
	if !ok {
		return 0
	}
	return e.Discount(p, subtotal)
}

// AutoTriggered reports whether the item set qualifies for the automatic
// logo + website discount: a logo design together with any website package.
func AutoTriggered(itemIDs []string) bool {
	var logo, website bool
	for _, id := range itemIDs {
		if id == "logo-design" {
			logo = true
		}
		if strings.HasPrefix(id, "website-") {
			website = true
		}
	}
	return logo && website
}

// Reconcile derives the next applied-discount state after a cart mutation.
// Only the code survives between mutations; the amount is recomputed from the
// subtotal as it now stands. A manual code always wins over the automatic
// one; the automatic code appears when its trigger holds and no manual code
// is applied, and disappears the moment the trigger breaks.
func (e Engine) Reconcile(current *Applied, itemIDs []string, subtotal pricing.Money) *Applied {
	if current != nil && !current.Auto {
		return &Applied{
			Code:   current.Code,
			Amount: e.Amount(current.Code, subtotal),
		}
	}
	if !AutoTriggered(itemIDs) {
		return nil
	}
	auto, ok := e.Registry.Lookup(AutoDiscountCode)
	if !ok {
		return nil
	}
	return &Applied{
		Code:   auto.Code,
		Amount: e.Discount(auto, subtotal),
		Auto:   true,
	}
}

// AppError maps a validation failure to the HTTP error body rendered by the
// promo endpoints.
func AppError(err error) *common.AppError {
	switch {
	case errors.Is(err, ErrUnknownCode):
		return common.NewAppError("PROMO_INVALID", "invalid promo code", 422, err)
	case errors.Is(err, ErrMinOrderNotMet):
		return common.NewAppError("PROMO_MIN_ORDER", err.Error(), 422, err)
	}
	return common.NewAppError("INTERNAL", "internal server error", 500, err)
}
