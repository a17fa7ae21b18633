package cart

import (
	"time"

	"github.com/tmm-digital/quote-api/internal/pricing"
	"github.com/tmm-digital/quote-api/internal/promo"
)

// LineItem is a quantity-bearing catalog item in the cart.
type LineItem struct {
	ItemID    string        `json:"itemId"`
	Name      string        `json:"name"`
	UnitPrice pricing.Money `json:"unitPrice"`
	Qty       int           `json:"qty"`
}

// Cart is the working quote document. Selections are keyed by family so a
// new configuration structurally replaces the previous one.
type Cart struct {
	ID         string                                     `json:"id"`
	UserID     string                                     `json:"userId,omitempty"`
	Items      []LineItem                                 `json:"items"`
	Selections map[pricing.Family]pricing.FamilySelection `json:"selections"`
	Discount   *promo.Applied                             `json:"discount,omitempty"`
	CreatedAt  time.Time                                  `json:"createdAt"`
	UpdatedAt  time.Time                                  `json:"updatedAt"`
}

// ItemIDs lists the ids of every line item, for discount trigger checks.
func (c *Cart) ItemIDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.ItemID)
	}
	return ids
}

// Subtotal sums line items and evaluated family selections.
func (c *Cart) Subtotal(engine pricing.Engine) pricing.Money {
	items := make([]pricing.Item, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, pricing.Item{Qty: it.Qty, UnitPrice: it.UnitPrice})
	}
	totals := make([]pricing.Money, 0, len(c.Selections))
	for _, sel := range c.Selections {
		if line, ok := engine.Evaluate(sel); ok {
			totals = append(totals, line.Total)
		}
	}
	return pricing.Subtotal(items, totals)
}

// Lines returns the evaluated family selection lines in stable family order.
func (c *Cart) Lines(engine pricing.Engine) []pricing.Line {
	lines := make([]pricing.Line, 0, len(c.Selections))
	for _, family := range pricing.Families {
		sel, ok := c.Selections[family]
		if !ok {
			continue
		}
		if line, ok := engine.Evaluate(sel); ok {
			lines = append(lines, line)
		}
	}
	return lines
}
