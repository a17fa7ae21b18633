package quote

import (
	"time"

	"github.com/tmm-digital/quote-api/internal/cart"
	"github.com/tmm-digital/quote-api/internal/pricing"
	"github.com/tmm-digital/quote-api/internal/promo"
)

// Snapshot is the immutable quote document produced by Finalize. It carries a
// deep copy of everything needed to re-render the quote without consulting
// the catalog or rate tables again.
type Snapshot struct {
	ID          string                                     `json:"id"`
	QuoteNumber string                                     `json:"quoteNumber"`
	UserID      string                                     `json:"userId,omitempty"`
	Items       []cart.LineItem                            `json:"items"`
	Selections  map[pricing.Family]pricing.FamilySelection `json:"selections"`
	Lines       []pricing.Line                             `json:"lines"`
	Discount    *promo.Applied                             `json:"discount,omitempty"`
	Summary     pricing.Summary                            `json:"summary"`
	Currency    string                                     `json:"currency"`
	CreatedAt   time.Time                                  `json:"createdAt"`
}

func snapshotFromCart(c *cart.Cart, totals cart.Totals, currency string) Snapshot {
	items := make([]cart.LineItem, len(c.Items))
	copy(items, c.Items)
	selections := make(map[pricing.Family]pricing.FamilySelection, len(c.Selections))
	for family, sel := range c.Selections {
		selections[family] = sel
	}
	lines := make([]pricing.Line, len(totals.Lines))
	copy(lines, totals.Lines)
	var discount *promo.Applied
	if totals.Discount != nil {
		d := *totals.Discount
		discount = &d
	}
	return Snapshot{
		UserID:     c.UserID,
		Items:      items,
		Selections: selections,
		Lines:      lines,
		Discount:   discount,
		Summary:    totals.Summary,
		Currency:   currency,
	}
}
