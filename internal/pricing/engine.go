package pricing

// Money represents a monetary value in whole rupees.
type Money = int64

// Item describes a quantity-bearing catalog line used for subtotal calculation.
type Item struct {
	Qty       int
	UnitPrice Money
}

// Summary aggregates computed pricing components for a quote.
type Summary struct {
	Subtotal Money `json:"subtotal"`
	Discount Money `json:"discount"`
	Taxable  Money `json:"taxable"`
	Tax      Money `json:"tax"`
	Total    Money `json:"total"`
}

// Subtotal sums simple line items and family selection totals. All terms are
// integers so the result is independent of summation order.
func Subtotal(items []Item, familyTotals []Money) Money {
	var subtotal Money
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		subtotal += Money(it.Qty) * it.UnitPrice
	}
	for _, t := range familyTotals {
		if t > 0 {
			subtotal += t
		}
	}
	return subtotal
}

// Compute derives the payable total from a subtotal, an already-computed
// discount amount, and a tax rate in basis points.
func Compute(subtotal, discount Money, taxBps int) Summary {
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	taxable := subtotal - discount
	tax := (taxable * Money(taxBps)) / 10000
	return Summary{
		Subtotal: subtotal,
		Discount: discount,
		Taxable:  taxable,
		Tax:      tax,
		Total:    taxable + tax,
	}
}
