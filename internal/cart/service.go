package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tmm-digital/quote-api/internal/catalog"
	"github.com/tmm-digital/quote-api/internal/common"
	"github.com/tmm-digital/quote-api/internal/obs"
	"github.com/tmm-digital/quote-api/internal/pricing"
	"github.com/tmm-digital/quote-api/internal/promo"
)

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// ErrRequiresForm indicates an item that collects requirements instead of a price.
var ErrRequiresForm = errors.New("item requires a requirements submission")

// ErrAdvancedItem indicates an item locked behind the subscription tier.
var ErrAdvancedItem = errors.New("item requires an upgraded plan")

// Service encapsulates cart domain operations. Every mutation recomputes the
// subtotal and reconciles the automatic discount before persisting.
type Service struct {
	Store   *Store
	Catalog *catalog.Registry
	Engine  pricing.Engine
	Promos  promo.Engine
	TaxBps  int
	Now     func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Totals is the running money view of a cart.
type Totals struct {
	Items    []LineItem      `json:"items"`
	Lines    []pricing.Line  `json:"lines"`
	Discount *promo.Applied  `json:"discount,omitempty"`
	Summary  pricing.Summary `json:"summary"`
}

// Create opens a new empty cart, optionally bound to a user.
func (s *Service) Create(ctx context.Context, userID string) (*Cart, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("cart service not configured")
	}
	now := s.now()
	c := &Cart{
		ID:         uuid.NewString(),
		UserID:     userID,
		Items:      []LineItem{},
		Selections: make(map[pricing.Family]pricing.FamilySelection),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Store.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get loads a cart by id.
func (s *Service) Get(ctx context.Context, id string) (*Cart, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("cart service not configured")
	}
	return s.Store.Load(ctx, id)
}

// AddItem inserts or increments a fixed-price line item. Items configured
// through a family selector are rejected here; requirements-form items never
// become line items.
func (s *Service) AddItem(ctx context.Context, cartID, itemID string, qty int, allowAdvanced bool) (*Cart, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("qty must be positive: %w", ErrInvalidInput)
	}
	item, ok := s.Catalog.Item(itemID)
	if !ok {
		return nil, common.NewAppError("NOT_FOUND", "catalog item not found", 404, catalog.ErrItemNotFound)
	}
	if item.RequiresForm {
		return nil, common.NewAppError("REQUIRES_FORM", "this service is quoted after a requirements submission", 422, ErrRequiresForm)
	}
	if item.Family != "" {
		return nil, fmt.Errorf("item %s is configured through its family selector: %w", itemID, ErrInvalidInput)
	}
	if item.Advanced && !allowAdvanced {
		return nil, common.NewAppError("UPGRADE_REQUIRED", "this service needs a standard or premium plan", 403, ErrAdvancedItem)
	}
	return s.mutate(ctx, cartID, "add_item", func(c *Cart) error {
		for i := range c.Items {
			if c.Items[i].ItemID == itemID {
				c.Items[i].Qty += qty
				return nil
			}
		}
		c.Items = append(c.Items, LineItem{ItemID: item.ID, Name: item.Name, UnitPrice: item.Price, Qty: qty})
		return nil
	})
}

// UpdateItemQty sets the quantity of an existing line item. Zero removes it.
func (s *Service) UpdateItemQty(ctx context.Context, cartID, itemID string, qty int) (*Cart, error) {
	if qty < 0 {
		return nil, fmt.Errorf("qty must not be negative: %w", ErrInvalidInput)
	}
	return s.mutate(ctx, cartID, "update_item", func(c *Cart) error {
		for i := range c.Items {
			if c.Items[i].ItemID != itemID {
				continue
			}
			if qty == 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Qty = qty
			}
			return nil
		}
		return common.NewAppError("NOT_FOUND", "item not in cart", 404, ErrNotFound)
	})
}

// RemoveItem deletes a line item.
func (s *Service) RemoveItem(ctx context.Context, cartID, itemID string) (*Cart, error) {
	return s.UpdateItemQty(ctx, cartID, itemID, 0)
}

// SetSelection stores a family configuration, replacing any previous one for
// the same family.
func (s *Service) SetSelection(ctx context.Context, cartID string, sel pricing.FamilySelection, allowAdvanced bool) (*Cart, error) {
	if !pricing.Known(sel.Family) {
		return nil, fmt.Errorf("unknown family %q: %w", sel.Family, ErrInvalidInput)
	}
	if !allowAdvanced && advancedFamily(s.Catalog, sel) {
		return nil, common.NewAppError("UPGRADE_REQUIRED", "this configuration needs a standard or premium plan", 403, ErrAdvancedItem)
	}
	return s.mutate(ctx, cartID, "set_selection", func(c *Cart) error {
		c.Selections[sel.Family] = sel
		return nil
	})
}

// ClearSelection removes a family configuration.
func (s *Service) ClearSelection(ctx context.Context, cartID string, family pricing.Family) (*Cart, error) {
	if !pricing.Known(family) {
		return nil, fmt.Errorf("unknown family %q: %w", family, ErrInvalidInput)
	}
	return s.mutate(ctx, cartID, "clear_selection", func(c *Cart) error {
		delete(c.Selections, family)
		return nil
	})
}

// ApplyPromo validates a code against the subtotal at this instant and
// attaches it. Validity is not revisited when the cart later changes, but the
// amount tracks the subtotal through every reconcile. Entering the
// auto-discount code attaches it as auto-managed.
func (s *Service) ApplyPromo(ctx context.Context, cartID, code string) (*Cart, error) {
	c, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	subtotal := c.Subtotal(s.Engine)
	p, err := s.Promos.Validate(code, subtotal)
	if err != nil {
		if obs.PromoAppliedTotal != nil {
			obs.PromoAppliedTotal.WithLabelValues(promo.Canonical(code), "rejected").Inc()
		}
		return nil, promo.AppError(err)
	}
	if obs.PromoAppliedTotal != nil {
		obs.PromoAppliedTotal.WithLabelValues(p.Code, "ok").Inc()
	}
	return s.mutate(ctx, cartID, "apply_promo", func(c *Cart) error {
		c.Discount = &promo.Applied{Code: p.Code, Auto: p.AutoManaged}
		return nil
	})
}

// RemovePromo detaches a manually applied code. Removing the automatic
// discount is a no-op while its trigger holds: reconciliation reinstates it.
func (s *Service) RemovePromo(ctx context.Context, cartID string) (*Cart, error) {
	return s.mutate(ctx, cartID, "remove_promo", func(c *Cart) error {
		c.Discount = nil
		return nil
	})
}

// Totals computes the running summary for a cart.
func (s *Service) Totals(ctx context.Context, cartID string) (Totals, error) {
	c, err := s.Get(ctx, cartID)
	if err != nil {
		return Totals{}, err
	}
	return s.CartTotals(c), nil
}

// CartTotals derives the money view of an already loaded cart. The discount
// amount is always recomputed from the subtotal as it stands right now, so a
// stored cart whose contents changed since the code was applied still prices
// the discount over the current value.
func (s *Service) CartTotals(c *Cart) Totals {
	subtotal := c.Subtotal(s.Engine)
	discount := c.Discount
	var amount pricing.Money
	if discount != nil {
		current := *discount
		current.Amount = s.Promos.Amount(current.Code, subtotal)
		discount = &current
		amount = current.Amount
	}
	return Totals{
		Items:    c.Items,
		Lines:    c.Lines(s.Engine),
		Discount: discount,
		Summary:  pricing.Compute(subtotal, amount, s.TaxBps),
	}
}

// mutate loads, applies fn, reconciles the automatic discount, and persists.
func (s *Service) mutate(ctx context.Context, cartID, kind string, fn func(*Cart) error) (*Cart, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("cart service not configured")
	}
	c, err := s.Store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	c.Discount = s.Promos.Reconcile(c.Discount, c.ItemIDs(), c.Subtotal(s.Engine))
	c.UpdatedAt = s.now()
	if err := s.Store.Save(ctx, c); err != nil {
		return nil, err
	}
	if obs.CartMutationsTotal != nil {
		obs.CartMutationsTotal.WithLabelValues(kind).Inc()
	}
	return c, nil
}

// advancedFamily reports whether the configured selection corresponds to a
// tier-gated catalog item (custom builds of social, SEO, and WhatsApp).
func advancedFamily(reg *catalog.Registry, sel pricing.FamilySelection) bool {
	switch sel.Family {
	case pricing.FamilySEO:
		return itemAdvanced(reg, "seo-custom")
	case pricing.FamilyWhatsApp:
		if sel.WhatsApp != nil && sel.WhatsApp.PlanType == pricing.WhatsAppCustom {
			return itemAdvanced(reg, "whatsapp-suite")
		}
	case pricing.FamilySocialMedia:
		if sel.SocialMedia != nil && sel.SocialMedia.Type == pricing.SocialCustom {
			return itemAdvanced(reg, "social-custom")
		}
	}
	return false
}

func itemAdvanced(reg *catalog.Registry, id string) bool {
	if reg == nil {
		return false
	}
	item, ok := reg.Item(id)
	return ok && item.Advanced
}
