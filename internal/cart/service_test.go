package cart_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/tmm-digital/quote-api/internal/cart"
	"github.com/tmm-digital/quote-api/internal/catalog"
	"github.com/tmm-digital/quote-api/internal/pricing"
	"github.com/tmm-digital/quote-api/internal/promo"
)

func newTestService(t *testing.T) *cart.Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &cart.Service{
		Store:   &cart.Store{R: client, TTL: time.Hour},
		Catalog: catalog.DefaultRegistry(),
		Engine:  pricing.NewEngine(pricing.DefaultTables()),
		Promos:  promo.NewEngine(promo.DefaultRegistry()),
		TaxBps:  1800,
		Now:     func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestAddUpdateRemoveItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, "")
	require.NoError(t, err)

	c, err = svc.AddItem(ctx, c.ID, "logo-design", 1, false)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	require.EqualValues(t, 7000, c.Items[0].UnitPrice)

	// same item increments
	c, err = svc.AddItem(ctx, c.ID, "logo-design", 2, false)
	require.NoError(t, err)
	require.Equal(t, 3, c.Items[0].Qty)

	c, err = svc.UpdateItemQty(ctx, c.ID, "logo-design", 1)
	require.NoError(t, err)
	require.Equal(t, 1, c.Items[0].Qty)

	c, err = svc.RemoveItem(ctx, c.ID, "logo-design")
	require.NoError(t, err)
	require.Empty(t, c.Items)
}

func TestAddItemRejectsConfigurableAndFormItems(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c, err := svc.Create(ctx, "")
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, c.ID, "poster-creative", 1, false)
	require.ErrorIs(t, err, cart.ErrInvalidInput)

	_, err = svc.AddItem(ctx, c.ID, "webapp-simple", 1, false)
	require.ErrorIs(t, err, cart.ErrRequiresForm)

	_, err = svc.AddItem(ctx, c.ID, "nonexistent", 1, false)
	require.ErrorIs(t, err, catalog.ErrItemNotFound)
}

func TestAdvancedItemGating(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c, err := svc.Create(ctx, "user-1")
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, c.ID, "website-vip", 1, false)
	require.ErrorIs(t, err, cart.ErrAdvancedItem)

	_, err = svc.AddItem(ctx, c.ID, "website-vip", 1, true)
	require.NoError(t, err)

	sel := pricing.FamilySelection{
		Family: pricing.FamilySEO,
		SEO:    &pricing.SEOSelection{Features: []pricing.SEOFeaturePick{{FeatureID: "keyword-research", Tier: pricing.PackageBasic}}},
	}
	_, err = svc.SetSelection(ctx, c.ID, sel, false)
	require.ErrorIs(t, err, cart.ErrAdvancedItem)
	_, err = svc.SetSelection(ctx, c.ID, sel, true)
	require.NoError(t, err)
}

func TestSelectionReplacesPreviousConfiguration(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c, err := svc.Create(ctx, "")
	require.NoError(t, err)

	first := pricing.FamilySelection{
		Family: pricing.FamilyPoster,
		Poster: &pricing.PosterSelection{Type: pricing.PosterCreative, Quantity: 5},
	}
	c, err = svc.SetSelection(ctx, c.ID, first, false)
	require.NoError(t, err)

	second := pricing.FamilySelection{
		Family: pricing.FamilyPoster,
		Poster: &pricing.PosterSelection{Type: pricing.PosterNormal, Quantity: 2},
	}
	c, err = svc.SetSelection(ctx, c.ID, second, false)
	require.NoError(t, err)
	require.Len(t, c.Selections, 1)

	totals, err := svc.Totals(ctx, c.ID)
	require.NoError(t, err)
	require.EqualValues(t, 800, totals.Summary.Subtotal)

	c, err = svc.ClearSelection(ctx, c.ID, pricing.FamilyPoster)
	require.NoError(t, err)
	require.Empty(t, c.Selections)
}

func TestTotalsExample(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c, err := svc.Create(ctx, "")
	require.NoError(t, err)

	sel := pricing.FamilySelection{
		Family:       pricing.FamilyPresentation,
		Presentation: &pricing.PresentationSelection{Tier: pricing.PresentationBusiness, Slides: 2},
	}
	_, err = svc.SetSelection(ctx, c.ID, sel, false)
	require.NoError(t, err)

	// subtotal 1000, manual 10% promo => discount 100, GST 18% on 900
	_, err = svc.ApplyPromo(ctx, c.ID, "TMM10")
	require.NoError(t, err)

	totals, err := svc.Totals(ctx, c.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1000, totals.Summary.Subtotal)
	require.EqualValues(t, 100, totals.Summary.Discount)
	require.EqualValues(t, 162, totals.Summary.Tax)
	require.EqualValues(t, 1062, totals.Summary.Total)
}

func TestPromoValidatedAtApplyTimeOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c, err := svc.Create(ctx, "")
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, c.ID, "website-premium", 1, false)
	require.NoError(t, err)

	// subtotal 74999 >= 50000, SAVE5000 applies
	c, err = svc.ApplyPromo(ctx, c.ID, "SAVE5000")
	require.NoError(t, err)
	require.EqualValues(t, 5000, c.Discount.Amount)

	// emptying the cart leaves the code attached; the amount clamps to the
	// subtotal it is now computed against
	c, err = svc.RemoveItem(ctx, c.ID, "website-premium")
	require.NoError(t, err)
	require.NotNil(t, c.Discount)
	require.Equal(t, "SAVE5000", c.Discount.Code)
	require.EqualValues(t, 0, c.Discount.Amount)

	// the discount floor is still zero: total never goes negative
	totals, err := svc.Totals(ctx, c.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, totals.Summary.Total)

	// re-applying revalidates and now fails
	_, err = svc.ApplyPromo(ctx, c.ID, "SAVE5000")
	require.ErrorIs(t, err, promo.ErrMinOrderNotMet)
}

func TestManualDiscountTracksSubtotal(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c, err := svc.Create(ctx, "")
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, c.ID, "logo-design", 1, false)
	require.NoError(t, err)

	// 10% of 7000 at apply time
	c, err = svc.ApplyPromo(ctx, c.ID, "TMM10")
	require.NoError(t, err)
	require.EqualValues(t, 700, c.Discount.Amount)

	// growing the cart reprices the discount over the new subtotal
	sel := pricing.FamilySelection{
		Family: pricing.FamilyPoster,
		Poster: &pricing.PosterSelection{Type: pricing.PosterCreative, Quantity: 10},
	}
	c, err = svc.SetSelection(ctx, c.ID, sel, false)
	require.NoError(t, err)
	require.EqualValues(t, 1250, c.Discount.Amount)

	totals, err := svc.Totals(ctx, c.ID)
	require.NoError(t, err)
	require.EqualValues(t, 12500, totals.Summary.Subtotal)
	require.EqualValues(t, 1250, totals.Summary.Discount)
}

func TestAutoDiscountLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c, err := svc.Create(ctx, "")
	require.NoError(t, err)

	c, err = svc.AddItem(ctx, c.ID, "logo-design", 1, false)
	require.NoError(t, err)
	require.Nil(t, c.Discount)

	c, err = svc.AddItem(ctx, c.ID, "website-basic", 1, false)
	require.NoError(t, err)
	require.NotNil(t, c.Discount)
	require.Equal(t, promo.AutoDiscountCode, c.Discount.Code)
	require.True(t, c.Discount.Auto)
	// 20% of 31999, rounded half up
	require.EqualValues(t, 6400, c.Discount.Amount)

	// manual removal is a no-op while the trigger holds
	c, err = svc.RemovePromo(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, c.Discount)
	require.True(t, c.Discount.Auto)

	// breaking the trigger removes it
	c, err = svc.RemoveItem(ctx, c.ID, "website-basic")
	require.NoError(t, err)
	require.Nil(t, c.Discount)
}

func TestManualPromoBeatsAutoDiscount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c, err := svc.Create(ctx, "")
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, c.ID, "logo-design", 1, false)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, c.ID, "website-basic", 1, false)
	require.NoError(t, err)

	c, err = svc.ApplyPromo(ctx, c.ID, "SUMMER25")
	require.NoError(t, err)
	require.Equal(t, "SUMMER25", c.Discount.Code)
	require.False(t, c.Discount.Auto)

	// mutations keep the manual code in place
	c, err = svc.AddItem(ctx, c.ID, "portfolio-personal", 1, false)
	require.NoError(t, err)
	require.Equal(t, "SUMMER25", c.Discount.Code)

	// removing the manual code hands control back to the auto discount
	c, err = svc.RemovePromo(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, c.Discount)
	require.Equal(t, promo.AutoDiscountCode, c.Discount.Code)
}

func TestAutoCodeEnteredManuallyStaysManaged(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c, err := svc.Create(ctx, "")
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, c.ID, "logo-design", 1, false)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, c.ID, "website-basic", 1, false)
	require.NoError(t, err)

	// typing the combo code is accepted; the cart manages it from here on
	c, err = svc.ApplyPromo(ctx, c.ID, promo.AutoDiscountCode)
	require.NoError(t, err)
	require.Equal(t, promo.AutoDiscountCode, c.Discount.Code)
	require.True(t, c.Discount.Auto)

	// so manual removal stays a no-op while the trigger holds
	c, err = svc.RemovePromo(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, c.Discount)

	// and it leaves with the trigger like any auto discount
	c, err = svc.RemoveItem(ctx, c.ID, "website-basic")
	require.NoError(t, err)
	require.Nil(t, c.Discount)
}
