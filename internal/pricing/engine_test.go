package pricing

import "testing"

func testEngine() Engine {
	return NewEngine(DefaultTables())
}

func TestPosterBrackets(t *testing.T) {
	e := testEngine()
	cases := []struct {
		qty  int
		want Money
	}{
		{1, 650},
		{9, 5850},
		{10, 5500},
		{19, 10450},
		{20, 10000},
	}
	for _, tc := range cases {
		line, ok := e.Poster(PosterSelection{Type: PosterCreative, Quantity: tc.qty})
		if !ok {
			t.Fatalf("qty %d: expected a line", tc.qty)
		}
		if line.Total != tc.want {
			t.Fatalf("qty %d: expected total %d, got %d", tc.qty, tc.want, line.Total)
		}
	}
}

func TestPosterBracketBoundaryCanLowerTotal(t *testing.T) {
	e := testEngine()
	nine, _ := e.Poster(PosterSelection{Type: PosterCreative, Quantity: 9})
	ten, _ := e.Poster(PosterSelection{Type: PosterCreative, Quantity: 10})
	if ten.Total >= nine.Total {
		t.Fatalf("expected 10 posters (%d) cheaper than 9 (%d)", ten.Total, nine.Total)
	}
}

func TestPosterNormalFlat(t *testing.T) {
	e := testEngine()
	line, ok := e.Poster(PosterSelection{Type: PosterNormal, Quantity: 25})
	if !ok || line.Total != 10000 {
		t.Fatalf("expected 10000, got %d (ok=%v)", line.Total, ok)
	}
}

func TestPosterZeroQuantity(t *testing.T) {
	e := testEngine()
	if _, ok := e.Poster(PosterSelection{Type: PosterCreative, Quantity: 0}); ok {
		t.Fatal("expected no selection for zero quantity")
	}
}

func TestPresentationMarginalOverflow(t *testing.T) {
	e := testEngine()
	atThreshold, _ := e.Presentation(PresentationSelection{Tier: PresentationBusiness, Slides: 50})
	if atThreshold.Total != 25000 {
		t.Fatalf("expected 25000 at threshold, got %d", atThreshold.Total)
	}
	over, _ := e.Presentation(PresentationSelection{Tier: PresentationBusiness, Slides: 60})
	if over.Total != 27500 {
		t.Fatalf("expected 27500 for 60 slides, got %d", over.Total)
	}
	advanced, _ := e.Presentation(PresentationSelection{Tier: PresentationAdvanced, Slides: 30})
	if advanced.Total != 25000 {
		t.Fatalf("expected 25000 for 30 advanced slides, got %d", advanced.Total)
	}
}

func TestVideoBundleSnap(t *testing.T) {
	e := testEngine()
	four, _ := e.Video(VideoSelection{Type: VideoSocial, Quantity: 4})
	if four.Total != 6000 {
		t.Fatalf("expected 6000 for 4 reels, got %d", four.Total)
	}
	five, _ := e.Video(VideoSelection{Type: VideoSocial, Quantity: 5})
	if five.Total != 6000 {
		t.Fatalf("expected bundle price 6000 for 5 reels, got %d", five.Total)
	}
	nine, _ := e.Video(VideoSelection{Type: VideoSocial, Quantity: 9})
	if nine.Total != 6000 {
		t.Fatalf("expected bundle price to stop scaling, got %d", nine.Total)
	}
	promo, _ := e.Video(VideoSelection{Type: VideoPromo, Quantity: 2})
	if promo.Total != 10000 {
		t.Fatalf("expected 10000 for 2 promo videos, got %d", promo.Total)
	}
}

func TestSocialMediaCustomZeroIsNoSelection(t *testing.T) {
	e := testEngine()
	if _, ok := e.SocialMedia(SocialMediaSelection{Type: SocialCustom}); ok {
		t.Fatal("expected all-zero custom config to be no selection")
	}
	line, ok := e.SocialMedia(SocialMediaSelection{Type: SocialCustom, Posts: 5, Reels: 2})
	if !ok || line.Total != 8000 {
		t.Fatalf("expected 8000, got %d (ok=%v)", line.Total, ok)
	}
	if line.Total == 0 {
		t.Fatal("a configured selection must never total zero")
	}
}

func TestSocialMediaManagedPackages(t *testing.T) {
	e := testEngine()
	std, _ := e.SocialMedia(SocialMediaSelection{Type: SocialStandard})
	if std.Total != 30000 {
		t.Fatalf("expected 30000, got %d", std.Total)
	}
	if !(SocialMediaSelection{Type: SocialStandard}).ManagementIncluded() {
		t.Fatal("standard package includes management")
	}
	if (SocialMediaSelection{Type: SocialCustom}).ManagementIncluded() {
		t.Fatal("custom builds exclude management")
	}
}

func TestShootMatrix(t *testing.T) {
	e := testEngine()
	line, ok := e.Shoot(ShootSelection{Type: ShootPitchDeck, Package: PackagePremium})
	if !ok || line.Total != 80000 {
		t.Fatalf("expected 80000, got %d (ok=%v)", line.Total, ok)
	}
	if _, ok := e.Shoot(ShootSelection{Type: "drone-shoot", Package: PackageBasic}); ok {
		t.Fatal("unknown shoot type must be no selection")
	}
}

func TestLeadGenBundleWinsAndAdSpendExcluded(t *testing.T) {
	e := testEngine()
	line, ok := e.LeadGen(LeadGenSelection{
		Platform: "meta",
		Bundle:   "growth-funnel",
		AddOns:   []string{"lead-form", "crm-push"},
		AdSpend:  50000,
	})
	if !ok {
		t.Fatal("expected a line")
	}
	if line.Total != 6999+999+1499 {
		t.Fatalf("expected 9497, got %d", line.Total)
	}
}

func TestWhatsAppCustomBuild(t *testing.T) {
	e := testEngine()
	line, ok := e.WhatsApp(WhatsAppSelection{
		PlanType: WhatsAppCustom,
		Custom: &WhatsAppCustomConfig{
			BaseVolume:     10000,
			ImageText:      true,
			DocumentText:   true,
			LeadForms:      2,
			AutoReply:      true,
			Templates:      3,
			PrebuiltFunnel: true,
			Support:        SupportPriority,
		},
	})
	if !ok {
		t.Fatal("expected a line")
	}
	want := Money(2799 + 499 + 699 + 2*999 + 999 + 3*499 + 1499 + 799)
	if line.Total != want {
		t.Fatalf("expected %d, got %d", want, line.Total)
	}
}

func TestWhatsAppUnlockGatedByVolume(t *testing.T) {
	e := testEngine()
	line, _ := e.WhatsApp(WhatsAppSelection{
		PlanType: WhatsAppCustom,
		Custom:   &WhatsAppCustomConfig{BaseVolume: 50000, ImageText: true, DocumentText: true},
	})
	if line.Total != 11999 {
		t.Fatalf("large volumes include media formats, expected 11999, got %d", line.Total)
	}
}

func TestWhatsAppZeroCustomIsNoSelection(t *testing.T) {
	e := testEngine()
	if _, ok := e.WhatsApp(WhatsAppSelection{PlanType: WhatsAppCustom, Custom: &WhatsAppCustomConfig{}}); ok {
		t.Fatal("expected zero-valued custom build to be no selection")
	}
	if _, ok := e.WhatsApp(WhatsAppSelection{PlanType: WhatsAppYearly, PlanID: "platinum"}); ok {
		t.Fatal("expected unknown plan id to be no selection")
	}
}

func TestSEOFeatureSum(t *testing.T) {
	e := testEngine()
	line, ok := e.SEO(SEOSelection{Features: []SEOFeaturePick{
		{FeatureID: "pages-optimize", Tier: PackageStandard},
		{FeatureID: "keyword-research", Tier: PackageBasic},
		{FeatureID: "blog-writing-seo", Tier: PackageBasic},
		{FeatureID: "no-such-feature", Tier: PackagePremium},
	}})
	if !ok {
		t.Fatal("expected a line")
	}
	if line.Total != 5000+500 {
		t.Fatalf("expected 5500, got %d", line.Total)
	}
	if _, ok := e.SEO(SEOSelection{}); ok {
		t.Fatal("expected empty selection to be no selection")
	}
}

func TestComboWithAddOns(t *testing.T) {
	e := testEngine()
	line, ok := e.Combo(ComboSelection{
		PackageID: "digital-essentials",
		AddOns:    []string{"amc-monthly", "pwa-setup"},
	})
	if !ok || line.Total != 49999+5000+500 {
		t.Fatalf("expected 55499, got %d (ok=%v)", line.Total, ok)
	}
	if _, ok := e.Combo(ComboSelection{PackageID: "mega-deal"}); ok {
		t.Fatal("expected unknown package id to be no selection")
	}
}

func TestEvaluateDispatchAndIdempotence(t *testing.T) {
	e := testEngine()
	sel := FamilySelection{
		Family: FamilyPoster,
		Poster: &PosterSelection{Type: PosterCreative, Quantity: 12},
	}
	first, ok := e.Evaluate(sel)
	if !ok {
		t.Fatal("expected a line")
	}
	second, _ := e.Evaluate(sel)
	if first != second {
		t.Fatalf("evaluation must be idempotent: %+v vs %+v", first, second)
	}
	if _, ok := e.Evaluate(FamilySelection{Family: FamilyPoster}); ok {
		t.Fatal("expected missing payload to be no selection")
	}
	if _, ok := e.Evaluate(FamilySelection{Family: "billboards"}); ok {
		t.Fatal("expected unknown family to be no selection")
	}
}

func TestSubtotalOrderIndependent(t *testing.T) {
	items := []Item{{Qty: 2, UnitPrice: 650}, {Qty: 0, UnitPrice: 9999}}
	families := []Money{6000, 30000}
	forward := Subtotal(items, families)
	reversed := Subtotal([]Item{items[1], items[0]}, []Money{families[1], families[0]})
	if forward != reversed {
		t.Fatalf("subtotal depends on order: %d vs %d", forward, reversed)
	}
	if forward != 2*650+6000+30000 {
		t.Fatalf("expected 37300, got %d", forward)
	}
}

func TestComputeTaxAndTotals(t *testing.T) {
	s := Compute(1000, 100, 1800)
	if s.Taxable != 900 || s.Tax != 162 || s.Total != 1062 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	clamped := Compute(500, 9000, 1800)
	if clamped.Discount != 500 || clamped.Total != 0 {
		t.Fatalf("discount must clamp to subtotal: %+v", clamped)
	}
	zero := Compute(0, 0, 1800)
	if zero.Total != 0 {
		t.Fatalf("expected zero total for empty cart, got %d", zero.Total)
	}
}
