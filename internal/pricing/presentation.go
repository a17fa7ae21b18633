package pricing

// PresentationTier selects one of the two presentation offerings.
type PresentationTier string

const (
	PresentationBusiness PresentationTier = "business"
	PresentationAdvanced PresentationTier = "advanced"
)

// PresentationSelection configures the presentation family.
type PresentationSelection struct {
	Tier   PresentationTier `json:"tier"`
	Slides int              `json:"slides"`
}

// PresentationRate describes one tier: slides up to Threshold bill at
// BaseRate, every slide beyond it at OverflowRate.
type PresentationRate struct {
	Threshold    int
	BaseRate     Money
	OverflowRate Money
}

// PresentationRates holds the per-tier slide rates.
type PresentationRates struct {
	Business PresentationRate
	Advanced PresentationRate
}

// Presentation prices a slide deck. Unlike posters this is a marginal model:
// only the slides past the threshold get the reduced rate.
func (e Engine) Presentation(sel PresentationSelection) (Line, bool) {
	if sel.Slides <= 0 {
		return Line{}, false
	}
	rate := e.Tables.Presentation.Business
	label := "Business Presentation"
	if sel.Tier == PresentationAdvanced {
		rate = e.Tables.Presentation.Advanced
		label = "Advanced Business Presentation"
	}
	base := sel.Slides
	if base > rate.Threshold {
		base = rate.Threshold
	}
	overflow := sel.Slides - rate.Threshold
	if overflow < 0 {
		overflow = 0
	}
	total := Money(base)*rate.BaseRate + Money(overflow)*rate.OverflowRate
	return Line{
		Family:   FamilyPresentation,
		Label:    label,
		Quantity: sel.Slides,
		Total:    total,
	}, true
}
