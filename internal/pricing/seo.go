package pricing

// SEOFeaturePick selects one tier of one SEO feature.
type SEOFeaturePick struct {
	FeatureID string      `json:"featureId"`
	Tier      PackageTier `json:"tier"`
}

// SEOSelection configures a self-assembled SEO package.
type SEOSelection struct {
	Features []SEOFeaturePick `json:"features"`
}

// SEOFeature is one customisable SEO feature with per-tier prices. A tier
// missing from Options is not offered for that feature.
type SEOFeature struct {
	Name    string
	Options map[PackageTier]SEOOption
}

// SEOOption is a priced tier of an SEO feature.
type SEOOption struct {
	Price       Money
	Description string
}

// SEORates keys the feature table by feature identifier.
type SEORates struct {
	Features map[string]SEOFeature
}

// SEO prices a custom SEO package: the sum of the selected feature tiers.
// Picks referencing unknown features or unoffered tiers contribute nothing;
// an empty sum is no selection.
func (e Engine) SEO(sel SEOSelection) (Line, bool) {
	var total Money
	for _, pick := range sel.Features {
		feature, ok := e.Tables.SEO.Features[pick.FeatureID]
		if !ok {
			continue
		}
		option, ok := feature.Options[pick.Tier]
		if !ok {
			continue
		}
		total += option.Price
	}
	if total <= 0 {
		return Line{}, false
	}
	return Line{
		Family:   FamilySEO,
		Label:    "Custom SEO Package",
		Quantity: len(sel.Features),
		Total:    total,
	}, true
}
