package pricing

// SocialMediaType selects a managed package or a self-assembled custom set.
type SocialMediaType string

const (
	SocialStandard SocialMediaType = "standard"
	SocialPremium  SocialMediaType = "premium"
	SocialCustom   SocialMediaType = "custom"
)

// SocialMediaSelection configures the social media family. The count fields
// only apply to the custom type; the managed packages carry fixed contents.
type SocialMediaSelection struct {
	Type          SocialMediaType `json:"type"`
	Posts         int             `json:"posts,omitempty"`
	Stories       int             `json:"stories,omitempty"`
	Reels         int             `json:"reels,omitempty"`
	Carousels     int             `json:"carousels,omitempty"`
	MotionPosters int             `json:"motionPosters,omitempty"`
}

// SocialMediaRates holds package prices and custom per-unit prices.
type SocialMediaRates struct {
	StandardPackage Money
	PremiumPackage  Money
	CustomPost      Money
	CustomReel      Money
	CustomCarousel  Money
	CustomMotion    Money
}

// ManagementIncluded reports whether the selection includes profile
// management (the managed packages do, custom builds do not).
func (s SocialMediaSelection) ManagementIncluded() bool {
	return s.Type != SocialCustom
}

// SocialMedia prices a social media selection. A custom configuration whose
// add-on counts sum to zero is treated as no selection.
func (e Engine) SocialMedia(sel SocialMediaSelection) (Line, bool) {
	r := e.Tables.SocialMedia
	switch sel.Type {
	case SocialStandard:
		return Line{Family: FamilySocialMedia, Label: "Standard Package", Total: r.StandardPackage}, true
	case SocialPremium:
		return Line{Family: FamilySocialMedia, Label: "Premium Package", Total: r.PremiumPackage}, true
	case SocialCustom:
		total := Money(clampCount(sel.Posts))*r.CustomPost +
			Money(clampCount(sel.Reels))*r.CustomReel +
			Money(clampCount(sel.Carousels))*r.CustomCarousel +
			Money(clampCount(sel.MotionPosters))*r.CustomMotion
		if total <= 0 {
			return Line{}, false
		}
		return Line{Family: FamilySocialMedia, Label: "Custom Package", Total: total}, true
	}
	return Line{}, false
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
