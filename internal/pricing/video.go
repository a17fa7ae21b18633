package pricing

// VideoType selects one of the video offerings.
type VideoType string

const (
	VideoPromo     VideoType = "promo"
	VideoExplainer VideoType = "explainer"
	VideoSocial    VideoType = "social"
)

// VideoSelection configures the video family.
type VideoSelection struct {
	Type     VideoType `json:"type"`
	Quantity int       `json:"quantity"`
}

// VideoRates carries per-unit prices plus the social reel bundle: once the
// quantity reaches BundleQty the total snaps to BundlePrice and stops scaling.
type VideoRates struct {
	Promo       Money
	Explainer   Money
	Social      Money
	BundleQty   int
	BundlePrice Money
}

// Video prices a video selection.
func (e Engine) Video(sel VideoSelection) (Line, bool) {
	if sel.Quantity <= 0 {
		return Line{}, false
	}
	r := e.Tables.Video
	var unit Money
	label := "Promotional Video"
	switch sel.Type {
	case VideoExplainer:
		unit = r.Explainer
		label = "Explanatory Video"
	case VideoSocial:
		unit = r.Social
		label = "Social Media Reels"
		if sel.Quantity >= r.BundleQty {
			return Line{
				Family:   FamilyVideo,
				Label:    label,
				Quantity: sel.Quantity,
				Total:    r.BundlePrice,
			}, true
		}
	default:
		unit = r.Promo
	}
	return Line{
		Family:    FamilyVideo,
		Label:     label,
		UnitPrice: unit,
		Quantity:  sel.Quantity,
		Total:     unit * Money(sel.Quantity),
	}, true
}
