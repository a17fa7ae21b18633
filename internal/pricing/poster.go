package pricing

// PosterType distinguishes the two poster product lines.
type PosterType string

const (
	PosterCreative PosterType = "creative"
	PosterNormal   PosterType = "normal"
)

// PosterSelection configures the poster family.
type PosterSelection struct {
	Type     PosterType `json:"type"`
	Quantity int        `json:"quantity"`
}

// PosterRates carries the bracketed unit prices for creative posters and the
// flat unit price for normal posters.
type PosterRates struct {
	CreativeSingle Money
	CreativeBulk10 Money
	CreativeBulk20 Money
	Normal         Money
}

// Poster prices a poster selection. Creative posters use a last-bracket-wins
// model: the unit price is chosen by the total quantity and applies to every
// unit, so crossing a bracket boundary can lower the total outright. This is
// deliberately not the marginal model used for presentations.
func (e Engine) Poster(sel PosterSelection) (Line, bool) {
	if sel.Quantity <= 0 {
		return Line{}, false
	}
	r := e.Tables.Poster
	unit := r.Normal
	label := "Normal Posters"
	if sel.Type == PosterCreative {
		label = "Creative Posters"
		switch {
		case sel.Quantity >= 20:
			unit = r.CreativeBulk20
		case sel.Quantity >= 10:
			unit = r.CreativeBulk10
		default:
			unit = r.CreativeSingle
		}
	}
	return Line{
		Family:    FamilyPoster,
		Label:     label,
		UnitPrice: unit,
		Quantity:  sel.Quantity,
		Total:     unit * Money(sel.Quantity),
	}, true
}
