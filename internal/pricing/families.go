package pricing

// Family identifies a product family that allows at most one active
// configured selection at a time.
type Family string

const (
	FamilyPoster       Family = "poster"
	FamilyPresentation Family = "presentation"
	FamilyVideo        Family = "video"
	FamilySocialMedia  Family = "social-media"
	FamilyLeadGen      Family = "lead-generation"
	FamilyShoot        Family = "production-shoot"
	FamilyWhatsApp     Family = "whatsapp-suite"
	FamilyCombo        Family = "combo-package"
	FamilySEO          Family = "seo-custom"
)

// Families enumerates every known family in a stable order.
var Families = []Family{
	FamilyPoster,
	FamilyPresentation,
	FamilyVideo,
	FamilySocialMedia,
	FamilyLeadGen,
	FamilyShoot,
	FamilyWhatsApp,
	FamilyCombo,
	FamilySEO,
}

// Known reports whether f names a supported family.
func Known(f Family) bool {
	for _, candidate := range Families {
		if candidate == f {
			return true
		}
	}
	return false
}

// FamilySelection is a tagged union: Family names the variant and exactly one
// payload pointer matching it is non-nil. Selections are held in a map keyed
// by Family so a new configuration replaces the previous one.
type FamilySelection struct {
	Family       Family                 `json:"family"`
	Poster       *PosterSelection       `json:"poster,omitempty"`
	Presentation *PresentationSelection `json:"presentation,omitempty"`
	Video        *VideoSelection        `json:"video,omitempty"`
	SocialMedia  *SocialMediaSelection  `json:"socialMedia,omitempty"`
	LeadGen      *LeadGenSelection      `json:"leadGeneration,omitempty"`
	Shoot        *ShootSelection        `json:"productionShoot,omitempty"`
	WhatsApp     *WhatsAppSelection     `json:"whatsappSuite,omitempty"`
	Combo        *ComboSelection        `json:"comboPackage,omitempty"`
	SEO          *SEOSelection          `json:"seoCustom,omitempty"`
}

// Line is the evaluated contribution of one family selection.
type Line struct {
	Family    Family `json:"family"`
	Label     string `json:"label"`
	UnitPrice Money  `json:"unitPrice,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
	Total     Money  `json:"total"`
}

// Engine evaluates family selections against an injected set of rate tables.
type Engine struct {
	Tables Tables
}

// NewEngine constructs an Engine over the provided tables.
func NewEngine(t Tables) Engine {
	return Engine{Tables: t}
}

// Evaluate prices a family selection. The second return is false when the
// selection is empty (zero quantity, zero-valued custom configuration) and
// must contribute nothing to the subtotal. Evaluation is pure: calling it
// twice with the same input yields the same Line.
func (e Engine) Evaluate(sel FamilySelection) (Line, bool) {
	switch sel.Family {
	case FamilyPoster:
		if sel.Poster == nil {
			return Line{}, false
		}
		return e.Poster(*sel.Poster)
	case FamilyPresentation:
		if sel.Presentation == nil {
			return Line{}, false
		}
		return e.Presentation(*sel.Presentation)
	case FamilyVideo:
		if sel.Video == nil {
			return Line{}, false
		}
		return e.Video(*sel.Video)
	case FamilySocialMedia:
		if sel.SocialMedia == nil {
			return Line{}, false
		}
		return e.SocialMedia(*sel.SocialMedia)
	case FamilyLeadGen:
		if sel.LeadGen == nil {
			return Line{}, false
		}
		return e.LeadGen(*sel.LeadGen)
	case FamilyShoot:
		if sel.Shoot == nil {
			return Line{}, false
		}
		return e.Shoot(*sel.Shoot)
	case FamilyWhatsApp:
		if sel.WhatsApp == nil {
			return Line{}, false
		}
		return e.WhatsApp(*sel.WhatsApp)
	case FamilyCombo:
		if sel.Combo == nil {
			return Line{}, false
		}
		return e.Combo(*sel.Combo)
	case FamilySEO:
		if sel.SEO == nil {
			return Line{}, false
		}
		return e.SEO(*sel.SEO)
	}
	return Line{}, false
}
