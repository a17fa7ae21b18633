package pricing

// WhatsAppPlanType distinguishes the three ways to buy the WhatsApp suite.
type WhatsAppPlanType string

const (
	WhatsAppYearly  WhatsAppPlanType = "yearly"
	WhatsAppMetered WhatsAppPlanType = "cost-per-message"
	WhatsAppCustom  WhatsAppPlanType = "custom"
)

// WhatsAppSupportLevel grades the support channel in a custom build.
type WhatsAppSupportLevel string

const (
	SupportEmail    WhatsAppSupportLevel = "email"
	SupportWhatsApp WhatsAppSupportLevel = "whatsapp"
	SupportPriority WhatsAppSupportLevel = "priority"
)

// WhatsAppCustomConfig is a self-assembled suite: a base message volume plus
// independently toggled or counted add-ons.
type WhatsAppCustomConfig struct {
	BaseVolume       int                  `json:"baseVolume"`
	ImageText        bool                 `json:"imageText,omitempty"`
	DocumentText     bool                 `json:"documentText,omitempty"`
	LeadForms        int                  `json:"leadForms,omitempty"`
	SheetIntegration bool                 `json:"sheetIntegration,omitempty"`
	AutoReply        bool                 `json:"autoReply,omitempty"`
	Templates        int                  `json:"templates,omitempty"`
	StrategySession  bool                 `json:"strategySession,omitempty"`
	PrebuiltFunnel   bool                 `json:"prebuiltFunnel,omitempty"`
	Support          WhatsAppSupportLevel `json:"support,omitempty"`
}

// WhatsAppSelection configures the WhatsApp suite family. PlanID applies to
// the yearly and metered plan types; Custom to the custom type.
type WhatsAppSelection struct {
	PlanType WhatsAppPlanType      `json:"planType"`
	PlanID   string                `json:"planId,omitempty"`
	Custom   *WhatsAppCustomConfig `json:"custom,omitempty"`
}

// WhatsAppPlan is a named flat-priced plan with an included message volume.
type WhatsAppPlan struct {
	Name     string
	Messages int
	Price    Money
}

// WhatsAppRates holds plan tables and custom build prices.
type WhatsAppRates struct {
	YearlyPlans  map[string]WhatsAppPlan
	MeteredPlans map[string]WhatsAppPlan
	// BaseVolumePrices keys custom base prices by message volume.
	BaseVolumePrices map[int]Money
	// ImageTextVolumes / DocumentTextVolumes list the volumes on which the
	// respective unlock is purchasable (larger plans include it).
	ImageTextVolumes    map[int]bool
	DocumentTextVolumes map[int]bool
	ImageText           Money
	DocumentText        Money
	LeadForm            Money
	SheetIntegration    Money
	AutoReply           Money
	Template            Money
	StrategySession     Money
	PrebuiltFunnel      Money
	SupportWhatsApp     Money
	SupportPriority     Money
}

// WhatsApp prices a WhatsApp suite selection. Unknown plan identifiers and
// zero-valued custom builds evaluate to no selection.
func (e Engine) WhatsApp(sel WhatsAppSelection) (Line, bool) {
	r := e.Tables.WhatsApp
	switch sel.PlanType {
	case WhatsAppYearly:
		plan, ok := r.YearlyPlans[sel.PlanID]
		if !ok {
			return Line{}, false
		}
		return Line{Family: FamilyWhatsApp, Label: plan.Name, Total: plan.Price}, true
	case WhatsAppMetered:
		plan, ok := r.MeteredPlans[sel.PlanID]
		if !ok {
			return Line{}, false
		}
		return Line{Family: FamilyWhatsApp, Label: plan.Name, Total: plan.Price}, true
	case WhatsAppCustom:
		if sel.Custom == nil {
			return Line{}, false
		}
		total := e.whatsappCustomTotal(*sel.Custom)
		if total <= 0 {
			return Line{}, false
		}
		return Line{Family: FamilyWhatsApp, Label: "Custom WhatsApp Suite", Total: total}, true
	}
	return Line{}, false
}

func (e Engine) whatsappCustomTotal(cfg WhatsAppCustomConfig) Money {
	r := e.Tables.WhatsApp
	total := r.BaseVolumePrices[cfg.BaseVolume]
	if cfg.ImageText && r.ImageTextVolumes[cfg.BaseVolume] {
		total += r.ImageText
	}
	if cfg.DocumentText && r.DocumentTextVolumes[cfg.BaseVolume] {
		total += r.DocumentText
	}
	total += Money(clampCount(cfg.LeadForms)) * r.LeadForm
	if cfg.SheetIntegration {
		total += r.SheetIntegration
	}
	if cfg.AutoReply {
		total += r.AutoReply
	}
	total += Money(clampCount(cfg.Templates)) * r.Template
	if cfg.StrategySession {
		total += r.StrategySession
	}
	if cfg.PrebuiltFunnel {
		total += r.PrebuiltFunnel
	}
	switch cfg.Support {
	case SupportWhatsApp:
		total += r.SupportWhatsApp
	case SupportPriority:
		total += r.SupportPriority
	}
	return total
}
