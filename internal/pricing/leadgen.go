package pricing

// LeadGenSelection configures the lead generation family. Either Platform or
// Bundle names the service fee; add-ons are toggled by identifier. AdSpend is
// the customer's media budget and never contributes to the quoted total.
type LeadGenSelection struct {
	Platform string   `json:"platform,omitempty"`
	Bundle   string   `json:"bundle,omitempty"`
	AddOns   []string `json:"addOns,omitempty"`
	AdSpend  Money    `json:"adSpend,omitempty"`
}

// LeadGenRates carries service fees per platform and bundle plus add-on prices.
type LeadGenRates struct {
	Platforms map[string]LeadGenOffer
	Bundles   map[string]LeadGenOffer
	AddOns    map[string]Money
}

// LeadGenOffer names a campaign offering and its flat service fee.
type LeadGenOffer struct {
	Name string
	Fee  Money
}

// LeadGen prices a lead generation selection: the platform or bundle service
// fee plus the sum of toggled add-ons. Bundle wins when both are set.
func (e Engine) LeadGen(sel LeadGenSelection) (Line, bool) {
	r := e.Tables.LeadGen
	var offer LeadGenOffer
	var found bool
	if sel.Bundle != "" {
		offer, found = r.Bundles[sel.Bundle]
	} else if sel.Platform != "" {
		offer, found = r.Platforms[sel.Platform]
	}
	if !found {
		return Line{}, false
	}
	total := offer.Fee
	for _, id := range sel.AddOns {
		total += r.AddOns[id]
	}
	return Line{
		Family: FamilyLeadGen,
		Label:  offer.Name,
		Total:  total,
	}, true
}
