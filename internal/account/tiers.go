package account

// Tier names a subscription level.
type Tier string

const (
	TierFree     Tier = "free"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// Unlimited marks a limit with no cap.
const Unlimited = -1

// Features are the entitlements of a tier.
type Features struct {
	QuotesLimit      int  `json:"quotesLimit"`
	ExportsLimit     int  `json:"exportsLimit"`
	AdvancedFeatures bool `json:"advancedFeatures"`
	PrioritySupport  bool `json:"prioritySupport"`
	CustomBranding   bool `json:"customBranding"`
}

var tierFeatures = map[Tier]Features{
	TierFree: {
		QuotesLimit:  3,
		ExportsLimit: 3,
	},
	TierStandard: {
		QuotesLimit:      15,
		ExportsLimit:     15,
		AdvancedFeatures: true,
	},
	TierPremium: {
		QuotesLimit:      Unlimited,
		ExportsLimit:     Unlimited,
		AdvancedFeatures: true,
		PrioritySupport:  true,
		CustomBranding:   true,
	},
}

// FeaturesFor returns the entitlements of a tier. Unknown tiers fall back to
// the free plan.
func FeaturesFor(tier Tier) Features {
	if f, ok := tierFeatures[tier]; ok {
		return f
	}
	return tierFeatures[TierFree]
}

// withinLimit reports whether one more use fits under the limit.
func withinLimit(used, limit int) bool {
	return limit == Unlimited || used < limit
}
