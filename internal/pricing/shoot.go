package pricing

// ShootType enumerates the production shoot offerings.
type ShootType string

const (
	ShootPhoto      ShootType = "photoshoot"
	ShootVideo      ShootType = "video-shoot"
	ShootProduct    ShootType = "product-shoot"
	ShootPromo      ShootType = "promo-shoot"
	ShootInterior   ShootType = "interior-exterior"
	ShootPitchDeck  ShootType = "pitch-deck"
	ShootSocialReel ShootType = "social-reels"
)

// PackageTier grades a shoot package.
type PackageTier string

const (
	PackageBasic    PackageTier = "basic"
	PackageStandard PackageTier = "standard"
	PackagePremium  PackageTier = "premium"
)

// ShootSelection configures the production shoot family.
type ShootSelection struct {
	Type    ShootType   `json:"type"`
	Package PackageTier `json:"package"`
}

// ShootPackage is one (type, tier) cell of the price matrix.
type ShootPackage struct {
	Price Money
	Label string
}

// ShootRates maps shoot type and tier to a flat package price.
type ShootRates struct {
	Packages map[ShootType]map[PackageTier]ShootPackage
}

// Shoot prices a production shoot selection. Unknown type/tier combinations
// evaluate to no selection; the enumeration is closed at the HTTP boundary.
func (e Engine) Shoot(sel ShootSelection) (Line, bool) {
	tiers, ok := e.Tables.Shoot.Packages[sel.Type]
	if !ok {
		return Line{}, false
	}
	pkg, ok := tiers[sel.Package]
	if !ok {
		return Line{}, false
	}
	return Line{
		Family: FamilyShoot,
		Label:  pkg.Label,
		Total:  pkg.Price,
	}, true
}
