package pricing

// ComboSelection picks one bundled package plus optional add-ons.
type ComboSelection struct {
	PackageID string   `json:"packageId"`
	AddOns    []string `json:"addOns"`
}

// ComboPackage is a fixed-price bundle.
type ComboPackage struct {
	Name  string
	Price Money
}

// ComboRates holds the bundle catalog and the add-on toggle prices.
type ComboRates struct {
	Packages map[string]ComboPackage
	AddOns   map[string]Money
}

// Combo prices a bundle: the package price plus every recognised add-on.
// Unknown package ids are no selection; unknown add-on ids contribute
// nothing.
func (e Engine) Combo(sel ComboSelection) (Line, bool) {
	pkg, ok := e.Tables.Combo.Packages[sel.PackageID]
	if !ok {
		return Line{}, false
	}
	total := pkg.Price
	for _, id := range sel.AddOns {
		total += e.Tables.Combo.AddOns[id]
	}
	return Line{
		Family:   FamilyCombo,
		Label:    pkg.Name,
		Quantity: 1,
		Total:    total,
	}, true
}
