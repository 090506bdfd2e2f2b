package model

type PackageType string

const (
	PackageBasic      PackageType = "basic"
	PackagePremium    PackageType = "premium"
	PackageEnterprise PackageType = "enterprise"
)

// Package is the nested subscription-package value carried by a Payment.
// Type, Name and Price must always match one of the fixed catalog entries;
// the catalog is the sole source of truth for validating a declared amount.
type Package struct {
	Type     PackageType `json:"type"`
	Name     string      `json:"name"`
	Price    int64       `json:"price"` // minor currency units
	Features []string    `json:"features"`
}

var catalog = map[PackageType]Package{
	PackageBasic: {
		Type:  PackageBasic,
		Name:  "Basic",
		Price: 89700,
		Features: []string{
			"Half-day care (up to 4 hours)",
			"Daily activity report",
			"Morning snack included",
		},
	},
	PackagePremium: {
		Type:  PackagePremium,
		Name:  "Premium",
		Price: 149700,
		Features: []string{
			"Full-day care (up to 9 hours)",
			"Daily activity report with photos",
			"All meals and snacks included",
			"Weekly progress call",
		},
	},
	PackageEnterprise: {
		Type:  PackageEnterprise,
		Name:  "Enterprise",
		Price: 239700,
		Features: []string{
			"Extended-day care (up to 12 hours)",
			"Daily activity report with photos",
			"All meals and snacks included",
			"One-on-one learning sessions",
			"Priority holiday placement",
		},
	},
}

// PackageByType resolves a catalog entry. The returned Package is a copy;
// mutating it never touches the catalog.
func PackageByType(t PackageType) (Package, bool) {
	p, ok := catalog[t]
	if !ok {
		return Package{}, false
	}
	features := make([]string, len(p.Features))
	copy(features, p.Features)
	p.Features = features
	return p, true
}

// Packages lists the catalog in ascending price order.
func Packages() []Package {
	out := make([]Package, 0, len(catalog))
	for _, t := range []PackageType{PackageBasic, PackagePremium, PackageEnterprise} {
		p, _ := PackageByType(t)
		out = append(out, p)
	}
	return out
}
