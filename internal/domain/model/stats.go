package model

// PackageStat is one per-package aggregation row.
type PackageStat struct {
	Type    PackageType `json:"type"`
	Count   int         `json:"count"`
	Revenue int64       `json:"revenue"`
	Average float64     `json:"average"`
}

// MonthlyStat is one calendar-month revenue bucket (Month is "YYYY-MM").
type MonthlyStat struct {
	Month   string `json:"month"`
	Count   int    `json:"count"`
	Revenue int64  `json:"revenue"`
}

// PaymentStats is the full stats view: per-package rows sorted by revenue
// descending, overall totals, and the most recent 12 month buckets newest
// first.
type PaymentStats struct {
	ByPackage    []PackageStat `json:"byPackage"`
	TotalCount   int           `json:"totalCount"`
	TotalRevenue int64         `json:"totalRevenue"`
	Monthly      []MonthlyStat `json:"monthly"`
}
