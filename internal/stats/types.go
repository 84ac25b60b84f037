package stats

// DiscountedProduct is one line item bought below its compare-at price.
// Entries are not de-duplicated by product; every discounted line item gets
// its own record.
type DiscountedProduct struct {
	Name            string
	OriginalPrice   float64
	DiscountedPrice float64
	Saved           float64
}

type PurchaseSummary struct {
	TotalBought        int
	TotalSaved         float64
	DiscountedProducts []DiscountedProduct
}

// VendorStat counts how often a vendor appears in a product collection.
// TopPercent is display-only flavor text and is populated separately by
// Decorate; the aggregation itself never touches it.
type VendorStat struct {
	Vendor     string
	Count      int
	TopPercent int
}

type VendorOrderStat struct {
	Vendor     string
	OrderCount int
}

type ProductStat struct {
	Name  string
	Count int
}

type MoneySpentSummary struct {
	TotalSpent float64
	DailySpend map[string]float64
	MaxDate    string
	MaxAmount  float64
}

type ComparisonStat struct {
	SpentDeltaPercent int
	SavedDeltaPercent int
	SpentAboveAverage bool
	SavedAboveAverage bool
}

// Reference baselines for the peer comparison.
const (
	DefaultAvgSpent = 500.0
	DefaultAvgSaved = 100.0
)
