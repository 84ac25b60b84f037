// Package stats derives shopping statistics from raw order history. Every
// function here is pure: same orders in, same numbers out. Malformed records
// contribute zero instead of failing the computation.
package stats

import (
	"math"
	"sort"

	"github.com/shoppy/wrapped/internal/shop"
)

const (
	TopVendorCount  = 5
	TopProductCount = 100
)

// Summarize walks every line item of every order and accumulates the bought
// quantity and the savings from items priced below their compare-at price.
func Summarize(orders []shop.Order) PurchaseSummary {
	summary := PurchaseSummary{}

	for _, order := range orders {
		for _, item := range order.LineItems {
			product := item.Product
			if product == nil {
				continue
			}

			quantity := item.EffectiveQuantity()
			price := product.PriceValue()
			compareAt := product.CompareAtValue()

			summary.TotalBought += quantity

			if compareAt > price {
				saved := (compareAt - price) * float64(quantity)
				summary.TotalSaved += saved
				summary.DiscountedProducts = append(summary.DiscountedProducts, DiscountedProduct{
					Name:            product.Title,
					OriginalPrice:   compareAt,
					DiscountedPrice: price,
					Saved:           round2(saved),
				})
			}
		}
	}

	summary.TotalSaved = round2(summary.TotalSaved)
	return summary
}

// VendorStats counts vendor occurrences across a product collection. Output
// order follows the first appearance of each vendor.
func VendorStats(products []shop.Product) []VendorStat {
	counts := make(map[string]int)
	var order []string

	for _, product := range products {
		vendor := product.VendorName()
		if _, seen := counts[vendor]; !seen {
			order = append(order, vendor)
		}
		counts[vendor]++
	}

	result := make([]VendorStat, 0, len(order))
	for _, vendor := range order {
		result = append(result, VendorStat{Vendor: vendor, Count: counts[vendor]})
	}
	return result
}

// TopOrderedVendors ranks vendors by order count, descending, truncated to
// topN. The count increments once per line item, not once per order; the
// product surface was built against that behavior, so it stays.
func TopOrderedVendors(orders []shop.Order, topN int) []VendorOrderStat {
	counts := make(map[string]int)
	var firstSeen []string

	for _, order := range orders {
		for _, item := range order.LineItems {
			if item.Product == nil {
				continue
			}
			vendor := item.Product.VendorName()
			if _, seen := counts[vendor]; !seen {
				firstSeen = append(firstSeen, vendor)
			}
			counts[vendor]++
		}
	}

	result := make([]VendorOrderStat, 0, len(firstSeen))
	for _, vendor := range firstSeen {
		result = append(result, VendorOrderStat{Vendor: vendor, OrderCount: counts[vendor]})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].OrderCount > result[j].OrderCount
	})

	if topN > 0 && len(result) > topN {
		result = result[:topN]
	}
	return result
}

// TopPurchasedProducts sums quantities per product title across all orders,
// sorted descending and truncated to topN. Ties keep first-seen order.
func TopPurchasedProducts(orders []shop.Order, topN int) []ProductStat {
	counts := make(map[string]int)
	var firstSeen []string

	for _, order := range orders {
		for _, item := range order.LineItems {
			title := item.Title()
			if title == "" {
				continue
			}
			if _, seen := counts[title]; !seen {
				firstSeen = append(firstSeen, title)
			}
			counts[title] += item.EffectiveQuantity()
		}
	}

	result := make([]ProductStat, 0, len(firstSeen))
	for _, title := range firstSeen {
		result = append(result, ProductStat{Name: title, Count: counts[title]})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	if topN > 0 && len(result) > topN {
		result = result[:topN]
	}
	return result
}

// MoneySpent totals price*quantity per line item and buckets spend by each
// order's date key. Orders without a date key count toward the total but not
// the daily histogram.
func MoneySpent(orders []shop.Order) MoneySpentSummary {
	summary := MoneySpentSummary{DailySpend: make(map[string]float64)}

	for _, order := range orders {
		var orderTotal float64
		for _, item := range order.LineItems {
			if item.Product == nil {
				continue
			}
			orderTotal += item.Product.PriceValue() * float64(item.EffectiveQuantity())
		}

		summary.TotalSpent += orderTotal
		if order.ProcessedAt != "" {
			summary.DailySpend[order.ProcessedAt] += orderTotal
		}
	}

	dates := make([]string, 0, len(summary.DailySpend))
	for date := range summary.DailySpend {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		summary.DailySpend[date] = round2(summary.DailySpend[date])
		if summary.DailySpend[date] > summary.MaxAmount {
			summary.MaxAmount = summary.DailySpend[date]
			summary.MaxDate = date
		}
	}

	summary.TotalSpent = round2(summary.TotalSpent)
	return summary
}

// Compare computes the percentage delta against the average-user baseline.
// A zero baseline short-circuits to zero instead of dividing.
func Compare(totalSpent, totalSaved, avgSpent, avgSaved float64) ComparisonStat {
	return ComparisonStat{
		SpentDeltaPercent: deltaPercent(totalSpent, avgSpent),
		SavedDeltaPercent: deltaPercent(totalSaved, avgSaved),
		SpentAboveAverage: totalSpent > avgSpent,
		SavedAboveAverage: totalSaved > avgSaved,
	}
}

func deltaPercent(actual, avg float64) int {
	if avg == 0 {
		return 0
	}
	return int(math.Round((actual - avg) / avg * 100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
