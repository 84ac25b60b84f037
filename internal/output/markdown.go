// Package output renders a wrapped summary as a markdown report.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shoppy/wrapped/internal/stats"
	"github.com/shoppy/wrapped/internal/wrapped"
)

const (
	shownVendors = 3
	shownDeals   = 3
	shownTops    = 3
)

type Generator struct {
	outputDir string
}

func NewGenerator(outputDir string) *Generator {
	return &Generator{outputDir: outputDir}
}

// Generate writes the report to <outputDir>/shop-wrapped.md and returns its
// path.
func (g *Generator) Generate(summary *wrapped.Summary) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(g.outputDir, "shop-wrapped.md")
	if err := os.WriteFile(filename, []byte(render(summary)), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return filename, nil
}

func render(summary *wrapped.Summary) string {
	var sb strings.Builder

	sb.WriteString("# Your Shoppy Wrapped\n\n")
	sb.WriteString(fmt.Sprintf("Report ID: %s\n\n", uuid.NewString()))

	persona, description := summary.Persona.Display()
	sb.WriteString(fmt.Sprintf("## Your shopping persona: %s\n\n", persona))
	sb.WriteString(fmt.Sprintf("%s\n\n", description))
	if summary.Persona.Err != "" {
		sb.WriteString(fmt.Sprintf("_%s_\n\n", summary.Persona.Err))
	}

	sb.WriteString("## The numbers\n\n")
	sb.WriteString(fmt.Sprintf("- **Products purchased:** %d\n", summary.Purchase.TotalBought))
	sb.WriteString(fmt.Sprintf("- **Total spent:** $%.2f\n", summary.Money.TotalSpent))
	sb.WriteString(fmt.Sprintf("- **Total saved:** $%.2f\n", summary.Purchase.TotalSaved))
	if summary.Streak.Count > 0 {
		sb.WriteString(fmt.Sprintf("- **Shopping streak:** %d day(s)\n", summary.Streak.Count))
	}
	sb.WriteString("\n")

	writeTopShops(&sb, summary)
	writeTopProducts(&sb, summary)
	writeBestDeals(&sb, summary)
	writeDailySpend(&sb, summary)
	writeComparison(&sb, summary)

	return sb.String()
}

func writeTopShops(sb *strings.Builder, summary *wrapped.Summary) {
	if len(summary.TopVendors) == 0 {
		return
	}

	sb.WriteString("## Your top shops\n\n")
	for i, vendor := range summary.TopVendors {
		if i >= shownVendors {
			break
		}
		sb.WriteString(fmt.Sprintf("%d. **%s** (%d items)", i+1, vendor.Vendor, vendor.OrderCount))
		if pct := percentileFor(summary.Vendors, vendor.Vendor); pct > 0 {
			sb.WriteString(fmt.Sprintf(", you're in the top %d%% of shoppers", pct))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func writeTopProducts(sb *strings.Builder, summary *wrapped.Summary) {
	if len(summary.TopProducts) == 0 {
		return
	}

	sb.WriteString("## On repeat\n\n")
	for i, product := range summary.TopProducts {
		if i >= shownTops {
			break
		}
		sb.WriteString(fmt.Sprintf("- %s x%d\n", product.Name, product.Count))
	}
	sb.WriteString("\n")
}

func writeBestDeals(sb *strings.Builder, summary *wrapped.Summary) {
	if len(summary.Purchase.DiscountedProducts) == 0 {
		return
	}

	sb.WriteString("## Your best deals\n\n")
	for i, deal := range summary.Purchase.DiscountedProducts {
		if i >= shownDeals {
			break
		}
		sb.WriteString(fmt.Sprintf("- **%s**: $%.2f -> $%.2f (saved $%.2f)\n",
			deal.Name, deal.OriginalPrice, deal.DiscountedPrice, deal.Saved))
	}
	sb.WriteString("\n")
}

func writeDailySpend(sb *strings.Builder, summary *wrapped.Summary) {
	if len(summary.Money.DailySpend) == 0 {
		return
	}

	dates := make([]string, 0, len(summary.Money.DailySpend))
	for date := range summary.Money.DailySpend {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	sb.WriteString("## Spending by day\n\n")
	for _, date := range dates {
		sb.WriteString(fmt.Sprintf("- %s: $%.2f", date, summary.Money.DailySpend[date]))
		if date == summary.Money.MaxDate {
			sb.WriteString(" (your biggest day)")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func writeComparison(sb *strings.Builder, summary *wrapped.Summary) {
	sb.WriteString("## You vs. the average shopper\n\n")
	sb.WriteString(fmt.Sprintf("- Spending: %s\n",
		describeDelta(summary.Comparison.SpentDeltaPercent, summary.Comparison.SpentAboveAverage)))
	sb.WriteString(fmt.Sprintf("- Savings: %s\n",
		describeDelta(summary.Comparison.SavedDeltaPercent, summary.Comparison.SavedAboveAverage)))
}

func describeDelta(percent int, above bool) string {
	if percent == 0 {
		return "right at the average"
	}
	direction := "below"
	if above {
		direction = "above"
	}
	if percent < 0 {
		percent = -percent
	}
	return fmt.Sprintf("%d%% %s the average", percent, direction)
}

func percentileFor(vendors []stats.VendorStat, name string) int {
	for _, v := range vendors {
		if v.Vendor == name {
			return v.TopPercent
		}
	}
	return 0
}
