package shop

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is a price as delivered by the commerce backend: the amount is a
// decimal string, not a number.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode,omitempty"`
}

// Value parses the amount, treating anything unparseable as zero. Bad price
// data must never fail an aggregation.
func (m Money) Value() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(m.Amount), 64)
	if err != nil {
		return 0
	}
	return v
}

type Product struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Vendor         string `json:"vendor,omitempty"`
	Price          Money  `json:"price"`
	CompareAtPrice *Money `json:"compareAtPrice,omitempty"`
}

// VendorName resolves the vendor, falling back to a deterministic
// pseudo-vendor keyed by the product id when the field is missing.
func (p Product) VendorName() string {
	if p.Vendor != "" {
		return p.Vendor
	}
	n := p.ID % 3
	if n < 0 {
		n += 3
	}
	return fmt.Sprintf("Mock Vendor %d", n+1)
}

// PriceValue is the current price, zero when unparseable.
func (p Product) PriceValue() float64 {
	return p.Price.Value()
}

// CompareAtValue is the list price used for savings math. When no compare-at
// price is set it equals the current price, so no discount is recorded.
func (p Product) CompareAtValue() float64 {
	if p.CompareAtPrice == nil || strings.TrimSpace(p.CompareAtPrice.Amount) == "" {
		return p.PriceValue()
	}
	return p.CompareAtPrice.Value()
}

type LineItem struct {
	ProductTitle string   `json:"productTitle"`
	VariantTitle string   `json:"variantTitle,omitempty"`
	Quantity     int      `json:"quantity,omitempty"`
	Product      *Product `json:"product,omitempty"`
}

// EffectiveQuantity treats a missing quantity as 1.
func (li LineItem) EffectiveQuantity() int {
	if li.Quantity == 0 {
		return 1
	}
	return li.Quantity
}

// Title prefers the line item's own product title and falls back to the
// referenced product's title.
func (li LineItem) Title() string {
	if li.ProductTitle != "" {
		return li.ProductTitle
	}
	if li.Product != nil {
		return li.Product.Title
	}
	return ""
}

// Order is a purchase transaction as supplied by the order data source.
// ProcessedAt is an optional YYYY-MM-DD date key; the backend does not
// reliably provide it, so it may be empty.
type Order struct {
	ID          string     `json:"id"`
	ShopName    string     `json:"shopName,omitempty"`
	ProcessedAt string     `json:"processedAt,omitempty"`
	LineItems   []LineItem `json:"lineItems"`
}
