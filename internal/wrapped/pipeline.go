// Package wrapped orchestrates the whole run: load orders, derive the
// statistics, update the streak, and generate the persona.
package wrapped

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/shoppy/wrapped/internal/persona"
	"github.com/shoppy/wrapped/internal/shop"
	"github.com/shoppy/wrapped/internal/stats"
	"github.com/shoppy/wrapped/internal/store"
	"github.com/shoppy/wrapped/internal/streak"
)

type Config struct {
	OrdersPath  string
	AvgSpent    float64
	AvgSaved    float64
	SkipPersona bool
	// Seed drives the decorative vendor percentiles only; 0 means a
	// time-seeded source.
	Seed int64
}

// Summary is everything a run derives from the order history.
type Summary struct {
	Purchase    stats.PurchaseSummary
	Vendors     []stats.VendorStat
	TopVendors  []stats.VendorOrderStat
	TopProducts []stats.ProductStat
	Money       stats.MoneySpentSummary
	Comparison  stats.ComparisonStat
	Streak      streak.State
	Persona     persona.State
}

// Stats counts what the run processed, for operator output.
type Stats struct {
	OrdersLoaded  int
	LineItems     int
	PersonaStatus persona.Status

	// StreakWarning is set when streak persistence failed; the run still
	// succeeds with a fallback streak.
	StreakWarning error
}

type Pipeline struct {
	store *store.Store
	gen   persona.Generator
	cfg   Config
}

// New builds a pipeline. gen may be nil when persona generation is disabled;
// the fallback persona is used instead.
func New(st *store.Store, gen persona.Generator, cfg Config) *Pipeline {
	if cfg.AvgSpent == 0 {
		cfg.AvgSpent = stats.DefaultAvgSpent
	}
	if cfg.AvgSaved == 0 {
		cfg.AvgSaved = stats.DefaultAvgSaved
	}
	return &Pipeline{store: st, gen: gen, cfg: cfg}
}

func (p *Pipeline) Run(ctx context.Context) (*Summary, Stats, error) {
	runStats := Stats{PersonaStatus: persona.StatusIdle}

	orders, err := p.store.LoadOrders(ctx, p.cfg.OrdersPath)
	if err != nil {
		return nil, runStats, fmt.Errorf("failed to load orders: %w", err)
	}
	runStats.OrdersLoaded = len(orders)
	for _, order := range orders {
		runStats.LineItems += len(order.LineItems)
	}

	summary := Aggregate(orders, p.cfg.AvgSpent, p.cfg.AvgSaved)
	stats.Decorate(summary.Vendors, rand.New(rand.NewSource(p.seed())))

	tracker := streak.NewTracker(p.store, nil)
	summary.Streak, err = tracker.Update(ctx, len(orders))
	if err != nil {
		runStats.StreakWarning = err
	}

	summary.Persona = persona.State{Status: persona.StatusIdle}
	if !p.cfg.SkipPersona && p.gen != nil {
		workflow := persona.NewWorkflow(p.gen)
		summary.Persona = workflow.Generate(ctx, personaRequest(orders, summary))
	}
	runStats.PersonaStatus = summary.Persona.Status

	return summary, runStats, nil
}

// Aggregate runs the pure aggregation engine over orders. It is separated
// from Run so tests can exercise it without a database.
func Aggregate(orders []shop.Order, avgSpent, avgSaved float64) *Summary {
	summary := &Summary{
		Purchase:    stats.Summarize(orders),
		Vendors:     stats.VendorStats(collectProducts(orders)),
		TopVendors:  stats.TopOrderedVendors(orders, stats.TopVendorCount),
		TopProducts: stats.TopPurchasedProducts(orders, stats.TopProductCount),
		Money:       stats.MoneySpent(orders),
	}
	summary.Comparison = stats.Compare(summary.Money.TotalSpent, summary.Purchase.TotalSaved, avgSpent, avgSaved)
	return summary
}

func personaRequest(orders []shop.Order, summary *Summary) persona.Request {
	vendors := make([]string, 0, len(summary.TopVendors))
	for _, v := range summary.TopVendors {
		vendors = append(vendors, v.Vendor)
	}

	products := make([]string, 0, len(summary.TopProducts))
	for _, p := range summary.TopProducts {
		products = append(products, p.Name)
	}

	return persona.Request{
		OrderCount:     len(orders),
		TopVendors:     vendors,
		ProductsBought: summary.Purchase.TotalBought,
		MoneySpent:     summary.Money.TotalSpent,
		TotalSaved:     summary.Purchase.TotalSaved,
		TopProducts:    products,
	}
}

func collectProducts(orders []shop.Order) []shop.Product {
	var products []shop.Product
	for _, order := range orders {
		for _, item := range order.LineItems {
			if item.Product == nil {
				continue
			}
			products = append(products, *item.Product)
		}
	}
	return products
}

func (p *Pipeline) seed() int64 {
	if p.cfg.Seed != 0 {
		return p.cfg.Seed
	}
	return rand.Int63()
}
