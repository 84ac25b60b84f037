package wrapped

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoppy/wrapped/internal/persona"
	"github.com/shoppy/wrapped/internal/shop"
	"github.com/shoppy/wrapped/internal/store"
)

func sampleOrders() []shop.Order {
	compare := shop.Money{Amount: "100"}
	return []shop.Order{
		{
			ID:          "order-1",
			ProcessedAt: "2026-08-30",
			LineItems: []shop.LineItem{
				{
					ProductTitle: "Item A",
					Quantity:     1,
					Product: &shop.Product{
						ID: 1, Title: "Item A", Vendor: "Acme",
						Price:          shop.Money{Amount: "80"},
						CompareAtPrice: &compare,
					},
				},
				{
					ProductTitle: "Item B",
					Quantity:     3,
					Product: &shop.Product{
						ID: 2, Title: "Item B", Vendor: "Bolt",
						Price: shop.Money{Amount: "20"},
					},
				},
			},
		},
	}
}

func TestAggregate(t *testing.T) {
	summary := Aggregate(sampleOrders(), 500, 100)

	assert.Equal(t, 4, summary.Purchase.TotalBought)
	assert.Equal(t, 20.00, summary.Purchase.TotalSaved)
	assert.Equal(t, 140.00, summary.Money.TotalSpent)
	assert.Equal(t, "2026-08-30", summary.Money.MaxDate)

	require.Len(t, summary.TopVendors, 2)
	require.Len(t, summary.Vendors, 2)
	assert.Equal(t, 2, len(summary.TopProducts))

	assert.Equal(t, -72, summary.Comparison.SpentDeltaPercent)
	assert.Equal(t, -80, summary.Comparison.SavedDeltaPercent)
}

func TestAggregateEmpty(t *testing.T) {
	summary := Aggregate(nil, 500, 100)

	assert.Zero(t, summary.Purchase.TotalBought)
	assert.Empty(t, summary.TopVendors)
	assert.Empty(t, summary.TopProducts)
	assert.Zero(t, summary.Money.TotalSpent)
}

type stubGenerator struct {
	calls int
}

func (s *stubGenerator) GeneratePersona(ctx context.Context, req persona.Request) (persona.Result, error) {
	s.calls++
	return persona.Result{Persona: "Tester", Description: "Runs the suite."}, nil
}

const pipelineFixture = `{"id": "order-1", "shopName": "Acme Store", "processedAt": "2026-08-30", "lineItems": [{"productTitle": "Item A", "quantity": 1, "product": {"id": 1, "title": "Item A", "vendor": "Acme", "price": {"amount": "80", "currencyCode": "USD"}, "compareAtPrice": {"amount": "100", "currencyCode": "USD"}}}]}
`

func TestPipelineRun(t *testing.T) {
	st, err := store.Open("")
	require.NoError(t, err)
	defer st.Close()

	path := filepath.Join(t.TempDir(), "orders.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(pipelineFixture), 0644))

	gen := &stubGenerator{}
	pipeline := New(st, gen, Config{OrdersPath: path, Seed: 7})

	summary, runStats, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, runStats.OrdersLoaded)
	assert.Equal(t, 1, runStats.LineItems)
	assert.Equal(t, persona.StatusResolved, runStats.PersonaStatus)
	assert.Nil(t, runStats.StreakWarning)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "Tester", summary.Persona.Persona)
	assert.Equal(t, 1, summary.Purchase.TotalBought)
	assert.Equal(t, 20.00, summary.Purchase.TotalSaved)
	assert.Equal(t, 1, summary.Streak.Count)

	// Decoration landed on every vendor stat.
	for _, v := range summary.Vendors {
		assert.GreaterOrEqual(t, v.TopPercent, 1)
		assert.LessOrEqual(t, v.TopPercent, 100)
	}
}

func TestPipelineRunSkipsPersona(t *testing.T) {
	st, err := store.Open("")
	require.NoError(t, err)
	defer st.Close()

	path := filepath.Join(t.TempDir(), "orders.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(pipelineFixture), 0644))

	gen := &stubGenerator{}
	pipeline := New(st, gen, Config{OrdersPath: path, SkipPersona: true})

	summary, runStats, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, gen.calls)
	assert.Equal(t, persona.StatusIdle, runStats.PersonaStatus)

	name, description := summary.Persona.Display()
	assert.Equal(t, persona.FallbackPersona, name)
	assert.Equal(t, persona.FallbackDescription, description)
}
