package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestKVRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	value, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, s.Set(ctx, "orderStreak", "1"))
	require.NoError(t, s.Set(ctx, "orderStreak", "2"))

	value, err = s.Get(ctx, "orderStreak")
	require.NoError(t, err)
	assert.Equal(t, "2", value)
}

const ordersFixture = `{"id": "gid://shop/Order/1", "shopName": "Acme Store", "processedAt": "2026-08-30", "lineItems": [{"productTitle": "Wool Socks", "quantity": 2, "product": {"id": 11, "title": "Wool Socks", "vendor": "Acme", "price": {"amount": "12.50", "currencyCode": "USD"}, "compareAtPrice": {"amount": "15.00", "currencyCode": "USD"}}}]}
{"id": "gid://shop/Order/2", "shopName": "Bolt Goods", "processedAt": "2026-08-31", "lineItems": [{"productTitle": "Mug", "quantity": 1, "product": {"id": 12, "title": "Mug", "vendor": "Bolt", "price": {"amount": "8.00", "currencyCode": "USD"}, "compareAtPrice": null}}]}
not valid json at all
`

func TestLoadOrders(t *testing.T) {
	s := openTestStore(t)

	path := filepath.Join(t.TempDir(), "orders.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(ordersFixture), 0644))

	orders, err := s.LoadOrders(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, orders, 2)
	assert.Equal(t, "gid://shop/Order/1", orders[0].ID)
	assert.Equal(t, "Acme Store", orders[0].ShopName)
	assert.Equal(t, "2026-08-30", orders[0].ProcessedAt)
	require.Len(t, orders[0].LineItems, 1)

	item := orders[0].LineItems[0]
	assert.Equal(t, "Wool Socks", item.ProductTitle)
	assert.Equal(t, 2, item.Quantity)
	require.NotNil(t, item.Product)
	assert.Equal(t, "Acme", item.Product.Vendor)
	assert.Equal(t, 12.50, item.Product.PriceValue())
	assert.Equal(t, 15.00, item.Product.CompareAtValue())

	// The null compare-at price falls back to the current price.
	assert.Equal(t, 8.00, orders[1].LineItems[0].Product.CompareAtValue())
}

func TestLoadOrdersMissingFile(t *testing.T) {
	s := openTestStore(t)

	_, err := s.LoadOrders(context.Background(), filepath.Join(t.TempDir(), "nope.jsonl"))
	assert.Error(t, err)
}
