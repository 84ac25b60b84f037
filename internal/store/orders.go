package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shoppy/wrapped/internal/shop"
)

// LoadOrders reads an order export (newline-delimited JSON, one order per
// line) from path. Records that cannot be parsed are skipped; one bad line
// never fails the whole import.
func (s *Store) LoadOrders(ctx context.Context, path string) ([]shop.Order, error) {
	query := fmt.Sprintf(`
		SELECT
			COALESCE(CAST(id AS VARCHAR), '') AS id,
			COALESCE(shopName, '') AS shop_name,
			COALESCE(processedAt, '') AS processed_at,
			COALESCE(CAST(to_json(lineItems) AS VARCHAR), '[]') AS line_items
		FROM read_json('%s',
			format = 'newline_delimited',
			union_by_name = true,
			ignore_errors = true
		)
		WHERE id IS NOT NULL
	`, escapePath(path))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []shop.Order
	for rows.Next() {
		var (
			id            string
			shopName      string
			processedAt   string
			lineItemsJSON string
		)

		if err := rows.Scan(&id, &shopName, &processedAt, &lineItemsJSON); err != nil {
			continue
		}

		var lineItems []shop.LineItem
		if err := json.Unmarshal([]byte(lineItemsJSON), &lineItems); err != nil {
			continue
		}

		orders = append(orders, shop.Order{
			ID:          id,
			ShopName:    shopName,
			ProcessedAt: processedAt,
			LineItems:   lineItems,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return orders, nil
}

func escapePath(path string) string {
	return strings.ReplaceAll(path, "'", "''")
}
