package reports

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sellhub/sellhub/internal/revenue"
)

// Repository implements Source against PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// QueryLineItems flattens eligible orders to line items with the seller's
// current commission rate resolved in the query. The LATERAL picks the most
// recently created commission record per seller; COALESCE defaults missing
// records to 0.
func (r *Repository) QueryLineItems(ctx context.Context, q LineItemQuery) ([]revenue.LineItem, error) {
	query := `
		SELECT o.id, oi.seller_id, u.name, oi.quantity, oi.unit_price,
		       COALESCE(cr.rate_percent, 0)
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN staff u ON u.id = oi.seller_id
		LEFT JOIN LATERAL (
			SELECT rate_percent
			FROM commission_rates
			WHERE seller_id = oi.seller_id
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		) cr ON TRUE`

	var conditions []string
	var args []interface{}
	argPos := 1

	if len(q.StatusIn) > 0 {
		conditions = append(conditions, fmt.Sprintf("o.status = ANY($%d)", argPos))
		statuses := make([]string, len(q.StatusIn))
		for i, s := range q.StatusIn {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		argPos++
	}
	if q.UpdatedFrom != nil {
		conditions = append(conditions, fmt.Sprintf("o.updated_at >= $%d", argPos))
		args = append(args, *q.UpdatedFrom)
		argPos++
	}
	if q.UpdatedTo != nil {
		conditions = append(conditions, fmt.Sprintf("o.updated_at <= $%d", argPos))
		args = append(args, *q.UpdatedTo)
		argPos++
	}
	if q.SellerID != nil {
		conditions = append(conditions, fmt.Sprintf("oi.seller_id = $%d", argPos))
		args = append(args, *q.SellerID)
		argPos++
	}
	if q.CourierID != nil {
		conditions = append(conditions, fmt.Sprintf("o.courier_id = $%d", argPos))
		args = append(args, *q.CourierID)
		argPos++
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []revenue.LineItem
	for rows.Next() {
		var item revenue.LineItem
		if err := rows.Scan(&item.OrderID, &item.SellerID, &item.SellerName,
			&item.Quantity, &item.UnitPrice, &item.CommissionRatePercent); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// QueryCounts gathers the descriptive dashboard figures.
func (r *Repository) QueryCounts(ctx context.Context) (Counts, error) {
	counts := Counts{OrdersByStatus: make(map[string]int)}

	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM staff WHERE role = 'seller'),
			(SELECT COUNT(*) FROM staff WHERE role = 'courier')`,
	).Scan(&counts.Products, &counts.Categories, &counts.Sellers, &counts.Couriers)
	if err != nil {
		return Counts{}, err
	}

	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return Counts{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Counts{}, err
		}
		counts.OrdersByStatus[status] = count
	}
	return counts, rows.Err()
}
