package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sellhub/sellhub/internal/platform/db"
	"github.com/sellhub/sellhub/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, req ListOrdersRequest) ([]OrderWithRefs, int, error)
	Get(ctx context.Context, id int64) (*Order, error)
	UpdateStatus(ctx context.Context, id int64, from, to Status, courierID *int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, req ListOrdersRequest) ([]OrderWithRefs, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.Status != nil {
		conditions = append(conditions, fmt.Sprintf("o.status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}
	if req.CourierID != nil {
		conditions = append(conditions, fmt.Sprintf("o.courier_id = $%d", argPos))
		args = append(args, *req.CourierID)
		argPos++
	}
	if req.SellerID != nil {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = o.id AND oi.seller_id = $%d)", argPos))
		args = append(args, *req.SellerID)
		argPos++
	}
	if req.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("o.updated_at >= $%d", argPos))
		args = append(args, *req.DateFrom)
		argPos++
	}
	if req.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("o.updated_at <= $%d", argPos))
		args = append(args, *req.DateTo)
		argPos++
	}
	if req.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(o.number ILIKE $%d OR o.customer_name ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+req.Search+"%")
		argPos++
	}

	whereClause := ""
	for i, cond := range conditions {
		if i == 0 {
			whereClause = " WHERE " + cond
		} else {
			whereClause += " AND " + cond
		}
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM orders o` + whereClause
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT o.id, o.number, o.customer_name, o.customer_phone, o.address,
		       o.courier_id, o.status, o.total_amount, o.created_at, o.updated_at,
		       u.name AS courier_name
		FROM orders o
		LEFT JOIN staff u ON u.id = o.courier_id` + whereClause + `
		ORDER BY o.updated_at DESC`
	if req.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, req.Limit, req.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []OrderWithRefs
	for rows.Next() {
		var o OrderWithRefs
		if err := rows.Scan(
			&o.ID, &o.Number, &o.CustomerName, &o.CustomerPhone, &o.Address,
			&o.CourierID, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt,
			&o.CourierName,
		); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (*Order, error) {
	var o Order
	err := r.pool.QueryRow(ctx,
		`SELECT id, number, customer_name, customer_phone, address, courier_id,
		        status, total_amount, created_at, updated_at
		 FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.Number, &o.CustomerName, &o.CustomerPhone, &o.Address, &o.CourierID,
		&o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, httpx.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.seller_id, oi.quantity, oi.unit_price
		 FROM order_items oi
		 JOIN products p ON p.id = oi.product_id
		 WHERE oi.order_id = $1
		 ORDER BY oi.id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.SellerID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateStatus moves an order from one status to another inside a
// transaction, guarding against concurrent transitions with a row lock.
// updated_at is bumped so financial reports pick up the change time.
func (r *repository) UpdateStatus(ctx context.Context, id int64, from, to Status, courierID *int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var current Status
		err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return httpx.ErrNotFound
		}
		if err != nil {
			return err
		}
		if current != from {
			return fmt.Errorf("%w: order moved to %s concurrently", httpx.ErrConflict, current)
		}

		if courierID != nil {
			_, err = tx.Exec(ctx,
				`UPDATE orders SET status = $1, courier_id = $2, updated_at = $3 WHERE id = $4`,
				to, *courierID, time.Now(), id)
		} else {
			_, err = tx.Exec(ctx,
				`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
				to, time.Now(), id)
		}
		return err
	})
}
