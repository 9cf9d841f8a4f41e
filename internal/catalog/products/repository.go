package products

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sellhub/sellhub/internal/platform/httpx"
	"github.com/sellhub/sellhub/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]ProductWithRefs, int, error)
	Get(ctx context.Context, id int64) (ProductWithRefs, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, id int64, product Product) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const selectWithRefs = `
SELECT p.id, p.sku, p.name, p.description, p.category_id, p.seller_id,
       p.price, p.stock, p.image_url, p.is_active, p.created_at, p.updated_at,
       c.name AS category_name, u.name AS seller_name
FROM products p
JOIN categories c ON c.id = p.category_id
JOIN staff u ON u.id = p.seller_id`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]ProductWithRefs, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(p.name ILIKE $%d OR p.sku ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}
	if filters.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", argPos))
		args = append(args, *filters.CategoryID)
		argPos++
	}
	if filters.SellerID != nil {
		conditions = append(conditions, fmt.Sprintf("p.seller_id = $%d", argPos))
		args = append(args, *filters.SellerID)
		argPos++
	}
	if filters.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("p.is_active = $%d", argPos))
		args = append(args, *filters.IsActive)
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
	countQuery := `SELECT COUNT(*) FROM products p` + whereClause
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := selectWithRefs + whereClause + " ORDER BY " + sortOrder(filters.SortBy, filters.SortDir)
	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, filters.Limit, filters.Offset())
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []ProductWithRefs
	for rows.Next() {
		var p ProductWithRefs
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Name, &p.Description, &p.CategoryID, &p.SellerID,
			&p.Price, &p.Stock, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
			&p.CategoryName, &p.SellerName,
		); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (ProductWithRefs, error) {
	var p ProductWithRefs
	err := r.pool.QueryRow(ctx, selectWithRefs+` WHERE p.id = $1`, id).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.CategoryID, &p.SellerID,
		&p.Price, &p.Stock, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		&p.CategoryName, &p.SellerName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ProductWithRefs{}, httpx.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	now := time.Now()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO products (sku, name, description, category_id, seller_id, price, stock, image_url, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		 RETURNING id, created_at, updated_at`,
		product.SKU, product.Name, product.Description, product.CategoryID, product.SellerID,
		product.Price, product.Stock, product.ImageURL, product.IsActive, now,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return Product{}, httpx.ErrDuplicate
			case "23503":
				return Product{}, fmt.Errorf("%w: unknown category or seller", httpx.ErrValidation)
			}
		}
		return Product{}, err
	}
	return product, nil
}

func (r *repository) Update(ctx context.Context, id int64, product Product) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products
		 SET name = $1, description = $2, category_id = $3, seller_id = $4,
		     price = $5, stock = $6, image_url = $7, is_active = $8, updated_at = $9
		 WHERE id = $10`,
		product.Name, product.Description, product.CategoryID, product.SellerID,
		product.Price, product.Stock, product.ImageURL, product.IsActive, time.Now(), id,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: unknown category or seller", httpx.ErrValidation)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == "desc" {
		dir = "DESC"
	}
	switch sortBy {
	case "price":
		return "p.price " + dir
	case "stock":
		return "p.stock " + dir
	case "created_at":
		return "p.created_at " + dir
	default:
		return "p.name " + dir
	}
}
