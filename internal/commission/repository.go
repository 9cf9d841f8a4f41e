package commission

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for commission records.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// History returns all rate records for a seller, newest first.
func (r *Repository) History(ctx context.Context, sellerID int64) ([]Rate, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, seller_id, rate_percent, created_at
		 FROM commission_rates
		 WHERE seller_id = $1
		 ORDER BY created_at DESC, id DESC`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []Rate
	for rows.Next() {
		var rate Rate
		if err := rows.Scan(&rate.ID, &rate.SellerID, &rate.RatePercent, &rate.CreatedAt); err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, rows.Err()
}

// Latest returns the most recent rate record for a seller. The boolean is
// false when the seller has no record at all.
func (r *Repository) Latest(ctx context.Context, sellerID int64) (Rate, bool, error) {
	var rate Rate
	err := r.pool.QueryRow(ctx,
		`SELECT id, seller_id, rate_percent, created_at
		 FROM commission_rates
		 WHERE seller_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`, sellerID,
	).Scan(&rate.ID, &rate.SellerID, &rate.RatePercent, &rate.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Rate{}, false, nil
	}
	if err != nil {
		return Rate{}, false, err
	}
	return rate, true, nil
}

// Append inserts a new rate record for a seller.
func (r *Repository) Append(ctx context.Context, sellerID int64, ratePercent float64) (Rate, error) {
	var rate Rate
	err := r.pool.QueryRow(ctx,
		`INSERT INTO commission_rates (seller_id, rate_percent, created_at)
		 VALUES ($1, $2, NOW())
		 RETURNING id, seller_id, rate_percent, created_at`,
		sellerID, ratePercent,
	).Scan(&rate.ID, &rate.SellerID, &rate.RatePercent, &rate.CreatedAt)
	return rate, err
}
