package staff

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

// Repository provides PostgreSQL backed persistence for staff members.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const memberColumns = `id, name, email, phone, role, password_hash, is_active, created_at, updated_at`

// List returns staff members matching the filters.
func (r *Repository) List(ctx context.Context, filters shared.ListFilters) ([]Member, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}
	if filters.Role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argPos))
		args = append(args, filters.Role)
		argPos++
	}
	if filters.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
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
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM staff`+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + memberColumns + ` FROM staff` + whereClause + ` ORDER BY name ASC`
	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, filters.Limit, filters.Offset())
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Role, &m.PasswordHash, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		members = append(members, m)
	}
	return members, total, rows.Err()
}

// Get returns a staff member by id.
func (r *Repository) Get(ctx context.Context, id int64) (Member, error) {
	var m Member
	err := r.pool.QueryRow(ctx, `SELECT `+memberColumns+` FROM staff WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Role, &m.PasswordHash, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Member{}, httpx.ErrNotFound
	}
	return m, err
}

// Create inserts a staff member.
func (r *Repository) Create(ctx context.Context, member Member) (Member, error) {
	now := time.Now()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO staff (name, email, phone, role, password_hash, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		 RETURNING id, created_at, updated_at`,
		member.Name, member.Email, member.Phone, member.Role, member.PasswordHash, member.IsActive, now,
	).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)
	if isUniqueViolation(err) {
		return Member{}, httpx.ErrDuplicate
	}
	return member, err
}

// Update rewrites a staff member. An empty PasswordHash keeps the stored one.
func (r *Repository) Update(ctx context.Context, id int64, member Member) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE staff
		 SET name = $1, email = $2, phone = $3, role = $4,
		     password_hash = COALESCE(NULLIF($5, ''), password_hash),
		     is_active = $6, updated_at = $7
		 WHERE id = $8`,
		member.Name, member.Email, member.Phone, member.Role, member.PasswordHash, member.IsActive, time.Now(), id,
	)
	if isUniqueViolation(err) {
		return httpx.ErrDuplicate
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// Delete removes a staff member.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
