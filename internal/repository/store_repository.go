package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/store-rating-service/internal/domain"
)

// StoreFilter captures listing/search parameters. When ForUserID is set,
// each row carries that user's own rating alongside the aggregate.
type StoreFilter struct {
	Name      *string
	Address   *string
	ForUserID *string
	SortBy    string
	SortDir   string
	Limit     int
	Offset    int
}

// StoreRepository encapsulates store persistence.
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) error
	Update(ctx context.Context, store *domain.Store) error
	GetByID(ctx context.Context, id string, forUserID *string) (*domain.StoreWithRating, error)
	GetByOwnerID(ctx context.Context, ownerID string) (*domain.StoreWithRating, error)
	ListWithFilter(ctx context.Context, filter StoreFilter) ([]domain.StoreWithRating, error)
	Count(ctx context.Context) (int64, error)
}

type storeRepository struct {
	pool *pgxpool.Pool
}

// NewStoreRepository instantiates repository.
func NewStoreRepository(pool *pgxpool.Pool) StoreRepository {
	return &storeRepository{pool: pool}
}

func (r *storeRepository) Create(ctx context.Context, store *domain.Store) error {
	const query = `
        INSERT INTO stores (name, email, address, owner_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		store.Name,
		store.Email,
		store.Address,
		store.OwnerID,
	).Scan(&store.ID, &store.CreatedAt, &store.UpdatedAt)
}

func (r *storeRepository) Update(ctx context.Context, store *domain.Store) error {
	const query = `
        UPDATE stores SET name=$1, email=$2, address=$3, owner_id=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		store.Name,
		store.Email,
		store.Address,
		store.OwnerID,
		store.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ratedStoreSelect aggregates ratings per store; $1 is the caller id (or
// NULL) used to pick out the caller's own rating.
const ratedStoreSelect = `
    SELECT s.id, s.name, s.email, s.address, s.owner_id, s.created_at, s.updated_at,
           COALESCE(AVG(r.value), 0)::float8 AS avg_rating,
           COUNT(r.id) AS rating_count,
           MAX(r.value) FILTER (WHERE r.user_id = $1) AS user_rating
    FROM stores s
    LEFT JOIN ratings r ON r.store_id = s.id`

const ratedStoreGroup = ` GROUP BY s.id, s.name, s.email, s.address, s.owner_id, s.created_at, s.updated_at`

func (r *storeRepository) GetByID(ctx context.Context, id string, forUserID *string) (*domain.StoreWithRating, error) {
	query := ratedStoreSelect + ` WHERE s.id = $2` + ratedStoreGroup
	return r.fetchSingle(ctx, query, forUserID, id)
}

func (r *storeRepository) GetByOwnerID(ctx context.Context, ownerID string) (*domain.StoreWithRating, error) {
	query := ratedStoreSelect + ` WHERE s.owner_id = $2` + ratedStoreGroup
	return r.fetchSingle(ctx, query, nil, ownerID)
}

func (r *storeRepository) fetchSingle(ctx context.Context, query string, forUserID *string, arg any) (*domain.StoreWithRating, error) {
	var store domain.StoreWithRating
	if err := r.pool.QueryRow(ctx, query, forUserID, arg).Scan(
		&store.ID,
		&store.Name,
		&store.Email,
		&store.Address,
		&store.OwnerID,
		&store.CreatedAt,
		&store.UpdatedAt,
		&store.AverageRating,
		&store.RatingCount,
		&store.UserRating,
	); err != nil {
		return nil, err
	}
	return &store, nil
}

// storeSortColumns whitelists sortable fields against injection.
var storeSortColumns = map[string]string{
	"name":       "s.name",
	"email":      "s.email",
	"address":    "s.address",
	"rating":     "avg_rating",
	"created_at": "s.created_at",
}

func (r *storeRepository) ListWithFilter(ctx context.Context, filter StoreFilter) ([]domain.StoreWithRating, error) {
	clauses := []string{"1=1"}
	args := []any{filter.ForUserID}

	if filter.Name != nil && strings.TrimSpace(*filter.Name) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.Name))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(s.name) LIKE $%d", len(args)))
	}
	if filter.Address != nil && strings.TrimSpace(*filter.Address) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.Address))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(s.address) LIKE $%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s%s ORDER BY %s LIMIT %d OFFSET %d`,
		ratedStoreSelect,
		strings.Join(clauses, " AND "),
		ratedStoreGroup,
		orderClause(storeSortColumns, filter.SortBy, filter.SortDir, "s.name ASC"),
		normalizeLimit(filter.Limit),
		normalizeOffset(filter.Offset),
	)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StoreWithRating
	for rows.Next() {
		var store domain.StoreWithRating
		if err := rows.Scan(
			&store.ID,
			&store.Name,
			&store.Email,
			&store.Address,
			&store.OwnerID,
			&store.CreatedAt,
			&store.UpdatedAt,
			&store.AverageRating,
			&store.RatingCount,
			&store.UserRating,
		); err != nil {
			return nil, err
		}
		result = append(result, store)
	}
	return result, rows.Err()
}

func (r *storeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM stores`).Scan(&count)
	return count, err
}
