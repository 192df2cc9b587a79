package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/store-rating-service/internal/domain"
)

// RatingRepository encapsulates rating persistence.
type RatingRepository interface {
	Upsert(ctx context.Context, rating *domain.Rating) error
	GetByUserAndStore(ctx context.Context, userID, storeID string) (*domain.Rating, error)
	ListRatersByStore(ctx context.Context, storeID string) ([]domain.RaterEntry, error)
	Count(ctx context.Context) (int64, error)
}

type ratingRepository struct {
	pool *pgxpool.Pool
}

// NewRatingRepository instantiates repository.
func NewRatingRepository(pool *pgxpool.Pool) RatingRepository {
	return &ratingRepository{pool: pool}
}

// Upsert inserts a rating or, when the (user, store) pair already rated,
// replaces the value in place.
func (r *ratingRepository) Upsert(ctx context.Context, rating *domain.Rating) error {
	const query = `
        INSERT INTO ratings (user_id, store_id, value)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, store_id)
        DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		rating.UserID,
		rating.StoreID,
		rating.Value,
	).Scan(&rating.ID, &rating.CreatedAt, &rating.UpdatedAt)
}

func (r *ratingRepository) GetByUserAndStore(ctx context.Context, userID, storeID string) (*domain.Rating, error) {
	const query = `
        SELECT id, user_id, store_id, value, created_at, updated_at
        FROM ratings WHERE user_id=$1 AND store_id=$2`

	var rating domain.Rating
	if err := r.pool.QueryRow(ctx, query, userID, storeID).Scan(
		&rating.ID,
		&rating.UserID,
		&rating.StoreID,
		&rating.Value,
		&rating.CreatedAt,
		&rating.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) ListRatersByStore(ctx context.Context, storeID string) ([]domain.RaterEntry, error) {
	const query = `
        SELECT u.id, u.name, u.email, r.value, r.updated_at
        FROM ratings r
        JOIN users u ON u.id = r.user_id
        WHERE r.store_id = $1
        ORDER BY r.updated_at DESC`

	rows, err := r.pool.Query(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RaterEntry
	for rows.Next() {
		var entry domain.RaterEntry
		if err := rows.Scan(
			&entry.UserID,
			&entry.Name,
			&entry.Email,
			&entry.Value,
			&entry.RatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *ratingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ratings`).Scan(&count)
	return count, err
}
