package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/store-rating-service/internal/domain"
)

// RatingFilter narrows rating listings.
type RatingFilter struct {
	StoreID *int64
}

// RatingRepository encapsulates rating persistence.
type RatingRepository interface {
	Create(ctx context.Context, rating *domain.Rating) error
	Update(ctx context.Context, rating *domain.Rating) error
	List(ctx context.Context, filter RatingFilter) ([]domain.Rating, error)
	Count(ctx context.Context) (int64, error)
}

type ratingRepository struct {
	pool *pgxpool.Pool
}

// NewRatingRepository instantiates repository.
func NewRatingRepository(pool *pgxpool.Pool) RatingRepository {
	return &ratingRepository{pool: pool}
}

func (r *ratingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	const query = `
        INSERT INTO ratings (user_id, store_id, rating)
        VALUES ($1, $2, $3)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		rating.UserID,
		rating.StoreID,
		rating.Rating,
	).Scan(&rating.CreatedAt, &rating.UpdatedAt)
}

// Update overwrites the caller's existing rating for a store. The WHERE clause
// scopes the write to (user_id, store_id), which is what enforces ownership.
func (r *ratingRepository) Update(ctx context.Context, rating *domain.Rating) error {
	const query = `
        UPDATE ratings SET rating=$1, updated_at=NOW()
        WHERE user_id=$2 AND store_id=$3
        RETURNING created_at, updated_at`

	// Scan returns pgx.ErrNoRows when the caller has no rating for the store.
	return r.pool.QueryRow(ctx, query,
		rating.Rating,
		rating.UserID,
		rating.StoreID,
	).Scan(&rating.CreatedAt, &rating.UpdatedAt)
}

func (r *ratingRepository) List(ctx context.Context, filter RatingFilter) ([]domain.Rating, error) {
	query := `
        SELECT user_id, store_id, rating, created_at, updated_at
        FROM ratings`
	args := []any{}
	if filter.StoreID != nil {
		query += ` WHERE store_id=$1`
		args = append(args, *filter.StoreID)
	}
	query += ` ORDER BY store_id, user_id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []domain.Rating
	for rows.Next() {
		var rating domain.Rating
		if err := rows.Scan(
			&rating.UserID,
			&rating.StoreID,
			&rating.Rating,
			&rating.CreatedAt,
			&rating.UpdatedAt,
		); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}

func (r *ratingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ratings`).Scan(&count)
	return count, err
}
