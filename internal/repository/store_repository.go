package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/store-rating-service/internal/domain"
)

// StoreRepository encapsulates store persistence.
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) error
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
	ListWithRatings(ctx context.Context) ([]domain.Store, error)
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

func (r *storeRepository) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	const query = `
        SELECT id, name, email, address, owner_id, created_at, updated_at
        FROM stores WHERE id=$1`

	var store domain.Store
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&store.ID,
		&store.Name,
		&store.Email,
		&store.Address,
		&store.OwnerID,
		&store.CreatedAt,
		&store.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &store, nil
}

// ListWithRatings returns every store with its average rating. Aggregation is
// delegated to the database.
func (r *storeRepository) ListWithRatings(ctx context.Context) ([]domain.Store, error) {
	const query = `
        SELECT s.id, s.name, s.email, s.address, s.owner_id, s.created_at, s.updated_at,
               AVG(r.rating)::float8 AS rating
        FROM stores s
        LEFT JOIN ratings r ON s.id = r.store_id
        GROUP BY s.id
        ORDER BY s.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		var store domain.Store
		if err := rows.Scan(
			&store.ID,
			&store.Name,
			&store.Email,
			&store.Address,
			&store.OwnerID,
			&store.CreatedAt,
			&store.UpdatedAt,
			&store.AverageRating,
		); err != nil {
			return nil, err
		}
		stores = append(stores, store)
	}
	return stores, rows.Err()
}

func (r *storeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM stores`).Scan(&count)
	return count, err
}
