package dto

import "github.com/spec-kit/store-rating-service/internal/domain"

// CreateStoreRequest payload for administrators adding a store.
type CreateStoreRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	OwnerID int64  `json:"owner_id"`
}

// StoreSummary is the listing projection, including the aggregated rating.
type StoreSummary struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Address string   `json:"address"`
	OwnerID int64    `json:"owner_id"`
	Rating  *float64 `json:"rating"`
}

// NewStoreSummary projects a domain store.
func NewStoreSummary(store *domain.Store) StoreSummary {
	return StoreSummary{
		ID:      store.ID,
		Name:    store.Name,
		Email:   store.Email,
		Address: store.Address,
		OwnerID: store.OwnerID,
		Rating:  store.AverageRating,
	}
}
