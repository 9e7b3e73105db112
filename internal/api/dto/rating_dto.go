package dto

import "github.com/spec-kit/store-rating-service/internal/domain"

// RatingRequest covers both submitting and updating a rating. The user id is
// taken from the token, never from the body.
type RatingRequest struct {
	StoreID int64 `json:"store_id"`
	Rating  int   `json:"rating"`
}

// RatingSummary is the listing projection.
type RatingSummary struct {
	UserID  int64 `json:"user_id"`
	StoreID int64 `json:"store_id"`
	Rating  int   `json:"rating"`
}

// NewRatingSummary projects a domain rating.
func NewRatingSummary(rating *domain.Rating) RatingSummary {
	return RatingSummary{
		UserID:  rating.UserID,
		StoreID: rating.StoreID,
		Rating:  rating.Rating,
	}
}
