package domain

import "time"

// Store models a rateable store owned by a registered user.
type Store struct {
	ID        int64
	Name      string
	Email     string
	Address   string
	OwnerID   int64
	CreatedAt time.Time
	UpdatedAt time.Time

	// AverageRating is populated on listings that aggregate ratings.
	// Nil when the store has no ratings yet.
	AverageRating *float64
}
