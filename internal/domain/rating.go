package domain

import "time"

// RatingMin and RatingMax bound the accepted rating values.
const (
	RatingMin = 1
	RatingMax = 5
)

// Rating is one user's score for one store. A user holds at most one rating
// per store; updates overwrite it in place.
type Rating struct {
	UserID    int64
	StoreID   int64
	Rating    int
	CreatedAt time.Time
	UpdatedAt time.Time
}
