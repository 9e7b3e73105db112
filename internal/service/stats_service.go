package service

import (
	"context"

	"github.com/spec-kit/store-rating-service/internal/repository"
)

// Totals holds the dashboard counters.
type Totals struct {
	Users   int64 `json:"users"`
	Stores  int64 `json:"stores"`
	Ratings int64 `json:"ratings"`
}

// StatsService aggregates table counts for the dashboards. Counts are read
// fresh on every call; results are never cached.
type StatsService struct {
	users   repository.UserRepository
	stores  repository.StoreRepository
	ratings repository.RatingRepository
}

// NewStatsService constructs the service.
func NewStatsService(users repository.UserRepository, stores repository.StoreRepository, ratings repository.RatingRepository) *StatsService {
	return &StatsService{users: users, stores: stores, ratings: ratings}
}

// Collect gathers the three counters.
func (s *StatsService) Collect(ctx context.Context) (*Totals, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	stores, err := s.stores.Count(ctx)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratings.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Totals{Users: users, Stores: stores, Ratings: ratings}, nil
}
