package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/store-rating-service/internal/service"
)

func TestCollectTotals(t *testing.T) {
	users := new(MockUserRepository)
	stores := new(MockStoreRepository)
	ratings := new(MockRatingRepository)
	svc := service.NewStatsService(users, stores, ratings)

	users.On("Count", mock.Anything).Return(int64(12), nil)
	stores.On("Count", mock.Anything).Return(int64(3), nil)
	ratings.On("Count", mock.Anything).Return(int64(27), nil)

	totals, err := svc.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), totals.Users)
	assert.Equal(t, int64(3), totals.Stores)
	assert.Equal(t, int64(27), totals.Ratings)
}

func TestCollectTotalsPropagatesError(t *testing.T) {
	users := new(MockUserRepository)
	stores := new(MockStoreRepository)
	ratings := new(MockRatingRepository)
	svc := service.NewStatsService(users, stores, ratings)

	users.On("Count", mock.Anything).Return(int64(0), errors.New("connection refused"))

	_, err := svc.Collect(context.Background())
	require.Error(t, err)
	stores.AssertNotCalled(t, "Count")
}
