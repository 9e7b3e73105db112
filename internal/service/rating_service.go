package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/store-rating-service/internal/auth"
	"github.com/spec-kit/store-rating-service/internal/domain"
	"github.com/spec-kit/store-rating-service/internal/events"
	"github.com/spec-kit/store-rating-service/internal/repository"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

// RatingService coordinates rating workflows. The acting user always comes
// from the verified principal, never from the request body.
type RatingService struct {
	ratings    repository.RatingRepository
	stores     repository.StoreRepository
	dispatcher events.Dispatcher
}

// NewRatingService constructs the service.
func NewRatingService(ratings repository.RatingRepository, stores repository.StoreRepository, dispatcher events.Dispatcher) *RatingService {
	return &RatingService{ratings: ratings, stores: stores, dispatcher: dispatcher}
}

// ListRatings returns ratings, optionally scoped to one store.
func (s *RatingService) ListRatings(ctx context.Context, storeID *int64) ([]domain.Rating, error) {
	return s.ratings.List(ctx, repository.RatingFilter{StoreID: storeID})
}

// SubmitRating records the caller's first rating for a store.
func (s *RatingService) SubmitRating(ctx context.Context, actor *auth.Principal, storeID int64, value int) (*domain.Rating, error) {
	if err := validateRatingValue(value); err != nil {
		return nil, err
	}

	if _, err := s.stores.GetByID(ctx, storeID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewValidationError("store not found", map[string]any{"store_id": storeID})
		}
		return nil, err
	}

	rating := &domain.Rating{UserID: actor.UserID, StoreID: storeID, Rating: value}
	if err := s.ratings.Create(ctx, rating); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("rating already exists for this store", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.EventRatingSubmitted, actor, storeID, value)
	return rating, nil
}

// UpdateRating overwrites the caller's existing rating for a store. Ownership
// is enforced by scoping the update to the principal's id.
func (s *RatingService) UpdateRating(ctx context.Context, actor *auth.Principal, storeID int64, value int) (*domain.Rating, error) {
	if err := validateRatingValue(value); err != nil {
		return nil, err
	}

	rating := &domain.Rating{UserID: actor.UserID, StoreID: storeID, Rating: value}
	if err := s.ratings.Update(ctx, rating); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("rating", map[string]any{"store_id": storeID})
		}
		return nil, err
	}

	s.publish(ctx, events.EventRatingUpdated, actor, storeID, value)
	return rating, nil
}

func validateRatingValue(value int) error {
	if value < domain.RatingMin || value > domain.RatingMax {
		return apperrors.NewValidationError("rating must be between 1 and 5", map[string]any{"rating": value})
	}
	return nil
}

func (s *RatingService) publish(ctx context.Context, eventType events.EventType, actor *auth.Principal, storeID int64, value int) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     events.Actor{UserID: actor.UserID, Role: actor.Role},
		Timestamp: time.Now(),
		Payload:   events.RatingPayload{StoreID: storeID, Rating: value},
	})
}
