package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/store-rating-service/internal/auth"
	"github.com/spec-kit/store-rating-service/internal/domain"
	"github.com/spec-kit/store-rating-service/internal/events"
	"github.com/spec-kit/store-rating-service/internal/repository"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

// StoreCreateInput describes store creation payload.
type StoreCreateInput struct {
	Name    string
	Email   string
	Address string
	OwnerID int64
}

// StoreService coordinates store workflows.
type StoreService struct {
	stores     repository.StoreRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewStoreService constructs the service.
func NewStoreService(stores repository.StoreRepository, users repository.UserRepository, dispatcher events.Dispatcher) *StoreService {
	return &StoreService{stores: stores, users: users, dispatcher: dispatcher}
}

// ListStores returns all stores with their database-aggregated average rating.
func (s *StoreService) ListStores(ctx context.Context) ([]domain.Store, error) {
	return s.stores.ListWithRatings(ctx)
}

// CreateStore registers a store for an existing owner. Only administrators
// reach this point; role gating happens in the route table.
func (s *StoreService) CreateStore(ctx context.Context, actor *auth.Principal, input StoreCreateInput) (*domain.Store, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}

	if _, err := s.users.GetByID(ctx, input.OwnerID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewValidationError("owner not found", map[string]any{"owner_id": input.OwnerID})
		}
		return nil, err
	}

	store := &domain.Store{
		Name:    strings.TrimSpace(input.Name),
		Email:   input.Email,
		Address: input.Address,
		OwnerID: input.OwnerID,
	}
	if err := s.stores.Create(ctx, store); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventStoreCreated,
			Actor:     events.Actor{UserID: actor.UserID, Role: actor.Role},
			Timestamp: time.Now(),
			Payload: events.StoreCreatedPayload{
				StoreID: store.ID,
				Name:    store.Name,
				OwnerID: store.OwnerID,
			},
		})
	}
	return store, nil
}
