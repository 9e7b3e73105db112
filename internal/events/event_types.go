package events

import (
	"time"

	"github.com/spec-kit/store-rating-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventStoreCreated    EventType = "store_created"
	EventRatingSubmitted EventType = "rating_submitted"
	EventRatingUpdated   EventType = "rating_updated"
)

// Actor encapsulates who triggered an event. UserID is zero for anonymous
// actions such as registration.
type Actor struct {
	UserID int64       `json:"user_id,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID int64       `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// StoreCreatedPayload payload.
type StoreCreatedPayload struct {
	StoreID int64  `json:"store_id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"owner_id"`
}

// RatingPayload covers both submission and update of a rating.
type RatingPayload struct {
	StoreID int64 `json:"store_id"`
	Rating  int   `json:"rating"`
}
