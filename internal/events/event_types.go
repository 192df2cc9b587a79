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
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// StoreCreatedPayload payload.
type StoreCreatedPayload struct {
	StoreID string `json:"store_id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
}

// RatingSubmittedPayload payload. Updated is true when the rater replaced
// an earlier value rather than rating for the first time.
type RatingSubmittedPayload struct {
	StoreID string `json:"store_id"`
	OwnerID string `json:"owner_id"`
	Value   int    `json:"value"`
	Updated bool   `json:"updated"`
}
