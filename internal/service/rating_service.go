package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/store-rating-service/internal/domain"
	"github.com/spec-kit/store-rating-service/internal/events"
	"github.com/spec-kit/store-rating-service/internal/repository"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

// RatingService covers rating submission and modification.
type RatingService struct {
	ratings    repository.RatingRepository
	stores     repository.StoreRepository
	dispatcher events.Dispatcher
}

// NewRatingService builds the service.
func NewRatingService(ratings repository.RatingRepository, stores repository.StoreRepository, dispatcher events.Dispatcher) *RatingService {
	return &RatingService{ratings: ratings, stores: stores, dispatcher: dispatcher}
}

// SubmitRating records or replaces the caller's rating for a store and
// returns the rating plus the store's refreshed aggregate.
func (s *RatingService) SubmitRating(ctx context.Context, userID, storeID string, value int) (*domain.Rating, *domain.StoreWithRating, error) {
	if value < domain.RatingMin || value > domain.RatingMax {
		return nil, nil, apperrors.NewValidationError("rating out of range", map[string]any{"value": value})
	}

	store, err := s.stores.GetByID(ctx, storeID, &userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("store", map[string]any{"id": storeID})
		}
		return nil, nil, err
	}
	if store.OwnerID == userID {
		return nil, nil, apperrors.NewForbidden("owners cannot rate their own store")
	}

	updated := store.UserRating != nil

	rating := &domain.Rating{UserID: userID, StoreID: storeID, Value: value}
	if err := s.ratings.Upsert(ctx, rating); err != nil {
		return nil, nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventRatingSubmitted,
			ActorID:   userID,
			Timestamp: time.Now(),
			Payload: events.RatingSubmittedPayload{
				StoreID: storeID,
				OwnerID: store.OwnerID,
				Value:   value,
				Updated: updated,
			},
		})
	}

	refreshed, err := s.stores.GetByID(ctx, storeID, &userID)
	if err != nil {
		return nil, nil, err
	}
	return rating, refreshed, nil
}
