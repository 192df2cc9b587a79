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

// OwnerDashboard is what a store owner sees for their store.
type OwnerDashboard struct {
	Store  domain.StoreWithRating
	Raters []domain.RaterEntry
}

// StoreService covers store registration and browsing.
type StoreService struct {
	stores     repository.StoreRepository
	users      repository.UserRepository
	ratings    repository.RatingRepository
	dispatcher events.Dispatcher
}

// NewStoreService builds the service.
func NewStoreService(stores repository.StoreRepository, users repository.UserRepository, ratings repository.RatingRepository, dispatcher events.Dispatcher) *StoreService {
	return &StoreService{stores: stores, users: users, ratings: ratings, dispatcher: dispatcher}
}

// CreateStore registers a store for an owner account (admin flow). The
// owner must exist and hold the STORE_OWNER role.
func (s *StoreService) CreateStore(ctx context.Context, name, email, address, ownerID string) (*domain.Store, error) {
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("owner", map[string]any{"owner_id": ownerID})
		}
		return nil, err
	}
	if owner.Role != domain.RoleStoreOwner {
		return nil, apperrors.NewValidationError("owner must hold the STORE_OWNER role", map[string]any{"owner_id": ownerID})
	}
	if existing, err := s.stores.GetByOwnerID(ctx, ownerID); err == nil && existing != nil {
		return nil, apperrors.NewConflict("owner already has a store", map[string]any{"store_id": existing.ID})
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	store := &domain.Store{
		Name:    name,
		Email:   email,
		Address: address,
		OwnerID: ownerID,
	}
	if err := s.stores.Create(ctx, store); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventStoreCreated,
			ActorID:   ownerID,
			Timestamp: time.Now(),
			Payload: events.StoreCreatedPayload{
				StoreID: store.ID,
				OwnerID: ownerID,
				Name:    store.Name,
			},
		})
	}
	return store, nil
}

// ListStores searches stores; forUserID threads the caller so each row
// carries the caller's own rating.
func (s *StoreService) ListStores(ctx context.Context, filter repository.StoreFilter) ([]domain.StoreWithRating, error) {
	return s.stores.ListWithFilter(ctx, filter)
}

// GetStore loads one store with aggregate and caller rating.
func (s *StoreService) GetStore(ctx context.Context, id string, forUserID *string) (*domain.StoreWithRating, error) {
	store, err := s.stores.GetByID(ctx, id, forUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("store", map[string]any{"id": id})
		}
		return nil, err
	}
	return store, nil
}

// OwnerDashboard resolves the caller's store and its raters.
func (s *StoreService) OwnerDashboard(ctx context.Context, ownerID string) (*OwnerDashboard, error) {
	store, err := s.stores.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("store", map[string]any{"owner_id": ownerID})
		}
		return nil, err
	}
	raters, err := s.ratings.ListRatersByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	return &OwnerDashboard{Store: *store, Raters: raters}, nil
}
