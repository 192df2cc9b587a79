package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/store-rating-service/internal/auth"
	"github.com/spec-kit/store-rating-service/internal/domain"
	"github.com/spec-kit/store-rating-service/internal/repository"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

// DashboardTotals backs the admin dashboard.
type DashboardTotals struct {
	Users   int64
	Stores  int64
	Ratings int64
}

// UserDetail is a user joined with their store's aggregate when the user
// owns one.
type UserDetail struct {
	User       domain.User
	OwnedStore *domain.StoreWithRating
}

// UserService covers the admin-facing account operations.
type UserService struct {
	users   repository.UserRepository
	stores  repository.StoreRepository
	ratings repository.RatingRepository
	hasher  *auth.Hasher
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, stores repository.StoreRepository, ratings repository.RatingRepository, hasher *auth.Hasher) *UserService {
	return &UserService{users: users, stores: stores, ratings: ratings, hasher: hasher}
}

// CreateUser registers an account with an explicit role (admin flow).
func (s *UserService) CreateUser(ctx context.Context, name, email, address, password string, role domain.Role) (*domain.User, error) {
	if !role.IsValid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Address:      address,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers applies the admin filter.
func (s *UserService) ListUsers(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	return s.users.ListWithFilter(ctx, filter)
}

// GetUser loads one account; store owners additionally carry their
// store's rating aggregate.
func (s *UserService) GetUser(ctx context.Context, id string) (*UserDetail, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}

	detail := &UserDetail{User: *user}
	if user.Role == domain.RoleStoreOwner {
		store, err := s.stores.GetByOwnerID(ctx, user.ID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		detail.OwnedStore = store
	}
	return detail, nil
}

// DashboardTotals counts users, stores, and ratings.
func (s *UserService) DashboardTotals(ctx context.Context) (*DashboardTotals, error) {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	storeCount, err := s.stores.Count(ctx)
	if err != nil {
		return nil, err
	}
	ratingCount, err := s.ratings.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardTotals{Users: userCount, Stores: storeCount, Ratings: ratingCount}, nil
}
