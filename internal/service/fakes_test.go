package service_test

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/store-rating-service/internal/domain"
	"github.com/spec-kit/store-rating-service/internal/repository"
)

// memStoreBackend backs both the store and rating repository interfaces
// so rating aggregates stay consistent across the two fakes.
type memStoreBackend struct {
	mu      sync.Mutex
	nextID  int
	stores  map[string]*domain.Store
	ratings map[string]*domain.Rating // keyed user|store
	users   *memUserRepo
}

func newMemStoreBackend(users *memUserRepo) *memStoreBackend {
	return &memStoreBackend{
		stores:  map[string]*domain.Store{},
		ratings: map[string]*domain.Rating{},
		users:   users,
	}
}

func ratingKey(userID, storeID string) string {
	return userID + "|" + storeID
}

func (b *memStoreBackend) Create(_ context.Context, store *domain.Store) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	store.ID = "store-" + strconv.Itoa(b.nextID)
	store.CreatedAt = time.Now()
	store.UpdatedAt = store.CreatedAt
	copied := *store
	b.stores[store.ID] = &copied
	return nil
}

func (b *memStoreBackend) Update(_ context.Context, store *domain.Store) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.stores[store.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *store
	b.stores[store.ID] = &copied
	return nil
}

func (b *memStoreBackend) GetByID(_ context.Context, id string, forUserID *string) (*domain.StoreWithRating, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	store, ok := b.stores[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return b.withRating(store, forUserID), nil
}

func (b *memStoreBackend) GetByOwnerID(_ context.Context, ownerID string) (*domain.StoreWithRating, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, store := range b.stores {
		if store.OwnerID == ownerID {
			return b.withRating(store, nil), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (b *memStoreBackend) ListWithFilter(_ context.Context, filter repository.StoreFilter) ([]domain.StoreWithRating, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []domain.StoreWithRating
	for _, store := range b.stores {
		if filter.Name != nil && !strings.Contains(strings.ToLower(store.Name), strings.ToLower(*filter.Name)) {
			continue
		}
		out = append(out, *b.withRating(store, filter.ForUserID))
	}
	return out, nil
}

func (b *memStoreBackend) Count(_ context.Context) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return int64(len(b.stores)), nil
}

// withRating expects b.mu held.
func (b *memStoreBackend) withRating(store *domain.Store, forUserID *string) *domain.StoreWithRating {
	rated := &domain.StoreWithRating{Store: *store}
	var sum int
	for _, rating := range b.ratings {
		if rating.StoreID != store.ID {
			continue
		}
		sum += rating.Value
		rated.RatingCount++
		if forUserID != nil && rating.UserID == *forUserID {
			value := rating.Value
			rated.UserRating = &value
		}
	}
	if rated.RatingCount > 0 {
		rated.AverageRating = float64(sum) / float64(rated.RatingCount)
	}
	return rated
}

type memRatingRepo struct {
	backend *memStoreBackend
}

func (r *memRatingRepo) Upsert(_ context.Context, rating *domain.Rating) error {
	b := r.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	key := ratingKey(rating.UserID, rating.StoreID)
	now := time.Now()
	if existing, ok := b.ratings[key]; ok {
		existing.Value = rating.Value
		existing.UpdatedAt = now
		*rating = *existing
		return nil
	}
	b.nextID++
	rating.ID = "rating-" + strconv.Itoa(b.nextID)
	rating.CreatedAt = now
	rating.UpdatedAt = now
	copied := *rating
	b.ratings[key] = &copied
	return nil
}

func (r *memRatingRepo) GetByUserAndStore(_ context.Context, userID, storeID string) (*domain.Rating, error) {
	b := r.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	rating, ok := b.ratings[ratingKey(userID, storeID)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *rating
	return &copied, nil
}

func (r *memRatingRepo) ListRatersByStore(_ context.Context, storeID string) ([]domain.RaterEntry, error) {
	b := r.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []domain.RaterEntry
	for _, rating := range b.ratings {
		if rating.StoreID != storeID {
			continue
		}
		entry := domain.RaterEntry{UserID: rating.UserID, Value: rating.Value, RatedAt: rating.UpdatedAt}
		if b.users != nil {
			if user, err := b.users.GetByID(context.Background(), rating.UserID); err == nil {
				entry.Name = user.Name
				entry.Email = user.Email
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

func (r *memRatingRepo) Count(_ context.Context) (int64, error) {
	b := r.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	return int64(len(b.ratings)), nil
}
