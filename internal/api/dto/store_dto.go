package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/spec-kit/store-rating-service/internal/domain"
)

// CreateStoreRequest payload for admin store registration.
type CreateStoreRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	OwnerID string `json:"owner_id"`
}

// Validate checks store fields; owner existence/role is a service concern.
func (r CreateStoreRequest) Validate() error {
	return wrapValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, nameRule),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Address, validation.Required, addressRule),
		validation.Field(&r.OwnerID, validation.Required, is.UUIDv4),
	))
}

// StoreResponse is the public store view, including the rating aggregate
// and the caller's own rating when one exists.
type StoreResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	OwnerID       string  `json:"owner_id"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int64   `json:"rating_count"`
	UserRating    *int    `json:"user_rating,omitempty"`
}

// NewStoreResponse maps a rated store.
func NewStoreResponse(store *domain.StoreWithRating) StoreResponse {
	return StoreResponse{
		ID:            store.ID,
		Name:          store.Name,
		Email:         store.Email,
		Address:       store.Address,
		OwnerID:       store.OwnerID,
		AverageRating: store.AverageRating,
		RatingCount:   store.RatingCount,
		UserRating:    store.UserRating,
	}
}
