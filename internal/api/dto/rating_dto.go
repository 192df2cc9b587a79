package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/spec-kit/store-rating-service/internal/domain"
)

// SubmitRatingRequest payload for rating a store. Resubmitting replaces
// the caller's previous value.
type SubmitRatingRequest struct {
	Value int `json:"value"`
}

// Validate bounds the star value.
func (r SubmitRatingRequest) Validate() error {
	return wrapValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Value, validation.Required, validation.Min(domain.RatingMin), validation.Max(domain.RatingMax)),
	))
}

// RatingResponse echoes a stored rating.
type RatingResponse struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"store_id"`
	Value     int       `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RaterResponse is one row of the owner dashboard's rater list.
type RaterResponse struct {
	UserID  string    `json:"user_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Value   int       `json:"value"`
	RatedAt time.Time `json:"rated_at"`
}

// NewRaterResponses maps rater entries.
func NewRaterResponses(entries []domain.RaterEntry) []RaterResponse {
	out := make([]RaterResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, RaterResponse{
			UserID:  entry.UserID,
			Name:    entry.Name,
			Email:   entry.Email,
			Value:   entry.Value,
			RatedAt: entry.RatedAt,
		})
	}
	return out
}
