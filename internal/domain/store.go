package domain

import "time"

// Store is a rateable storefront registered by an admin on behalf of an owner.
type Store struct {
	ID        string
	Name      string
	Email     string
	Address   string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StoreWithRating pairs a store with its rating aggregate and, when the
// lookup was performed for a specific caller, that caller's own rating.
type StoreWithRating struct {
	Store
	AverageRating float64
	RatingCount   int64
	UserRating    *int
}
