package domain

import "time"

// RatingMin and RatingMax bound the accepted star values.
const (
	RatingMin = 1
	RatingMax = 5
)

// Rating is a single user's 1-5 star score for a store. A user holds at
// most one rating per store; resubmission updates the existing row.
type Rating struct {
	ID        string
	UserID    string
	StoreID   string
	Value     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RaterEntry is a rating joined with the rater's public profile, as shown
// on the store-owner dashboard.
type RaterEntry struct {
	UserID  string
	Name    string
	Email   string
	Value   int
	RatedAt time.Time
}
