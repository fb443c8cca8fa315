package domain

import "time"

// Rating is a single user's score for an item; one row per (item, user)
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemID    uint      `gorm:"not null;uniqueIndex:idx_ratings_item_user" json:"item_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_ratings_item_user" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingView is a rating joined with the rater's username
type RatingView struct {
	ID       uint   `json:"id"`
	ItemID   uint   `json:"item_id"`
	UserID   uint   `json:"user_id"`
	Rating   int    `json:"rating"`
	Username string `json:"username"`
}

// RatingEntry is one user's rating inside a summary
type RatingEntry struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Rating   int    `json:"rating"`
}

// RatingSummary aggregates the ratings of one item
type RatingSummary struct {
	Average float64       `json:"average"`
	Count   int           `json:"count"`
	Ratings []RatingEntry `json:"ratings"`
}
