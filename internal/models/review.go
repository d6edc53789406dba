package models

import "time"

// Review holds one rating set per (venue, user); the unique index is the
// source of truth for the one-review rule.
type Review struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	VenueID uint `gorm:"uniqueIndex:idx_review_venue_user" json:"venue_id"`
	UserID  uint `gorm:"uniqueIndex:idx_review_venue_user" json:"user_id"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment,omitempty"`

	WifiRating    *int `json:"wifi_rating,omitempty"`
	PowerRating   *int `json:"power_rating,omitempty"`
	ComfortRating *int `json:"comfort_rating,omitempty"`
	NoiseRating   *int `json:"noise_rating,omitempty"`
	CoffeeRating  *int `json:"coffee_rating,omitempty"`
	FoodRating    *int `json:"food_rating,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Venue Venue `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	User  User  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
