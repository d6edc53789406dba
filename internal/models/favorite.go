package models

import "time"

type Favorite struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"uniqueIndex:idx_favorite_user_venue" json:"user_id"`
	VenueID uint `gorm:"uniqueIndex:idx_favorite_user_venue" json:"venue_id"`

	CreatedAt time.Time `json:"created_at"`

	User  User  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Venue Venue `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
