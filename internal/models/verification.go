package models

import "time"

// Verification is an append-only crowd attestation of a venue's amenity
// claims. Many per venue, never updated.
type Verification struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	VenueID uint `gorm:"index" json:"venue_id"`
	UserID  uint `json:"user_id"`

	VerifiedWifi    bool `gorm:"default:false" json:"verified_wifi"`
	VerifiedPower   bool `gorm:"default:false" json:"verified_power"`
	VerifiedNoise   bool `gorm:"default:false" json:"verified_noise"`
	VerifiedSeating bool `gorm:"default:false" json:"verified_seating"`
	VerifiedHours   bool `gorm:"default:false" json:"verified_hours"`

	Notes string `gorm:"size:255" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	Venue Venue `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
