package models

import "time"

// CheckIn is an ephemeral presence record. The partial unique index keeps at
// most one active check-in per user system-wide.
type CheckIn struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	VenueID uint `gorm:"index" json:"venue_id"`
	UserID  uint `gorm:"index:idx_checkin_active,unique,where:check_out_time IS NULL" json:"user_id"`

	CheckInTime  time.Time  `gorm:"autoCreateTime" json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`

	Status          string `gorm:"size:20;default:'active'" json:"status"`
	OccupancyReport *int   `json:"occupancy_report,omitempty"`

	Venue Venue `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	User  User  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

const (
	CheckInActive    = "active"
	CheckInCompleted = "completed"
)
