package models

import "time"

// VenueHistory is the moderation audit trail. VenueID deliberately carries no
// foreign key: the 'delete' row must survive the cascading venue delete.
type VenueHistory struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	VenueID uint `gorm:"index" json:"venue_id"`

	ModifiedBy       uint   `json:"modified_by"`
	ModificationType string `gorm:"size:20;not null" json:"modification_type"`
	Reason           string `gorm:"size:255" json:"reason"`

	ModifiedAt time.Time `gorm:"autoCreateTime" json:"modified_at"`
}

const (
	HistoryCreate  = "create"
	HistoryUpdate  = "update"
	HistoryApprove = "approve"
	HistoryReject  = "reject"
	HistoryClaim   = "claim"
	HistoryDelete  = "delete"
)
