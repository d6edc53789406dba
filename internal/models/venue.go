package models

import "time"

// Venue is the canonical cafe/location entity. Both the /api/cafes and
// /api/locations surfaces are served from this one family.
type Venue struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Address string `gorm:"size:255;not null" json:"address"`
	City    string `gorm:"size:100;index;not null" json:"city"`
	State   string `gorm:"size:100" json:"state"`
	Country string `gorm:"size:100;not null" json:"country"`
	ZipCode string `gorm:"size:20" json:"zip_code"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	Phone    string `gorm:"size:20" json:"phone"`
	Website  string `gorm:"size:255" json:"website"`
	Email    string `gorm:"size:100" json:"email"`
	Timezone string `gorm:"size:50" json:"timezone"`

	OccupancyLimit int `gorm:"default:0" json:"occupancy_limit"`

	Status          string `gorm:"size:20;index;default:'pending'" json:"status"`
	RejectionReason string `gorm:"size:255" json:"rejection_reason,omitempty"`

	SubmittedBy uint       `gorm:"index" json:"submitted_by"`
	IsClaimed   bool       `gorm:"default:false" json:"is_claimed"`
	ClaimedBy   *uint      `json:"claimed_by,omitempty"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty"`

	ViewCount int `gorm:"default:0" json:"view_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Hours      []VenueHours         `gorm:"constraint:OnDelete:CASCADE" json:"hours,omitempty"`
	Amenities  *VenueAmenities      `gorm:"constraint:OnDelete:CASCADE" json:"amenities,omitempty"`
	Dietary    *VenueDietaryOptions `gorm:"constraint:OnDelete:CASCADE" json:"dietary,omitempty"`
	Photos     []VenuePhoto         `gorm:"constraint:OnDelete:CASCADE" json:"photos,omitempty"`
	Categories []Category           `gorm:"many2many:venue_categories;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
}

type VenueHours struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	VenueID uint `gorm:"uniqueIndex:idx_venue_weekday" json:"venue_id"`

	DayOfWeek int    `gorm:"uniqueIndex:idx_venue_weekday" json:"day_of_week"`
	OpenTime  string `gorm:"size:5" json:"open_time"`
	CloseTime string `gorm:"size:5" json:"close_time"`
	IsClosed  bool   `gorm:"default:false" json:"is_closed"`
}

type VenueAmenities struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	VenueID uint `gorm:"uniqueIndex" json:"venue_id"`

	HasWifi          bool   `gorm:"default:false" json:"has_wifi"`
	WifiSpeed        *int   `json:"wifi_speed,omitempty"`
	WifiPassword     string `gorm:"size:100" json:"wifi_password,omitempty"`
	WifiRestrictions string `gorm:"size:255" json:"wifi_restrictions,omitempty"`

	PowerOutlets   string `gorm:"size:20;default:'none'" json:"power_outlets"`
	NoiseLevel     string `gorm:"size:20;default:'moderate'" json:"noise_level"`
	SeatingComfort string `gorm:"size:20;default:'fair'" json:"seating_comfort"`

	TimeRestrictions     string `gorm:"size:255" json:"time_restrictions,omitempty"`
	PurchaseRequirements string `gorm:"size:255" json:"purchase_requirements,omitempty"`
	PriceRange           string `gorm:"size:10;default:'$$'" json:"price_range"`
	RestroomsAvailable   bool   `gorm:"default:true" json:"restrooms_available"`
	ParkingOptions       string `gorm:"size:255" json:"parking_options,omitempty"`
	SpecialFeatures      string `gorm:"type:text" json:"special_features,omitempty"`

	UpdatedBy   uint      `json:"updated_by"`
	LastUpdated time.Time `gorm:"autoUpdateTime" json:"last_updated"`
}

// NoiseLevels orders the noise enum from quietest to loudest. The numeric
// maxNoise search filter selects a prefix of this list.
var NoiseLevels = []string{"silent", "quiet", "moderate", "lively", "loud"}

type VenueDietaryOptions struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	VenueID uint `gorm:"uniqueIndex" json:"venue_id"`

	HasVegan      bool   `gorm:"default:false" json:"has_vegan"`
	HasVegetarian bool   `gorm:"default:false" json:"has_vegetarian"`
	HasGlutenFree bool   `gorm:"default:false" json:"has_gluten_free"`
	HasDairyFree  bool   `gorm:"default:false" json:"has_dairy_free"`
	OtherOptions  string `gorm:"size:255" json:"other_options,omitempty"`
}

type VenuePhoto struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	VenueID uint `gorm:"index" json:"venue_id"`

	PhotoURL   string `gorm:"size:255;not null" json:"photo_url"`
	Caption    string `gorm:"size:255" json:"caption,omitempty"`
	IsPrimary  bool   `gorm:"default:false" json:"is_primary"`
	UploadedBy uint   `json:"uploaded_by"`

	CreatedAt time.Time `json:"created_at"`
}

type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:255" json:"description,omitempty"`
}
