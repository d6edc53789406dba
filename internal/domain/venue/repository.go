package venue

import (
	"context"

	"github.com/workcafe/workcafe-api/internal/models"
)

// Submission is the full multi-table payload of a new venue. It persists
// atomically: venue row, hours, one amenities row, one dietary row, photo
// rows (first one primary) and a 'create' history row.
type Submission struct {
	Venue       models.Venue
	Hours       []models.VenueHours
	Amenities   models.VenueAmenities
	Dietary     models.VenueDietaryOptions
	Photos      []models.VenuePhoto
	CategoryIDs []uint
	Reason      string
}

// Update carries already-patched rows. Hours == nil means "leave hours
// alone"; non-nil replaces them wholesale. Amenities/Dietary are upserted.
type Update struct {
	Venue     *models.Venue
	Hours     []models.VenueHours
	Amenities *models.VenueAmenities
	Dietary   *models.VenueDietaryOptions
	NewPhotos []models.VenuePhoto
	EditorID  uint
	Reason    string
}

// ListFilter narrows the approved-venue listing.
type ListFilter struct {
	City  string
	Wifi  *bool
	Power string
	Noise string

	// All three must be set for the radius filter to apply.
	Latitude  *float64
	Longitude *float64
	Distance  *float64

	Sort  string // rating | reviews | newest
	Page  int
	Limit int
}

// Summary is one listing row with its aggregates.
type Summary struct {
	models.Venue

	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`

	HasWifi      bool    `json:"has_wifi"`
	WifiSpeed    *int    `json:"wifi_speed,omitempty"`
	PowerOutlets string  `json:"power_outlets"`
	NoiseLevel   string  `json:"noise_level"`
	PriceRange   string  `json:"price_range"`
	PrimaryPhoto *string `json:"primary_photo"`

	SubmitterName string   `json:"submitted_by_name,omitempty"`
	DistanceKm    *float64 `json:"distance_km,omitempty"`
}

// Detail is the single-venue read model.
type Detail struct {
	models.Venue

	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`

	AmenitiesRow *models.VenueAmenities      `json:"amenities"`
	DietaryRow   *models.VenueDietaryOptions `json:"dietary"`
	HoursRows    []models.VenueHours         `json:"hours"`
	PhotoRows    []models.VenuePhoto         `json:"photos"`
	TopReviews   []models.Review             `json:"top_reviews"`
	CategoryRows []models.Category           `json:"categories"`
}

type Repository interface {
	// -------- Reads --------
	GetVenue(ctx context.Context, id uint) (*models.Venue, error)

	GetDetail(ctx context.Context, id uint, approvedOnly bool) (*Detail, error)

	GetAmenities(ctx context.Context, venueID uint) (*models.VenueAmenities, error)

	GetDietary(ctx context.Context, venueID uint) (*models.VenueDietaryOptions, error)

	ListApproved(ctx context.Context, f ListFilter) ([]Summary, int64, error)

	ListPending(ctx context.Context) ([]Summary, error)

	ListBySubmitter(ctx context.Context, userID uint) ([]Summary, error)

	IncrementViewCount(ctx context.Context, id uint) error

	// -------- Transactional writes --------
	CreateSubmission(ctx context.Context, sub *Submission) (uint, error)

	SaveUpdate(ctx context.Context, upd *Update) error

	SetModeration(ctx context.Context, id uint, status Status, reason string, adminID uint) error

	ClaimVenue(ctx context.Context, id uint, userID uint) error

	DeleteVenue(ctx context.Context, id uint, adminID uint, reason string) error

	// -------- Photos --------
	AddPhoto(ctx context.Context, photo *models.VenuePhoto) error
}
