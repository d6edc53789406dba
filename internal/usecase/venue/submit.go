package venue

import (
	"context"

	"github.com/workcafe/workcafe-api/internal/audit"
	domain "github.com/workcafe/workcafe-api/internal/domain/venue"
	"github.com/workcafe/workcafe-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type HoursInput struct {
	DayOfWeek int
	OpenTime  string
	CloseTime string
	IsClosed  bool
}

type AmenitiesInput struct {
	HasWifi          bool
	WifiSpeed        *int
	WifiPassword     string
	WifiRestrictions string

	PowerOutlets   string
	NoiseLevel     string
	SeatingComfort string

	TimeRestrictions     string
	PurchaseRequirements string
	PriceRange           string
	RestroomsAvailable   *bool
	ParkingOptions       string
	SpecialFeatures      string
}

type DietaryInput struct {
	HasVegan      bool
	HasVegetarian bool
	HasGlutenFree bool
	HasDairyFree  bool
	OtherOptions  string
}

type PhotoInput struct {
	URL     string
	Caption string
}

type SubmitVenueInput struct {
	Name        string
	Description string
	Address     string
	City        string
	State       string
	Country     string
	ZipCode     string

	Latitude  float64
	Longitude float64

	Phone    string
	Website  string
	Email    string
	Timezone string

	OccupancyLimit int

	Hours       []HoursInput
	Amenities   AmenitiesInput
	Dietary     DietaryInput
	Photos      []PhotoInput
	CategoryIDs []uint

	SubmitterID uint

	// Admin-created venues (cafes surface) skip the moderation queue.
	AutoApprove bool
}

// ======================================================
// USE CASE
// ======================================================

type SubmitVenue struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSubmitVenue(repo domain.Repository, audit *audit.Dispatcher) *SubmitVenue {
	return &SubmitVenue{repo: repo, audit: audit}
}

func (uc *SubmitVenue) Execute(
	ctx context.Context,
	in SubmitVenueInput,
) (uint, error) {

	status := domain.InitialStatus()
	if in.AutoApprove {
		status = domain.StatusApproved
	}

	sub := &domain.Submission{
		Venue: models.Venue{
			Name:           in.Name,
			Description:    in.Description,
			Address:        in.Address,
			City:           in.City,
			State:          in.State,
			Country:        in.Country,
			ZipCode:        in.ZipCode,
			Latitude:       in.Latitude,
			Longitude:      in.Longitude,
			Phone:          in.Phone,
			Website:        in.Website,
			Email:          in.Email,
			Timezone:       in.Timezone,
			OccupancyLimit: in.OccupancyLimit,
			Status:         string(status),
			SubmittedBy:    in.SubmitterID,
		},
		Amenities:   buildAmenities(in.Amenities, in.SubmitterID),
		Dietary:     buildDietary(in.Dietary),
		CategoryIDs: in.CategoryIDs,
		Reason:      "Initial submission",
	}

	for _, h := range in.Hours {
		sub.Hours = append(sub.Hours, models.VenueHours{
			DayOfWeek: h.DayOfWeek,
			OpenTime:  h.OpenTime,
			CloseTime: h.CloseTime,
			IsClosed:  h.IsClosed,
		})
	}

	for _, p := range in.Photos {
		sub.Photos = append(sub.Photos, models.VenuePhoto{
			PhotoURL:   p.URL,
			Caption:    p.Caption,
			UploadedBy: in.SubmitterID,
		})
	}

	id, err := uc.repo.CreateSubmission(ctx, sub)
	if err != nil {
		return 0, err
	}

	action := "location_submitted"
	if in.AutoApprove {
		action = "cafe_created"
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.SubmitterID,
		Action:   action,
		Entity:   "venue",
		EntityID: &id,
	})

	return id, nil
}

func buildAmenities(in AmenitiesInput, userID uint) models.VenueAmenities {
	a := models.VenueAmenities{
		HasWifi:              in.HasWifi,
		WifiSpeed:            in.WifiSpeed,
		WifiPassword:         in.WifiPassword,
		WifiRestrictions:     in.WifiRestrictions,
		PowerOutlets:         defaultStr(in.PowerOutlets, "none"),
		NoiseLevel:           defaultStr(in.NoiseLevel, "moderate"),
		SeatingComfort:       defaultStr(in.SeatingComfort, "fair"),
		TimeRestrictions:     in.TimeRestrictions,
		PurchaseRequirements: in.PurchaseRequirements,
		PriceRange:           defaultStr(in.PriceRange, "$$"),
		RestroomsAvailable:   true,
		ParkingOptions:       in.ParkingOptions,
		SpecialFeatures:      in.SpecialFeatures,
		UpdatedBy:            userID,
	}
	if in.RestroomsAvailable != nil {
		a.RestroomsAvailable = *in.RestroomsAvailable
	}
	return a
}

func buildDietary(in DietaryInput) models.VenueDietaryOptions {
	return models.VenueDietaryOptions{
		HasVegan:      in.HasVegan,
		HasVegetarian: in.HasVegetarian,
		HasGlutenFree: in.HasGlutenFree,
		HasDairyFree:  in.HasDairyFree,
		OtherOptions:  in.OtherOptions,
	}
}

func defaultStr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
