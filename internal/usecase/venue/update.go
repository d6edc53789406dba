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

// Every field is optional: nil means "keep the stored value". An explicit
// empty string clears a field; an omitted one does not.
type AmenitiesPatch struct {
	HasWifi          *bool
	WifiSpeed        *int
	WifiPassword     *string
	WifiRestrictions *string

	PowerOutlets   *string
	NoiseLevel     *string
	SeatingComfort *string

	TimeRestrictions     *string
	PurchaseRequirements *string
	PriceRange           *string
	RestroomsAvailable   *bool
	ParkingOptions       *string
	SpecialFeatures      *string
}

type DietaryPatch struct {
	HasVegan      *bool
	HasVegetarian *bool
	HasGlutenFree *bool
	HasDairyFree  *bool
	OtherOptions  *string
}

type UpdateVenueInput struct {
	VenueID       uint
	EditorID      uint
	EditorIsAdmin bool

	Name        *string
	Description *string
	Address     *string
	City        *string
	State       *string
	Country     *string
	ZipCode     *string
	Latitude    *float64
	Longitude   *float64
	Phone       *string
	Website     *string
	Email       *string
	Timezone    *string

	OccupancyLimit *int

	// nil leaves hours untouched; non-nil replaces them wholesale.
	Hours []HoursInput

	Amenities *AmenitiesPatch
	Dietary   *DietaryPatch

	// Appended, never replacing existing photos.
	Photos []PhotoInput

	UpdateReason string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateVenue struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateVenue(repo domain.Repository, audit *audit.Dispatcher) *UpdateVenue {
	return &UpdateVenue{repo: repo, audit: audit}
}

func (uc *UpdateVenue) Execute(
	ctx context.Context,
	in UpdateVenueInput,
) error {

	v, err := uc.repo.GetVenue(ctx, in.VenueID)
	if err != nil {
		return err
	}

	if err := domain.CanEdit(v, in.EditorID, in.EditorIsAdmin); err != nil {
		return err
	}

	applyString(&v.Name, in.Name)
	applyString(&v.Description, in.Description)
	applyString(&v.Address, in.Address)
	applyString(&v.City, in.City)
	applyString(&v.State, in.State)
	applyString(&v.Country, in.Country)
	applyString(&v.ZipCode, in.ZipCode)
	applyString(&v.Phone, in.Phone)
	applyString(&v.Website, in.Website)
	applyString(&v.Email, in.Email)
	applyString(&v.Timezone, in.Timezone)
	if in.Latitude != nil {
		v.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		v.Longitude = *in.Longitude
	}
	if in.OccupancyLimit != nil {
		v.OccupancyLimit = *in.OccupancyLimit
	}

	upd := &domain.Update{
		Venue:    v,
		EditorID: in.EditorID,
		Reason:   defaultStr(in.UpdateReason, "Information updated"),
	}

	if in.Hours != nil {
		upd.Hours = make([]models.VenueHours, 0, len(in.Hours))
		for _, h := range in.Hours {
			upd.Hours = append(upd.Hours, models.VenueHours{
				DayOfWeek: h.DayOfWeek,
				OpenTime:  h.OpenTime,
				CloseTime: h.CloseTime,
				IsClosed:  h.IsClosed,
			})
		}
	}

	if in.Amenities != nil {
		amenities, err := uc.patchedAmenities(ctx, in)
		if err != nil {
			return err
		}
		upd.Amenities = amenities
	}

	if in.Dietary != nil {
		dietary, err := uc.patchedDietary(ctx, in)
		if err != nil {
			return err
		}
		upd.Dietary = dietary
	}

	for _, p := range in.Photos {
		upd.NewPhotos = append(upd.NewPhotos, models.VenuePhoto{
			PhotoURL:   p.URL,
			Caption:    p.Caption,
			UploadedBy: in.EditorID,
		})
	}

	if err := uc.repo.SaveUpdate(ctx, upd); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.EditorID,
		Action:   "location_updated",
		Entity:   "venue",
		EntityID: &in.VenueID,
	})

	return nil
}

func (uc *UpdateVenue) patchedAmenities(
	ctx context.Context,
	in UpdateVenueInput,
) (*models.VenueAmenities, error) {

	existing, err := uc.repo.GetAmenities(ctx, in.VenueID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		existing = &models.VenueAmenities{
			VenueID:            in.VenueID,
			PowerOutlets:       "none",
			NoiseLevel:         "moderate",
			SeatingComfort:     "fair",
			PriceRange:         "$$",
			RestroomsAvailable: true,
		}
	}

	p := in.Amenities
	applyBool(&existing.HasWifi, p.HasWifi)
	if p.WifiSpeed != nil {
		existing.WifiSpeed = p.WifiSpeed
	}
	applyString(&existing.WifiPassword, p.WifiPassword)
	applyString(&existing.WifiRestrictions, p.WifiRestrictions)
	applyString(&existing.PowerOutlets, p.PowerOutlets)
	applyString(&existing.NoiseLevel, p.NoiseLevel)
	applyString(&existing.SeatingComfort, p.SeatingComfort)
	applyString(&existing.TimeRestrictions, p.TimeRestrictions)
	applyString(&existing.PurchaseRequirements, p.PurchaseRequirements)
	applyString(&existing.PriceRange, p.PriceRange)
	applyBool(&existing.RestroomsAvailable, p.RestroomsAvailable)
	applyString(&existing.ParkingOptions, p.ParkingOptions)
	applyString(&existing.SpecialFeatures, p.SpecialFeatures)
	existing.UpdatedBy = in.EditorID

	return existing, nil
}

func (uc *UpdateVenue) patchedDietary(
	ctx context.Context,
	in UpdateVenueInput,
) (*models.VenueDietaryOptions, error) {

	existing, err := uc.repo.GetDietary(ctx, in.VenueID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		existing = &models.VenueDietaryOptions{VenueID: in.VenueID}
	}

	p := in.Dietary
	applyBool(&existing.HasVegan, p.HasVegan)
	applyBool(&existing.HasVegetarian, p.HasVegetarian)
	applyBool(&existing.HasGlutenFree, p.HasGlutenFree)
	applyBool(&existing.HasDairyFree, p.HasDairyFree)
	applyString(&existing.OtherOptions, p.OtherOptions)

	return existing, nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func applyBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
