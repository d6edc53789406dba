package handlers

import (
	"github.com/workcafe/workcafe-api/internal/timezone"
	ucvenue "github.com/workcafe/workcafe-api/internal/usecase/venue"
)

// Shared request shapes for the two write surfaces: admin-created cafes and
// user-submitted locations. Same payload, different initial status.

type VenueHoursRequest struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsClosed  bool   `json:"is_closed"`
}

type VenueAmenitiesRequest struct {
	HasWifi          bool   `json:"has_wifi"`
	WifiSpeed        *int   `json:"wifi_speed"`
	WifiPassword     string `json:"wifi_password"`
	WifiRestrictions string `json:"wifi_restrictions"`

	PowerOutlets   string `json:"power_outlets"`
	NoiseLevel     string `json:"noise_level"`
	SeatingComfort string `json:"seating_comfort"`

	TimeRestrictions     string `json:"time_restrictions"`
	PurchaseRequirements string `json:"purchase_requirements"`
	PriceRange           string `json:"price_range"`
	RestroomsAvailable   *bool  `json:"restrooms_available"`
	ParkingOptions       string `json:"parking_options"`
	SpecialFeatures      string `json:"special_features"`
}

type VenueDietaryRequest struct {
	HasVegan      bool   `json:"has_vegan"`
	HasVegetarian bool   `json:"has_vegetarian"`
	HasGlutenFree bool   `json:"has_gluten_free"`
	HasDairyFree  bool   `json:"has_dairy_free"`
	OtherOptions  string `json:"other_options"`
}

type VenuePhotoRequest struct {
	URL     string `json:"url" binding:"required"`
	Caption string `json:"caption"`
}

type VenueCreateRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`

	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state"`
	Country string `json:"country" binding:"required"`
	ZipCode string `json:"zip_code"`

	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`

	Phone    string `json:"phone"`
	Website  string `json:"website"`
	Email    string `json:"email"`
	Timezone string `json:"timezone"`

	OccupancyLimit int `json:"occupancy_limit"`

	Hours       []VenueHoursRequest   `json:"hours" binding:"dive"`
	Amenities   VenueAmenitiesRequest `json:"amenities"`
	Dietary     VenueDietaryRequest   `json:"dietary"`
	Photos      []VenuePhotoRequest   `json:"photos" binding:"dive"`
	CategoryIDs []uint                `json:"category_ids"`
}

func (r VenueCreateRequest) toInput(submitterID uint, autoApprove bool, defaultTZ string) ucvenue.SubmitVenueInput {
	tz := r.Timezone
	if !timezone.IsValid(tz) {
		tz = defaultTZ
	}

	in := ucvenue.SubmitVenueInput{
		Name:           r.Name,
		Description:    r.Description,
		Address:        r.Address,
		City:           r.City,
		State:          r.State,
		Country:        r.Country,
		ZipCode:        r.ZipCode,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		Phone:          r.Phone,
		Website:        r.Website,
		Email:          r.Email,
		Timezone:       tz,
		OccupancyLimit: r.OccupancyLimit,
		CategoryIDs:    r.CategoryIDs,
		SubmitterID:    submitterID,
		AutoApprove:    autoApprove,
		Amenities: ucvenue.AmenitiesInput{
			HasWifi:              r.Amenities.HasWifi,
			WifiSpeed:            r.Amenities.WifiSpeed,
			WifiPassword:         r.Amenities.WifiPassword,
			WifiRestrictions:     r.Amenities.WifiRestrictions,
			PowerOutlets:         r.Amenities.PowerOutlets,
			NoiseLevel:           r.Amenities.NoiseLevel,
			SeatingComfort:       r.Amenities.SeatingComfort,
			TimeRestrictions:     r.Amenities.TimeRestrictions,
			PurchaseRequirements: r.Amenities.PurchaseRequirements,
			PriceRange:           r.Amenities.PriceRange,
			RestroomsAvailable:   r.Amenities.RestroomsAvailable,
			ParkingOptions:       r.Amenities.ParkingOptions,
			SpecialFeatures:      r.Amenities.SpecialFeatures,
		},
		Dietary: ucvenue.DietaryInput{
			HasVegan:      r.Dietary.HasVegan,
			HasVegetarian: r.Dietary.HasVegetarian,
			HasGlutenFree: r.Dietary.HasGlutenFree,
			HasDairyFree:  r.Dietary.HasDairyFree,
			OtherOptions:  r.Dietary.OtherOptions,
		},
	}

	for _, h := range r.Hours {
		in.Hours = append(in.Hours, ucvenue.HoursInput(h))
	}
	for _, p := range r.Photos {
		in.Photos = append(in.Photos, ucvenue.PhotoInput{URL: p.URL, Caption: p.Caption})
	}

	return in
}

type VenueAmenitiesPatchRequest struct {
	HasWifi          *bool   `json:"has_wifi"`
	WifiSpeed        *int    `json:"wifi_speed"`
	WifiPassword     *string `json:"wifi_password"`
	WifiRestrictions *string `json:"wifi_restrictions"`

	PowerOutlets   *string `json:"power_outlets"`
	NoiseLevel     *string `json:"noise_level"`
	SeatingComfort *string `json:"seating_comfort"`

	TimeRestrictions     *string `json:"time_restrictions"`
	PurchaseRequirements *string `json:"purchase_requirements"`
	PriceRange           *string `json:"price_range"`
	RestroomsAvailable   *bool   `json:"restrooms_available"`
	ParkingOptions       *string `json:"parking_options"`
	SpecialFeatures      *string `json:"special_features"`
}

type VenueDietaryPatchRequest struct {
	HasVegan      *bool   `json:"has_vegan"`
	HasVegetarian *bool   `json:"has_vegetarian"`
	HasGlutenFree *bool   `json:"has_gluten_free"`
	HasDairyFree  *bool   `json:"has_dairy_free"`
	OtherOptions  *string `json:"other_options"`
}

type VenueUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`

	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Country *string `json:"country"`
	ZipCode *string `json:"zip_code"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	Phone    *string `json:"phone"`
	Website  *string `json:"website"`
	Email    *string `json:"email"`
	Timezone *string `json:"timezone"`

	OccupancyLimit *int `json:"occupancy_limit"`

	Hours     []VenueHoursRequest         `json:"hours"`
	Amenities *VenueAmenitiesPatchRequest `json:"amenities"`
	Dietary   *VenueDietaryPatchRequest   `json:"dietary"`
	Photos    []VenuePhotoRequest         `json:"photos"`

	UpdateReason string `json:"update_reason"`
}

func (r VenueUpdateRequest) toInput(venueID, editorID uint, isAdmin bool) ucvenue.UpdateVenueInput {
	in := ucvenue.UpdateVenueInput{
		VenueID:       venueID,
		EditorID:      editorID,
		EditorIsAdmin: isAdmin,

		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		City:        r.City,
		State:       r.State,
		Country:     r.Country,
		ZipCode:     r.ZipCode,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Phone:       r.Phone,
		Website:     r.Website,
		Email:       r.Email,
		Timezone:    r.Timezone,

		OccupancyLimit: r.OccupancyLimit,
		UpdateReason:   r.UpdateReason,
	}

	if r.Hours != nil {
		in.Hours = make([]ucvenue.HoursInput, 0, len(r.Hours))
		for _, h := range r.Hours {
			in.Hours = append(in.Hours, ucvenue.HoursInput(h))
		}
	}

	if r.Amenities != nil {
		p := ucvenue.AmenitiesPatch(*r.Amenities)
		in.Amenities = &p
	}
	if r.Dietary != nil {
		p := ucvenue.DietaryPatch(*r.Dietary)
		in.Dietary = &p
	}

	for _, p := range r.Photos {
		in.Photos = append(in.Photos, ucvenue.PhotoInput{URL: p.URL, Caption: p.Caption})
	}

	return in
}
