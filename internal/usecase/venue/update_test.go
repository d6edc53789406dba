package venue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/workcafe/workcafe-api/internal/domain/venue"
	"github.com/workcafe/workcafe-api/internal/httperr"
	"github.com/workcafe/workcafe-api/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func TestUpdateVenueCoalescesOmittedFields(t *testing.T) {
	repo := newFakeRepo()
	id := seedVenue(repo, domain.StatusApproved)
	repo.venues[id].Description = "original description"
	repo.venues[id].City = "Lisbon"

	uc := NewUpdateVenue(repo, nil)
	err := uc.Execute(context.Background(), UpdateVenueInput{
		VenueID:  id,
		EditorID: 5,
		Name:     strPtr("Renamed"),
	})
	require.NoError(t, err)

	v := repo.venues[id]
	assert.Equal(t, "Renamed", v.Name)
	// Omitted fields keep their stored values.
	assert.Equal(t, "original description", v.Description)
	assert.Equal(t, "Lisbon", v.City)
}

func TestUpdateVenueExplicitEmptyClears(t *testing.T) {
	repo := newFakeRepo()
	id := seedVenue(repo, domain.StatusApproved)
	repo.venues[id].Description = "to be removed"

	uc := NewUpdateVenue(repo, nil)
	err := uc.Execute(context.Background(), UpdateVenueInput{
		VenueID:     id,
		EditorID:    5,
		Description: strPtr(""),
	})
	require.NoError(t, err)

	assert.Equal(t, "", repo.venues[id].Description)
}

func TestUpdateVenueNonOwnerRejected(t *testing.T) {
	repo := newFakeRepo()
	id := seedVenue(repo, domain.StatusApproved) // submitted by 5

	uc := NewUpdateVenue(repo, nil)
	err := uc.Execute(context.Background(), UpdateVenueInput{
		VenueID:  id,
		EditorID: 77,
		Name:     strPtr("Hijacked"),
	})

	assert.True(t, httperr.IsBusiness(err, domain.CodeNotOwner))
	assert.Equal(t, "Seeded", repo.venues[id].Name)
}

func TestUpdateVenueAdminBypassesOwnership(t *testing.T) {
	repo := newFakeRepo()
	id := seedVenue(repo, domain.StatusApproved)

	uc := NewUpdateVenue(repo, nil)
	err := uc.Execute(context.Background(), UpdateVenueInput{
		VenueID:       id,
		EditorID:      77,
		EditorIsAdmin: true,
		Name:          strPtr("Fixed name"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Fixed name", repo.venues[id].Name)
}

func TestUpdateVenueAmenitiesPatch(t *testing.T) {
	repo := newFakeRepo()
	id := seedVenue(repo, domain.StatusApproved)
	repo.amenities[id] = &models.VenueAmenities{
		VenueID:      id,
		HasWifi:      true,
		WifiSpeed:    intPtr(50),
		NoiseLevel:   "quiet",
		PowerOutlets: "some",
		PriceRange:   "$",
	}

	uc := NewUpdateVenue(repo, nil)
	err := uc.Execute(context.Background(), UpdateVenueInput{
		VenueID:  id,
		EditorID: 5,
		Amenities: &AmenitiesPatch{
			WifiSpeed:  intPtr(200),
			NoiseLevel: strPtr("moderate"),
		},
	})
	require.NoError(t, err)

	a := repo.amenities[id]
	require.NotNil(t, a.WifiSpeed)
	assert.Equal(t, 200, *a.WifiSpeed)
	assert.Equal(t, "moderate", a.NoiseLevel)
	// Untouched fields survive.
	assert.True(t, a.HasWifi)
	assert.Equal(t, "some", a.PowerOutlets)
	assert.Equal(t, "$", a.PriceRange)
	assert.Equal(t, uint(5), a.UpdatedBy)
}

func TestUpdateVenueAmenitiesCreatedWhenMissing(t *testing.T) {
	repo := newFakeRepo()
	id := seedVenue(repo, domain.StatusApproved)

	uc := NewUpdateVenue(repo, nil)
	err := uc.Execute(context.Background(), UpdateVenueInput{
		VenueID:  id,
		EditorID: 5,
		Amenities: &AmenitiesPatch{
			HasWifi: boolPtr(true),
		},
	})
	require.NoError(t, err)

	a := repo.amenities[id]
	require.NotNil(t, a)
	assert.True(t, a.HasWifi)
	// Schema defaults fill the rest.
	assert.Equal(t, "none", a.PowerOutlets)
	assert.Equal(t, "moderate", a.NoiseLevel)
	assert.True(t, a.RestroomsAvailable)
}

func TestUpdateVenueHoursSemantics(t *testing.T) {
	repo := newFakeRepo()
	id := seedVenue(repo, domain.StatusApproved)

	uc := NewUpdateVenue(repo, nil)

	// Omitted hours leave them untouched.
	err := uc.Execute(context.Background(), UpdateVenueInput{
		VenueID:  id,
		EditorID: 5,
		Name:     strPtr("No hours change"),
	})
	require.NoError(t, err)
	assert.Nil(t, repo.lastUpdate.Hours)

	// An empty slice wipes them.
	err = uc.Execute(context.Background(), UpdateVenueInput{
		VenueID:  id,
		EditorID: 5,
		Hours:    []HoursInput{},
	})
	require.NoError(t, err)
	require.NotNil(t, repo.lastUpdate.Hours)
	assert.Empty(t, repo.lastUpdate.Hours)

	// A populated slice replaces them wholesale.
	err = uc.Execute(context.Background(), UpdateVenueInput{
		VenueID:  id,
		EditorID: 5,
		Hours: []HoursInput{
			{DayOfWeek: 6, OpenTime: "10:00", CloseTime: "16:00"},
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.lastUpdate.Hours, 1)
	assert.Equal(t, 6, repo.lastUpdate.Hours[0].DayOfWeek)
}

func TestUpdateVenueDefaultReason(t *testing.T) {
	repo := newFakeRepo()
	id := seedVenue(repo, domain.StatusApproved)

	uc := NewUpdateVenue(repo, nil)
	require.NoError(t, uc.Execute(context.Background(), UpdateVenueInput{
		VenueID:  id,
		EditorID: 5,
		Name:     strPtr("x"),
	}))

	require.Len(t, repo.history, 1)
	assert.Equal(t, "Information updated", repo.history[0].Reason)
}
