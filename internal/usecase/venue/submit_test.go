package venue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/workcafe/workcafe-api/internal/domain/venue"
)

func TestSubmitVenueDefaults(t *testing.T) {
	repo := newFakeRepo()
	uc := NewSubmitVenue(repo, nil)

	id, err := uc.Execute(context.Background(), SubmitVenueInput{
		Name:        "Quiet Corner",
		Address:     "12 Oak St",
		City:        "Lisbon",
		Country:     "PT",
		Latitude:    38.72,
		Longitude:   -9.14,
		SubmitterID: 5,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	v := repo.venues[id]
	assert.Equal(t, string(domain.StatusPending), v.Status)
	assert.Equal(t, uint(5), v.SubmittedBy)

	a := repo.amenities[id]
	assert.Equal(t, "none", a.PowerOutlets)
	assert.Equal(t, "moderate", a.NoiseLevel)
	assert.Equal(t, "fair", a.SeatingComfort)
	assert.Equal(t, "$$", a.PriceRange)
	assert.True(t, a.RestroomsAvailable)

	require.Len(t, repo.history, 1)
	assert.Equal(t, "create", repo.history[0].ModificationType)
	assert.Equal(t, "Initial submission", repo.history[0].Reason)
}

func TestSubmitVenueAutoApprove(t *testing.T) {
	repo := newFakeRepo()
	uc := NewSubmitVenue(repo, nil)

	id, err := uc.Execute(context.Background(), SubmitVenueInput{
		Name:        "Admin Cafe",
		Address:     "1 Main St",
		City:        "Porto",
		Country:     "PT",
		SubmitterID: 1,
		AutoApprove: true,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusApproved), repo.venues[id].Status)
}

func TestSubmitVenueExplicitAmenities(t *testing.T) {
	repo := newFakeRepo()
	uc := NewSubmitVenue(repo, nil)

	speed := 120
	noRestrooms := false
	id, err := uc.Execute(context.Background(), SubmitVenueInput{
		Name:        "Wired",
		Address:     "9 Fiber Ave",
		City:        "Berlin",
		Country:     "DE",
		SubmitterID: 2,
		Amenities: AmenitiesInput{
			HasWifi:            true,
			WifiSpeed:          &speed,
			PowerOutlets:       "every_table",
			NoiseLevel:         "quiet",
			RestroomsAvailable: &noRestrooms,
		},
		Hours: []HoursInput{
			{DayOfWeek: 1, OpenTime: "08:00", CloseTime: "18:00"},
		},
		Photos: []PhotoInput{
			{URL: "https://cdn.example.com/a.webp", Caption: "front"},
		},
	})
	require.NoError(t, err)

	a := repo.amenities[id]
	assert.True(t, a.HasWifi)
	require.NotNil(t, a.WifiSpeed)
	assert.Equal(t, 120, *a.WifiSpeed)
	assert.Equal(t, "every_table", a.PowerOutlets)
	assert.Equal(t, "quiet", a.NoiseLevel)
	assert.False(t, a.RestroomsAvailable)

	require.NotNil(t, repo.lastSubmission)
	require.Len(t, repo.lastSubmission.Hours, 1)
	assert.Equal(t, "08:00", repo.lastSubmission.Hours[0].OpenTime)
	require.Len(t, repo.lastSubmission.Photos, 1)
	assert.Equal(t, uint(2), repo.lastSubmission.Photos[0].UploadedBy)
}

func TestSubmitVenuePropagatesFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.failCreate = errors.New("tx aborted")
	uc := NewSubmitVenue(repo, nil)

	_, err := uc.Execute(context.Background(), SubmitVenueInput{
		Name:        "Doomed",
		SubmitterID: 3,
	})
	assert.Error(t, err)
	assert.Empty(t, repo.venues)
}
