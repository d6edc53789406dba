package venue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/workcafe/workcafe-api/internal/domain/venue"
	"github.com/workcafe/workcafe-api/internal/httperr"
)

func TestClaimVenue(t *testing.T) {
	repo := newFakeRepo()
	id := seedVenue(repo, domain.StatusApproved)

	uc := NewClaimVenue(repo, nil)
	require.NoError(t, uc.Execute(context.Background(), id, 42))

	v := repo.venues[id]
	assert.True(t, v.IsClaimed)
	require.NotNil(t, v.ClaimedBy)
	assert.Equal(t, uint(42), *v.ClaimedBy)

	require.Len(t, repo.history, 1)
	assert.Equal(t, "claim", repo.history[0].ModificationType)
}

func TestClaimVenueAlreadyClaimed(t *testing.T) {
	repo := newFakeRepo()
	id := seedVenue(repo, domain.StatusApproved)
	repo.venues[id].IsClaimed = true

	uc := NewClaimVenue(repo, nil)
	err := uc.Execute(context.Background(), id, 42)

	assert.True(t, httperr.IsBusiness(err, domain.CodeAlreadyClaimed))
	assert.Empty(t, repo.history)
}

func TestClaimVenueMissing(t *testing.T) {
	repo := newFakeRepo()

	uc := NewClaimVenue(repo, nil)
	err := uc.Execute(context.Background(), 404, 42)

	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDeleteVenueDefaultReason(t *testing.T) {
	repo := newFakeRepo()
	id := seedVenue(repo, domain.StatusApproved)

	uc := NewDeleteVenue(repo, nil)
	require.NoError(t, uc.Execute(context.Background(), id, 99, ""))

	assert.NotContains(t, repo.venues, id)
	require.Len(t, repo.history, 1)
	assert.Equal(t, "delete", repo.history[0].ModificationType)
	assert.Equal(t, "Location deleted by admin", repo.history[0].Reason)
}
