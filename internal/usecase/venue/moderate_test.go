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

func seedVenue(repo *fakeRepo, status domain.Status) uint {
	id := repo.nextID
	repo.nextID++
	repo.venues[id] = &models.Venue{
		ID:          id,
		Name:        "Seeded",
		Status:      string(status),
		SubmittedBy: 5,
	}
	return id
}

func TestApprovePending(t *testing.T) {
	repo := newFakeRepo()
	id := seedVenue(repo, domain.StatusPending)

	uc := NewApproveVenue(repo, nil)
	require.NoError(t, uc.Execute(context.Background(), id, 99, ""))

	assert.Equal(t, string(domain.StatusApproved), repo.venues[id].Status)

	require.Len(t, repo.history, 1)
	assert.Equal(t, "approve", repo.history[0].ModificationType)
	assert.Equal(t, "Location approved by admin", repo.history[0].Reason)
	assert.Equal(t, uint(99), repo.history[0].ModifiedBy)
}

func TestApproveNonPending(t *testing.T) {
	repo := newFakeRepo()
	id := seedVenue(repo, domain.StatusApproved)

	uc := NewApproveVenue(repo, nil)
	err := uc.Execute(context.Background(), id, 99, "")

	assert.True(t, httperr.IsBusiness(err, domain.CodeNotPending))
	assert.Empty(t, repo.history)
}

func TestRejectRequiresReason(t *testing.T) {
	repo := newFakeRepo()
	id := seedVenue(repo, domain.StatusPending)

	uc := NewRejectVenue(repo, nil)
	err := uc.Execute(context.Background(), id, 99, "")

	assert.True(t, httperr.IsBusiness(err, domain.CodeReasonRequired))
	// Nothing was touched.
	assert.Equal(t, string(domain.StatusPending), repo.venues[id].Status)
	assert.Empty(t, repo.history)
}

func TestRejectPending(t *testing.T) {
	repo := newFakeRepo()
	id := seedVenue(repo, domain.StatusPending)

	uc := NewRejectVenue(repo, nil)
	require.NoError(t, uc.Execute(context.Background(), id, 99, "duplicate listing"))

	assert.Equal(t, string(domain.StatusRejected), repo.venues[id].Status)
	assert.Equal(t, "duplicate listing", repo.venues[id].RejectionReason)

	require.Len(t, repo.history, 1)
	assert.Equal(t, "reject", repo.history[0].ModificationType)
}

func TestRejectedIsTerminal(t *testing.T) {
	repo := newFakeRepo()
	id := seedVenue(repo, domain.StatusRejected)

	approve := NewApproveVenue(repo, nil)
	err := approve.Execute(context.Background(), id, 99, "")
	assert.True(t, httperr.IsBusiness(err, domain.CodeNotPending))

	reject := NewRejectVenue(repo, nil)
	err = reject.Execute(context.Background(), id, 99, "again")
	assert.True(t, httperr.IsBusiness(err, domain.CodeNotPending))
}
