package venue

import (
	"context"
	"time"

	"github.com/workcafe/workcafe-api/internal/audit"
	domain "github.com/workcafe/workcafe-api/internal/domain/venue"
)

type ClaimVenue struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewClaimVenue(repo domain.Repository, audit *audit.Dispatcher) *ClaimVenue {
	return &ClaimVenue{repo: repo, audit: audit}
}

func (uc *ClaimVenue) Execute(
	ctx context.Context,
	venueID uint,
	userID uint,
) error {

	v, err := uc.repo.GetVenue(ctx, venueID)
	if err != nil {
		return err
	}

	// Fast-path rejection; the conditional update inside the repository is
	// what actually wins a concurrent claim.
	if err := domain.Claim(v, userID, time.Now()); err != nil {
		return err
	}

	if err := uc.repo.ClaimVenue(ctx, venueID, userID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "location_claimed",
		Entity:   "venue",
		EntityID: &venueID,
	})

	return nil
}
