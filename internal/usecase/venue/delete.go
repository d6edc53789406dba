package venue

import (
	"context"

	"github.com/workcafe/workcafe-api/internal/audit"
	domain "github.com/workcafe/workcafe-api/internal/domain/venue"
)

type DeleteVenue struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteVenue(repo domain.Repository, audit *audit.Dispatcher) *DeleteVenue {
	return &DeleteVenue{repo: repo, audit: audit}
}

func (uc *DeleteVenue) Execute(
	ctx context.Context,
	venueID uint,
	adminID uint,
	reason string,
) error {

	reason = defaultStr(reason, "Location deleted by admin")

	if err := uc.repo.DeleteVenue(ctx, venueID, adminID, reason); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "location_deleted",
		Entity:   "venue",
		EntityID: &venueID,
	})

	return nil
}
