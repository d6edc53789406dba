package venue

import (
	"context"

	"github.com/workcafe/workcafe-api/internal/audit"
	domain "github.com/workcafe/workcafe-api/internal/domain/venue"
)

type ApproveVenue struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewApproveVenue(repo domain.Repository, audit *audit.Dispatcher) *ApproveVenue {
	return &ApproveVenue{repo: repo, audit: audit}
}

func (uc *ApproveVenue) Execute(
	ctx context.Context,
	venueID uint,
	adminID uint,
	notes string,
) error {

	reason := defaultStr(notes, "Location approved by admin")

	if err := uc.repo.SetModeration(ctx, venueID, domain.StatusApproved, reason, adminID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "location_approved",
		Entity:   "venue",
		EntityID: &venueID,
	})

	return nil
}

type RejectVenue struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRejectVenue(repo domain.Repository, audit *audit.Dispatcher) *RejectVenue {
	return &RejectVenue{repo: repo, audit: audit}
}

func (uc *RejectVenue) Execute(
	ctx context.Context,
	venueID uint,
	adminID uint,
	reason string,
) error {

	if err := domain.ValidateRejection(reason); err != nil {
		return err
	}

	if err := uc.repo.SetModeration(ctx, venueID, domain.StatusRejected, reason, adminID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "location_rejected",
		Entity:   "venue",
		EntityID: &venueID,
	})

	return nil
}
