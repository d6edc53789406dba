package venue

import (
	"time"

	"github.com/workcafe/workcafe-api/internal/httperr"
	"github.com/workcafe/workcafe-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Claim(v *models.Venue, userID uint, now time.Time) error {
	if v.IsClaimed {
		return httperr.ErrBusiness(CodeAlreadyClaimed)
	}

	v.IsClaimed = true
	v.ClaimedBy = &userID
	v.ClaimedAt = &now
	return nil
}

// CanEdit gates updates to the original submitter or an admin.
func CanEdit(v *models.Venue, userID uint, isAdmin bool) error {
	if v.SubmittedBy != userID && !isAdmin {
		return httperr.ErrBusiness(CodeNotOwner)
	}
	return nil
}
