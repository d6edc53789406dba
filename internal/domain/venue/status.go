package venue

import "github.com/workcafe/workcafe-api/internal/httperr"

// ===============================
// Moderation Status
// ===============================

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Business error codes surfaced by the workflow.
const (
	CodeNotPending     = "pending_location_not_found"
	CodeAlreadyClaimed = "already_claimed"
	CodeReasonRequired = "rejection_reason_required"
	CodeNotOwner       = "not_authorized_for_location"
)

// ===============================
// Validations
// ===============================

// Approved and rejected are terminal; there is no re-review path.
func CanModerate(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness(CodeNotPending)
	}
	return nil
}

func ValidateRejection(reason string) error {
	if reason == "" {
		return httperr.ErrBusiness(CodeReasonRequired)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
