package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/workcafe/workcafe-api/internal/domain/venue"
	"github.com/workcafe/workcafe-api/internal/httperr"
	"github.com/workcafe/workcafe-api/internal/infra/repository"
)

// writeVenueError maps repository/domain failures onto the HTTP surface.
func writeVenueError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "location_not_found", "Location not found.")
		return
	}

	switch httperr.BusinessCode(err) {
	case domain.CodeNotPending:
		// Non-pending moderation targets answer 404, not 409.
		httperr.NotFound(c, domain.CodeNotPending, "No pending location with this id.")
	case domain.CodeAlreadyClaimed:
		httperr.BadRequest(c, domain.CodeAlreadyClaimed, "This location has already been claimed.")
	case domain.CodeReasonRequired:
		httperr.BadRequest(c, domain.CodeReasonRequired, "A rejection reason is required.")
	case domain.CodeNotOwner:
		httperr.Forbidden(c, domain.CodeNotOwner, "You cannot edit this location.")
	case repository.CodeNoActiveCheckIn:
		httperr.BadRequest(c, repository.CodeNoActiveCheckIn, "You have no active check-in.")
	case "":
		httperr.Internal(c, "internal_error", "Something went wrong.")
	default:
		httperr.BadRequest(c, httperr.BusinessCode(err), "Request could not be processed.")
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid_request",
		"details": err.Error(),
	})
}
