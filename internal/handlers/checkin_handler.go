package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/workcafe/workcafe-api/internal/audit"
	domain "github.com/workcafe/workcafe-api/internal/domain/venue"
	"github.com/workcafe/workcafe-api/internal/httperr"
	"github.com/workcafe/workcafe-api/internal/httpresp"
	"github.com/workcafe/workcafe-api/internal/infra/repository"
	"github.com/workcafe/workcafe-api/internal/middleware"
)

type CheckInHandler struct {
	checkins *repository.CheckInGormRepository
	venues   domain.Repository
	audit    *audit.Dispatcher
}

func NewCheckInHandler(
	checkins *repository.CheckInGormRepository,
	venues domain.Repository,
	audit *audit.Dispatcher,
) *CheckInHandler {
	return &CheckInHandler{checkins: checkins, venues: venues, audit: audit}
}

type CreateCheckInRequest struct {
	OccupancyReport *int `json:"occupancy_report" binding:"omitempty,min=0"`
}

func (h *CheckInHandler) Active(c *gin.Context) {
	venueID, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid cafe id.")
		return
	}

	rows, err := h.checkins.ActiveForVenue(c.Request.Context(), venueID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_checkins", "Could not load check-ins.")
		return
	}

	httpresp.List(c, rows)
}

// Create opens a check-in here and force-closes the caller's active one
// elsewhere, in one transaction.
func (h *CheckInHandler) Create(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	venueID, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid cafe id.")
		return
	}

	// Body is optional; only an occupancy report can come with it.
	var req CreateCheckInRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	venue, err := h.venues.GetVenue(c.Request.Context(), venueID)
	if err != nil {
		writeVenueError(c, err)
		return
	}
	if venue.Status != string(domain.StatusApproved) {
		httperr.NotFound(c, "location_not_found", "Location not found.")
		return
	}

	checkIn, err := h.checkins.Create(c.Request.Context(), venueID, identity.UserID, req.OccupancyReport)
	if err != nil {
		httperr.Internal(c, "failed_to_check_in", "Could not check in.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &identity.UserID,
		Action:   "check_in",
		Entity:   "venue",
		EntityID: &venueID,
	})

	httpresp.Created(c, checkIn)
}

func (h *CheckInHandler) Occupancy(c *gin.Context) {
	venueID, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid cafe id.")
		return
	}

	venue, err := h.venues.GetVenue(c.Request.Context(), venueID)
	if err != nil {
		writeVenueError(c, err)
		return
	}

	occ, err := h.checkins.VenueOccupancy(c.Request.Context(), venueID, venue.OccupancyLimit)
	if err != nil {
		httperr.Internal(c, "failed_to_load_occupancy", "Could not load occupancy.")
		return
	}

	httpresp.OK(c, occ)
}

func (h *CheckInHandler) CheckOut(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	checkIn, err := h.checkins.CheckOut(c.Request.Context(), identity.UserID)
	if err != nil {
		writeVenueError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &identity.UserID,
		Action:   "check_out",
		Entity:   "venue",
		EntityID: &checkIn.VenueID,
	})

	httpresp.OK(c, checkIn)
}

func (h *CheckInHandler) MyHistory(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	rows, total, err := h.checkins.UserHistory(c.Request.Context(), identity.UserID, page, limit)
	if err != nil {
		httperr.Internal(c, "failed_to_list_checkins", "Could not load your check-ins.")
		return
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	httpresp.Paged(c, rows, total, page, limit)
}
