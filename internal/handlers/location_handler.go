package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/workcafe/workcafe-api/internal/audit"
	"github.com/workcafe/workcafe-api/internal/config"
	domain "github.com/workcafe/workcafe-api/internal/domain/venue"
	"github.com/workcafe/workcafe-api/internal/geo"
	"github.com/workcafe/workcafe-api/internal/httperr"
	"github.com/workcafe/workcafe-api/internal/httpresp"
	"github.com/workcafe/workcafe-api/internal/middleware"
	"github.com/workcafe/workcafe-api/internal/models"
	"github.com/workcafe/workcafe-api/internal/uploads"
	ucvenue "github.com/workcafe/workcafe-api/internal/usecase/venue"
	"github.com/workcafe/workcafe-api/internal/validators"
)

type LocationHandler struct {
	db       *gorm.DB
	cfg      *config.Config
	repo     domain.Repository
	uploader *uploads.Uploader
	audit    *audit.Dispatcher

	submit  *ucvenue.SubmitVenue
	update  *ucvenue.UpdateVenue
	approve *ucvenue.ApproveVenue
	reject  *ucvenue.RejectVenue
	claim   *ucvenue.ClaimVenue
	delete  *ucvenue.DeleteVenue
}

func NewLocationHandler(
	db *gorm.DB,
	cfg *config.Config,
	repo domain.Repository,
	uploader *uploads.Uploader,
	audit *audit.Dispatcher,
	submit *ucvenue.SubmitVenue,
	update *ucvenue.UpdateVenue,
	approve *ucvenue.ApproveVenue,
	reject *ucvenue.RejectVenue,
	claim *ucvenue.ClaimVenue,
	del *ucvenue.DeleteVenue,
) *LocationHandler {
	return &LocationHandler{
		db:       db,
		cfg:      cfg,
		repo:     repo,
		uploader: uploader,
		audit:    audit,
		submit:   submit,
		update:   update,
		approve:  approve,
		reject:   reject,
		claim:    claim,
		delete:   del,
	}
}

// --------- Public reads ---------

func (h *LocationHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	f := domain.ListFilter{
		City:  c.Query("city"),
		Power: c.Query("power"),
		Noise: c.Query("noise"),
		Sort:  c.DefaultQuery("sort", "rating"),
		Page:  page,
		Limit: limit,
	}

	if wifi := c.Query("wifi"); wifi != "" {
		b := wifi == "true"
		f.Wifi = &b
	}

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	dist, distErr := strconv.ParseFloat(c.Query("distance"), 64)
	if latErr == nil && lngErr == nil && distErr == nil {
		f.Latitude = &lat
		f.Longitude = &lng
		f.Distance = &dist
	}

	rows, total, err := h.repo.ListApproved(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "failed_to_list_locations", "Could not load locations.")
		return
	}

	if f.Latitude != nil && f.Longitude != nil {
		for i := range rows {
			d := geo.DistanceKm(*f.Latitude, *f.Longitude, rows[i].Latitude, rows[i].Longitude)
			rows[i].DistanceKm = &d
		}
	}

	httpresp.Paged(c, rows, total, f.Page, f.Limit)
}

func (h *LocationHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid location id.")
		return
	}

	identity, authed := middleware.IdentityFrom(c)
	approvedOnly := !(authed && identity.IsAdmin())

	detail, err := h.repo.GetDetail(c.Request.Context(), id, approvedOnly)
	if err != nil {
		writeVenueError(c, err)
		return
	}

	httpresp.OK(c, detail)
}

// --------- Submission workflow ---------

func (h *LocationHandler) Submit(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var req VenueCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if !validators.IsOptionalEmailDomainValid(req.Email) {
		httperr.BadRequest(c, "invalid_email_domain", "The contact email domain does not appear to be valid.")
		return
	}

	id, err := h.submit.Execute(
		c.Request.Context(),
		req.toInput(identity.UserID, false, h.cfg.DefaultTimezone),
	)
	if err != nil {
		writeVenueError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"id":      id,
		"status":  string(domain.StatusPending),
		"message": "Location submitted for review.",
	})
}

func (h *LocationHandler) Update(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid location id.")
		return
	}

	var req VenueUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	in := req.toInput(id, identity.UserID, identity.IsAdmin())
	if err := h.update.Execute(c.Request.Context(), in); err != nil {
		writeVenueError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "location updated"})
}

func (h *LocationHandler) Delete(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid location id.")
		return
	}

	if err := h.delete.Execute(c.Request.Context(), id, identity.UserID, c.Query("reason")); err != nil {
		writeVenueError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "location deleted"})
}

func (h *LocationHandler) Claim(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid location id.")
		return
	}

	if err := h.claim.Execute(c.Request.Context(), id, identity.UserID); err != nil {
		writeVenueError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "location claimed"})
}

func (h *LocationHandler) MySubmissions(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	rows, err := h.repo.ListBySubmitter(c.Request.Context(), identity.UserID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_submissions", "Could not load your submissions.")
		return
	}

	httpresp.List(c, rows)
}

// --------- Moderation (admin) ---------

func (h *LocationHandler) Pending(c *gin.Context) {
	rows, err := h.repo.ListPending(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_pending", "Could not load pending locations.")
		return
	}

	httpresp.List(c, rows)
}

type ModerationRequest struct {
	Reason string `json:"reason"`
}

func (h *LocationHandler) Approve(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid location id.")
		return
	}

	var req ModerationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	if err := h.approve.Execute(c.Request.Context(), id, identity.UserID, req.Reason); err != nil {
		writeVenueError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "location approved"})
}

func (h *LocationHandler) Reject(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid location id.")
		return
	}

	var req ModerationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	if err := h.reject.Execute(c.Request.Context(), id, identity.UserID, req.Reason); err != nil {
		writeVenueError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "location rejected"})
}

// --------- Photos ---------

// UploadPhotos stores each file in turn; one bad image does not sink the
// batch. The first photo a venue ever gets becomes primary.
func (h *LocationHandler) UploadPhotos(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid location id.")
		return
	}

	venue, err := h.repo.GetVenue(c.Request.Context(), id)
	if err != nil {
		writeVenueError(c, err)
		return
	}
	if err := domain.CanEdit(venue, identity.UserID, identity.IsAdmin()); err != nil {
		writeVenueError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		httperr.BadRequest(c, "invalid_multipart_form", "Expected a multipart form with photos.")
		return
	}

	files := form.File["photos"]
	if len(files) == 0 {
		httperr.BadRequest(c, "no_photos", "At least one photo file is required.")
		return
	}

	captions := form.Value["captions"]

	var saved []models.VenuePhoto
	var failed int
	for i, fh := range files {
		file, err := fh.Open()
		if err != nil {
			failed++
			continue
		}

		url, err := h.uploader.UploadPhoto(c.Request.Context(), file)
		file.Close()
		if err != nil {
			log.Warn().Err(err).Str("filename", fh.Filename).Msg("photo upload rejected")
			failed++
			continue
		}

		photo := models.VenuePhoto{
			VenueID:    id,
			PhotoURL:   url,
			UploadedBy: identity.UserID,
		}
		if i < len(captions) {
			photo.Caption = captions[i]
		}

		if err := h.repo.AddPhoto(c.Request.Context(), &photo); err != nil {
			failed++
			continue
		}
		saved = append(saved, photo)
	}

	if len(saved) == 0 {
		httperr.BadRequest(c, "all_photos_failed", "None of the photos could be stored.")
		return
	}

	httpresp.Created(c, gin.H{
		"photos": saved,
		"failed": failed,
	})
}

// --------- Verifications ---------

type VerifyRequest struct {
	VerifiedWifi    bool   `json:"verified_wifi"`
	VerifiedPower   bool   `json:"verified_power"`
	VerifiedNoise   bool   `json:"verified_noise"`
	VerifiedSeating bool   `json:"verified_seating"`
	VerifiedHours   bool   `json:"verified_hours"`
	Notes           string `json:"notes"`
}

// Verify appends a crowd attestation; they are never edited.
func (h *LocationHandler) Verify(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid location id.")
		return
	}

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	venue, err := h.repo.GetVenue(c.Request.Context(), id)
	if err != nil {
		writeVenueError(c, err)
		return
	}
	if venue.Status != string(domain.StatusApproved) {
		httperr.NotFound(c, "location_not_found", "Location not found.")
		return
	}

	v := models.Verification{
		VenueID:         id,
		UserID:          identity.UserID,
		VerifiedWifi:    req.VerifiedWifi,
		VerifiedPower:   req.VerifiedPower,
		VerifiedNoise:   req.VerifiedNoise,
		VerifiedSeating: req.VerifiedSeating,
		VerifiedHours:   req.VerifiedHours,
		Notes:           req.Notes,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&v).Error; err != nil {
		httperr.Internal(c, "failed_to_verify", "Could not record the verification.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &identity.UserID,
		Action:   "location_verified",
		Entity:   "venue",
		EntityID: &id,
	})

	httpresp.Created(c, v)
}
