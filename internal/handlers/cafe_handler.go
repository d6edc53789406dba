package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/workcafe/workcafe-api/internal/config"
	domain "github.com/workcafe/workcafe-api/internal/domain/venue"
	"github.com/workcafe/workcafe-api/internal/httperr"
	"github.com/workcafe/workcafe-api/internal/httpresp"
	"github.com/workcafe/workcafe-api/internal/middleware"
	"github.com/workcafe/workcafe-api/internal/models"
	"github.com/workcafe/workcafe-api/internal/timezone"
	ucvenue "github.com/workcafe/workcafe-api/internal/usecase/venue"
	"github.com/workcafe/workcafe-api/internal/validators"
)

const nearbyHaversineSQL = `(6371 * acos(
    cos(radians(?)) * cos(radians(v.latitude)) *
    cos(radians(v.longitude) - radians(?)) +
    sin(radians(?)) * sin(radians(v.latitude))
))`

type CafeHandler struct {
	db   *gorm.DB
	cfg  *config.Config
	repo domain.Repository

	submit *ucvenue.SubmitVenue
	update *ucvenue.UpdateVenue
	delete *ucvenue.DeleteVenue
}

func NewCafeHandler(
	db *gorm.DB,
	cfg *config.Config,
	repo domain.Repository,
	submit *ucvenue.SubmitVenue,
	update *ucvenue.UpdateVenue,
	del *ucvenue.DeleteVenue,
) *CafeHandler {
	return &CafeHandler{
		db:     db,
		cfg:    cfg,
		repo:   repo,
		submit: submit,
		update: update,
		delete: del,
	}
}

// --------- Reads ---------

func (h *CafeHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	f := domain.ListFilter{
		City:  c.Query("city"),
		Sort:  c.DefaultQuery("sort", "rating"),
		Page:  page,
		Limit: limit,
	}

	rows, total, err := h.repo.ListApproved(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "failed_to_list_cafes", "Could not load cafes.")
		return
	}

	httpresp.Paged(c, rows, total, f.Page, f.Limit)
}

// Search layers the richer filter set on top of the listing query. Ratings
// aggregate per venue, so rating filters land in HAVING.
func (h *CafeHandler) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	q := h.db.WithContext(c.Request.Context()).
		Table("venues AS v").
		Select(`v.*,
            COALESCE(AVG(rv.rating), 0) AS average_rating,
            COUNT(rv.id) AS review_count,
            a.has_wifi, a.wifi_speed, a.power_outlets, a.noise_level, a.price_range`).
		Joins("LEFT JOIN reviews rv ON rv.venue_id = v.id").
		Joins("LEFT JOIN venue_amenities a ON a.venue_id = v.id").
		Where("v.status = ?", domain.StatusApproved)

	if query := c.Query("query"); query != "" {
		like := "%" + query + "%"
		q = q.Where("v.name ILIKE ? OR v.description ILIKE ?", like, like)
	}
	if city := c.Query("city"); city != "" {
		q = q.Where("LOWER(v.city) = LOWER(?)", city)
	}

	for _, amenity := range c.QueryArray("amenities") {
		switch amenity {
		case "wifi":
			q = q.Where("a.has_wifi = true")
		case "power":
			q = q.Where("a.power_outlets <> 'none'")
		case "restrooms":
			q = q.Where("a.restrooms_available = true")
		case "parking":
			q = q.Where("a.parking_options <> ''")
		}
	}

	if maxNoise, err := strconv.Atoi(c.Query("maxNoise")); err == nil {
		if maxNoise >= 1 && maxNoise <= len(models.NoiseLevels) {
			q = q.Where("a.noise_level IN ?", models.NoiseLevels[:maxNoise])
		}
	}
	if minWifi, err := strconv.Atoi(c.Query("minWifi")); err == nil && minWifi > 0 {
		q = q.Where("a.has_wifi = true AND a.wifi_speed >= ?", minWifi)
	}

	if ids := c.QueryArray("categories"); len(ids) > 0 {
		q = q.Where(
			"v.id IN (SELECT vc.venue_id FROM venue_categories vc WHERE vc.category_id IN ?)",
			ids,
		)
	}

	if c.Query("openNow") == "true" {
		now := timezone.NowIn(h.cfg.DefaultTimezone)
		q = q.Where(
			`EXISTS (SELECT 1 FROM venue_hours vh
             WHERE vh.venue_id = v.id AND vh.day_of_week = ?
               AND vh.is_closed = false
               AND vh.open_time <= ? AND vh.close_time >= ?)`,
			int(now.Weekday()), now.Format("15:04"), now.Format("15:04"),
		)
	}

	q = q.Group("v.id, a.has_wifi, a.wifi_speed, a.power_outlets, a.noise_level, a.price_range")

	if minRating, err := strconv.ParseFloat(c.Query("minRating"), 64); err == nil && minRating > 0 {
		q = q.Having("COALESCE(AVG(rv.rating), 0) >= ?", minRating)
	}

	var rows []domain.Summary
	err := q.Order("average_rating DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&rows).Error
	if err != nil {
		httperr.Internal(c, "failed_to_search_cafes", "Could not run the search.")
		return
	}

	httpresp.List(c, rows)
}

func (h *CafeHandler) Nearby(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		httperr.BadRequest(c, "invalid_coordinates", "lat and lng are required.")
		return
	}

	radius, err := strconv.ParseFloat(c.DefaultQuery("radius", "5"), 64)
	if err != nil || radius <= 0 {
		radius = 5
	}

	var rows []domain.Summary
	err = h.db.WithContext(c.Request.Context()).
		Table("venues AS v").
		Select(`v.*,
            COALESCE(AVG(rv.rating), 0) AS average_rating,
            COUNT(rv.id) AS review_count,
            a.has_wifi, a.wifi_speed, a.power_outlets, a.noise_level, a.price_range,
            `+nearbyHaversineSQL+` AS distance_km`,
			lat, lng, lat).
		Joins("LEFT JOIN reviews rv ON rv.venue_id = v.id").
		Joins("LEFT JOIN venue_amenities a ON a.venue_id = v.id").
		Where("v.status = ?", domain.StatusApproved).
		Where(nearbyHaversineSQL+" <= ?", lat, lng, lat, radius).
		Group("v.id, a.has_wifi, a.wifi_speed, a.power_outlets, a.noise_level, a.price_range").
		Order("distance_km ASC").
		Limit(50).
		Scan(&rows).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_nearby", "Could not load nearby cafes.")
		return
	}

	httpresp.List(c, rows)
}

type cafeDetailResponse struct {
	*domain.Detail
	IsFavorite *bool `json:"is_favorite,omitempty"`
}

func (h *CafeHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid cafe id.")
		return
	}

	identity, authed := middleware.IdentityFrom(c)

	approvedOnly := !(authed && identity.IsAdmin())
	detail, err := h.repo.GetDetail(c.Request.Context(), id, approvedOnly)
	if err != nil {
		writeVenueError(c, err)
		return
	}

	// Views are best-effort; a failed bump never fails the read.
	if err := h.repo.IncrementViewCount(c.Request.Context(), id); err != nil {
		log.Warn().Err(err).Uint("venue_id", id).Msg("view count bump failed")
	}

	resp := cafeDetailResponse{Detail: detail}
	if authed {
		resp.IsFavorite = h.favoriteFlag(c.Request.Context(), identity.UserID, id)
	}

	httpresp.OK(c, resp)
}

// favoriteFlag returns nil when the lookup fails, so the payload omits
// is_favorite instead of asserting false.
func (h *CafeHandler) favoriteFlag(ctx context.Context, userID, venueID uint) *bool {
	var count int64
	if err := h.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND venue_id = ?", userID, venueID).
		Count(&count).Error; err != nil {
		log.Warn().Err(err).Uint("venue_id", venueID).Msg("favorite lookup failed")
		return nil
	}

	fav := count > 0
	return &fav
}

// --------- Admin writes ---------

func (h *CafeHandler) Create(c *gin.Context) {
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
		req.toInput(identity.UserID, true, h.cfg.DefaultTimezone),
	)
	if err != nil {
		writeVenueError(c, err)
		return
	}

	httpresp.Created(c, gin.H{"id": id})
}

func (h *CafeHandler) Update(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid cafe id.")
		return
	}

	var req VenueUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.update.Execute(c.Request.Context(), req.toInput(id, identity.UserID, true)); err != nil {
		writeVenueError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "cafe updated"})
}

func (h *CafeHandler) Delete(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid cafe id.")
		return
	}

	if err := h.delete.Execute(c.Request.Context(), id, identity.UserID, c.Query("reason")); err != nil {
		writeVenueError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "cafe deleted"})
}

func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
