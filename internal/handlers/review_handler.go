package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/workcafe/workcafe-api/internal/audit"
	domain "github.com/workcafe/workcafe-api/internal/domain/venue"
	"github.com/workcafe/workcafe-api/internal/httperr"
	"github.com/workcafe/workcafe-api/internal/httpresp"
	"github.com/workcafe/workcafe-api/internal/infra/repository"
	"github.com/workcafe/workcafe-api/internal/middleware"
	"github.com/workcafe/workcafe-api/internal/models"
)

type ReviewHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewReviewHandler(db *gorm.DB, audit *audit.Dispatcher) *ReviewHandler {
	return &ReviewHandler{db: db, audit: audit}
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`

	WifiRating    *int `json:"wifi_rating" binding:"omitempty,min=1,max=5"`
	PowerRating   *int `json:"power_rating" binding:"omitempty,min=1,max=5"`
	ComfortRating *int `json:"comfort_rating" binding:"omitempty,min=1,max=5"`
	NoiseRating   *int `json:"noise_rating" binding:"omitempty,min=1,max=5"`
	CoffeeRating  *int `json:"coffee_rating" binding:"omitempty,min=1,max=5"`
	FoodRating    *int `json:"food_rating" binding:"omitempty,min=1,max=5"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`

	WifiRating    *int `json:"wifi_rating" binding:"omitempty,min=1,max=5"`
	PowerRating   *int `json:"power_rating" binding:"omitempty,min=1,max=5"`
	ComfortRating *int `json:"comfort_rating" binding:"omitempty,min=1,max=5"`
	NoiseRating   *int `json:"noise_rating" binding:"omitempty,min=1,max=5"`
	CoffeeRating  *int `json:"coffee_rating" binding:"omitempty,min=1,max=5"`
	FoodRating    *int `json:"food_rating" binding:"omitempty,min=1,max=5"`
}

type reviewWithAuthor struct {
	models.Review
	Username     string `json:"username"`
	ProfileImage string `json:"profile_image"`
}

func (h *ReviewHandler) ListForVenue(c *gin.Context) {
	venueID, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid cafe id.")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var rows []reviewWithAuthor
	err = h.db.WithContext(c.Request.Context()).
		Table("reviews AS r").
		Select("r.*, u.username, u.profile_image").
		Joins("JOIN users u ON u.id = r.user_id").
		Where("r.venue_id = ?", venueID).
		Order("r.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&rows).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Could not load reviews.")
		return
	}

	var total int64
	if err := h.db.Model(&models.Review{}).
		Where("venue_id = ?", venueID).
		Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Could not load reviews.")
		return
	}

	httpresp.Paged(c, rows, total, page, limit)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	venueID, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid cafe id.")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var venue models.Venue
	err = h.db.Where("id = ? AND status = ?", venueID, domain.StatusApproved).
		First(&venue).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "location_not_found", "Location not found.")
		return
	}
	if err != nil {
		httperr.Internal(c, "failed_to_create_review", "Could not create the review.")
		return
	}

	review := models.Review{
		VenueID:       venueID,
		UserID:        identity.UserID,
		Rating:        req.Rating,
		Comment:       req.Comment,
		WifiRating:    req.WifiRating,
		PowerRating:   req.PowerRating,
		ComfortRating: req.ComfortRating,
		NoiseRating:   req.NoiseRating,
		CoffeeRating:  req.CoffeeRating,
		FoodRating:    req.FoodRating,
	}

	if err := h.db.Create(&review).Error; err != nil {
		if repository.IsUniqueViolation(err) {
			httperr.BadRequest(c, "already_reviewed", "You already reviewed this location.")
			return
		}
		httperr.Internal(c, "failed_to_create_review", "Could not create the review.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &identity.UserID,
		Action:   "review_created",
		Entity:   "review",
		EntityID: &review.ID,
	})

	httpresp.Created(c, review)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid review id.")
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var review models.Review
	if err := h.db.First(&review, id).Error; err != nil {
		httperr.NotFound(c, "review_not_found", "Review not found.")
		return
	}

	if review.UserID != identity.UserID {
		httperr.Forbidden(c, "not_review_author", "Only the author can edit a review.")
		return
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	if req.WifiRating != nil {
		review.WifiRating = req.WifiRating
	}
	if req.PowerRating != nil {
		review.PowerRating = req.PowerRating
	}
	if req.ComfortRating != nil {
		review.ComfortRating = req.ComfortRating
	}
	if req.NoiseRating != nil {
		review.NoiseRating = req.NoiseRating
	}
	if req.CoffeeRating != nil {
		review.CoffeeRating = req.CoffeeRating
	}
	if req.FoodRating != nil {
		review.FoodRating = req.FoodRating
	}

	if err := h.db.Save(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_update_review", "Could not update the review.")
		return
	}

	httpresp.OK(c, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid review id.")
		return
	}

	var review models.Review
	if err := h.db.First(&review, id).Error; err != nil {
		httperr.NotFound(c, "review_not_found", "Review not found.")
		return
	}

	if review.UserID != identity.UserID && !identity.IsAdmin() {
		httperr.Forbidden(c, "not_review_author", "Only the author or an admin can delete a review.")
		return
	}

	if err := h.db.Delete(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_review", "Could not delete the review.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &identity.UserID,
		Action:   "review_deleted",
		Entity:   "review",
		EntityID: &id,
	})

	httpresp.OK(c, gin.H{"message": "review deleted"})
}
