package handlers

import (
	"errors"

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

type FavoriteHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewFavoriteHandler(db *gorm.DB, audit *audit.Dispatcher) *FavoriteHandler {
	return &FavoriteHandler{db: db, audit: audit}
}

type favoriteRow struct {
	models.Venue
	FavoritedAt string `json:"favorited_at"`
}

func (h *FavoriteHandler) List(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var rows []favoriteRow
	err := h.db.WithContext(c.Request.Context()).
		Table("venues AS v").
		Select("v.*, f.created_at AS favorited_at").
		Joins("JOIN favorites f ON f.venue_id = v.id").
		Where("f.user_id = ?", identity.UserID).
		Order("f.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_favorites", "Could not load favorites.")
		return
	}

	httpresp.List(c, rows)
}

// Add is idempotent: favoriting twice answers the same as favoriting once.
func (h *FavoriteHandler) Add(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	venueID, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid cafe id.")
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
		httperr.Internal(c, "failed_to_add_favorite", "Could not save the favorite.")
		return
	}

	fav := models.Favorite{UserID: identity.UserID, VenueID: venueID}
	if err := h.db.Create(&fav).Error; err != nil {
		if !repository.IsUniqueViolation(err) {
			httperr.Internal(c, "failed_to_add_favorite", "Could not save the favorite.")
			return
		}
		// Already favorited; fall through to the same answer.
	} else {
		h.audit.Dispatch(audit.Event{
			UserID:   &identity.UserID,
			Action:   "favorite_added",
			Entity:   "venue",
			EntityID: &venueID,
		})
	}

	httpresp.OK(c, gin.H{"message": "favorited"})
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	venueID, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid cafe id.")
		return
	}

	res := h.db.Where("user_id = ? AND venue_id = ?", identity.UserID, venueID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_remove_favorite", "Could not remove the favorite.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "favorite_not_found", "This location is not in your favorites.")
		return
	}

	httpresp.OK(c, gin.H{"message": "favorite removed"})
}
