package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/workcafe/workcafe-api/internal/httperr"
	"github.com/workcafe/workcafe-api/internal/httpresp"
	"github.com/workcafe/workcafe-api/internal/middleware"
	"github.com/workcafe/workcafe-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// Pointer fields so an omitted key leaves the stored value alone.
type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Bio          *string `json:"bio"`
	ProfileImage *string `json:"profile_image"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

func (h *MeHandler) Get(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var user models.User
	if err := h.db.First(&user, identity.UserID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Account no longer exists.")
		return
	}

	httpresp.OK(c, user)
}

func (h *MeHandler) Update(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var user models.User
	if err := h.db.First(&user, identity.UserID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Account no longer exists.")
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not update the profile.")
		return
	}

	httpresp.OK(c, user)
}

func (h *MeHandler) ChangePassword(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var user models.User
	if err := h.db.First(&user, identity.UserID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Account no longer exists.")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Current password is incorrect.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process the password.")
		return
	}

	if err := h.db.Model(&user).Update("password_hash", string(hashed)).Error; err != nil {
		httperr.Internal(c, "failed_to_update_password", "Could not update the password.")
		return
	}

	httpresp.OK(c, gin.H{"message": "password updated"})
}

// MyReviews lists the caller's reviews with the venue name attached.
func (h *MeHandler) MyReviews(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	type reviewRow struct {
		models.Review
		VenueName string `json:"venue_name"`
	}

	var rows []reviewRow
	err := h.db.
		Table("reviews AS r").
		Select("r.*, v.name AS venue_name").
		Joins("JOIN venues v ON v.id = r.venue_id").
		Where("r.user_id = ?", identity.UserID).
		Order("r.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Could not load your reviews.")
		return
	}

	httpresp.List(c, rows)
}
