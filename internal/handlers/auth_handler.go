package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/workcafe/workcafe-api/internal/audit"
	"github.com/workcafe/workcafe-api/internal/config"
	"github.com/workcafe/workcafe-api/internal/httperr"
	"github.com/workcafe/workcafe-api/internal/infra/repository"
	"github.com/workcafe/workcafe-api/internal/middleware"
	"github.com/workcafe/workcafe-api/internal/models"
	"github.com/workcafe/workcafe-api/internal/validators"
)

type AuthHandler struct {
	db    *gorm.DB
	cfg   *config.Config
	audit *audit.Dispatcher
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, audit: audit}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to be valid.")
		return
	}

	// Fast-path duplicate checks; the unique indexes settle races below.
	var count int64
	h.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "username_taken", "This username is already in use.")
		return
	}
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_registered", "This email is already registered.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process the password.")
		return
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         "user",
	}

	if err := h.db.Create(&user).Error; err != nil {
		if repository.IsUniqueViolation(err) {
			h.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
			if count > 0 {
				httperr.BadRequest(c, "username_taken", "This username is already in use.")
				return
			}
			httperr.BadRequest(c, "email_registered", "This email is already registered.")
			return
		}
		httperr.Internal(c, "failed_to_create_user", "Could not create the account.")
		return
	}

	token, err := middleware.GenerateToken(h.cfg, &user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue a token.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	login := strings.ToLower(strings.TrimSpace(req.Username))

	var user models.User
	err := h.db.Where("username = ? OR email = ?", login, login).First(&user).Error
	if err != nil {
		// Same answer whether the account exists or not.
		httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")
		return
	}

	token, err := middleware.GenerateToken(h.cfg, &user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue a token.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_login",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}
