package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/workcafe/workcafe-api/internal/httperr"
	"github.com/workcafe/workcafe-api/internal/httpresp"
	"github.com/workcafe/workcafe-api/internal/infra/repository"
	"github.com/workcafe/workcafe-api/internal/models"
)

type CategoryHandler struct {
	db *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{db: db}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	var rows []models.Category
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_list_categories", "Could not load categories.")
		return
	}

	httpresp.List(c, rows)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cat := models.Category{Name: req.Name, Description: req.Description}
	if err := h.db.Create(&cat).Error; err != nil {
		if repository.IsUniqueViolation(err) {
			httperr.BadRequest(c, "category_exists", "A category with this name already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create_category", "Could not create the category.")
		return
	}

	httpresp.Created(c, cat)
}
