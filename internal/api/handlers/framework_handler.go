package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/complysort/complysort/internal/models"
)

// FrameworkHandler manages the framework registry behind the keyword catalog.
type FrameworkHandler struct {
	DB *gorm.DB
}

func NewFrameworkHandler(db *gorm.DB) *FrameworkHandler {
	return &FrameworkHandler{DB: db}
}

// List returns all frameworks in catalog order.
func (h *FrameworkHandler) List(c *gin.Context) {
	var frameworks []models.Framework
	if err := h.DB.Order("id").Find(&frameworks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch frameworks"})
		return
	}
	c.JSON(http.StatusOK, frameworks)
}

// Get returns a single framework by UUID.
func (h *FrameworkHandler) Get(c *gin.Context) {
	uuid := c.Param("uuid")
	var framework models.Framework
	if err := h.DB.Where("uuid = ?", uuid).First(&framework).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Framework not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, framework)
}

type CreateFrameworkRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords" binding:"required,min=1"`
	Enabled     *bool    `json:"enabled"`
}

// Create registers a new framework.
func (h *FrameworkHandler) Create(c *gin.Context) {
	var req CreateFrameworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	framework := models.Framework{
		Name:        req.Name,
		Description: req.Description,
		Enabled:     true,
	}
	framework.SetKeywordList(req.Keywords)
	if framework.Keywords == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one non-empty keyword is required"})
		return
	}
	if req.Enabled != nil {
		framework.Enabled = *req.Enabled
	}

	if err := h.DB.Create(&framework).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, framework)
}

type UpdateFrameworkRequest struct {
	Description *string   `json:"description,omitempty"`
	Keywords    *[]string `json:"keywords,omitempty"`
	Enabled     *bool     `json:"enabled,omitempty"`
}

// Update modifies an existing framework. The name is immutable because
// destination folders and audit history already reference it.
func (h *FrameworkHandler) Update(c *gin.Context) {
	uuid := c.Param("uuid")
	var framework models.Framework
	if err := h.DB.Where("uuid = ?", uuid).First(&framework).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Framework not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req UpdateFrameworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Description != nil {
		framework.Description = *req.Description
	}
	if req.Keywords != nil {
		framework.SetKeywordList(*req.Keywords)
		if framework.Keywords == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "At least one non-empty keyword is required"})
			return
		}
	}
	if req.Enabled != nil {
		framework.Enabled = *req.Enabled
	}

	if err := h.DB.Save(&framework).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, framework)
}

// Delete removes a framework from the registry. Files already copied stay
// where they are; only future runs are affected.
func (h *FrameworkHandler) Delete(c *gin.Context) {
	uuid := c.Param("uuid")
	result := h.DB.Where("uuid = ?", uuid).Delete(&models.Framework{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Framework not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Framework deleted"})
}
