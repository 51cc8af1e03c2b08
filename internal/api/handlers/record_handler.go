package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/complysort/complysort/internal/models"
)

// RecordHandler serves the queryable classification history mirrored from
// the audit log.
type RecordHandler struct {
	DB *gorm.DB
}

func NewRecordHandler(db *gorm.DB) *RecordHandler {
	return &RecordHandler{DB: db}
}

// List returns classification records, newest first, optionally filtered by
// run UUID, action, or framework.
func (h *RecordHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	query := h.DB.Order("id desc").Limit(limit)
	if runUUID := c.Query("run"); runUUID != "" {
		query = query.Where("run_uuid = ?", runUUID)
	}
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if framework := c.Query("framework"); framework != "" {
		query = query.Where("framework = ?", framework)
	}

	var records []models.ClassificationRecord
	if err := query.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch records"})
		return
	}

	c.JSON(http.StatusOK, records)
}
