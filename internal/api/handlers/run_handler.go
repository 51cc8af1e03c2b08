package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/complysort/complysort/internal/services"
)

// RunHandler exposes the two invocable operations, classification and
// rollback, plus run history.
type RunHandler struct {
	runs *services.RunService
}

func NewRunHandler(runs *services.RunService) *RunHandler {
	return &RunHandler{runs: runs}
}

// Classify triggers a synchronous classification run.
func (h *RunHandler) Classify(c *gin.Context) {
	run, err := h.runs.Classify(c.Request.Context())
	if err != nil {
		if run != nil {
			// The run row carries the partial counters and failure message.
			c.JSON(http.StatusInternalServerError, run)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}

// Rollback triggers a synchronous rollback replay.
func (h *RunHandler) Rollback(c *gin.Context) {
	run, err := h.runs.Rollback(c.Request.Context())
	if err != nil {
		if run != nil {
			c.JSON(http.StatusInternalServerError, run)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}

// List returns recent runs, newest first.
func (h *RunHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	runs, err := h.runs.History(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch runs"})
		return
	}
	c.JSON(http.StatusOK, runs)
}

// Get returns one run by UUID.
func (h *RunHandler) Get(c *gin.Context) {
	run, err := h.runs.Get(c.Param("uuid"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}
