package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/complysort/complysort/internal/joplin"
	"github.com/complysort/complysort/internal/version"
)

// HealthHandler reports service, database, and note-service health.
type HealthHandler struct {
	DB     *gorm.DB
	Joplin *joplin.Client
}

func NewHealthHandler(db *gorm.DB, joplinClient *joplin.Client) *HealthHandler {
	return &HealthHandler{DB: db, Joplin: joplinClient}
}

// Healthz returns 200 when the database is reachable. The note service is
// advisory, so its state is reported but never degrades overall health.
func (h *HealthHandler) Healthz(c *gin.Context) {
	status := gin.H{
		"status":  "ok",
		"version": version.Full(),
	}

	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	status["database"] = "ok"

	if h.Joplin != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.Joplin.Ping(ctx); err != nil {
			status["note_service"] = "unreachable"
		} else {
			status["note_service"] = "ok"
		}
	} else {
		status["note_service"] = "disabled"
	}

	c.JSON(http.StatusOK, status)
}
