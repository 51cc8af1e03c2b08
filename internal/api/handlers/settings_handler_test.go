package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complysort/complysort/internal/models"
)

func setupSettingsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := OpenTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.Setting{}))

	h := NewSettingsHandler(db)
	r := gin.New()
	r.GET("/settings", h.GetSettings)
	r.PUT("/settings", h.UpdateSetting)
	return r
}

func TestSettingsHandler_UpsertAndGet(t *testing.T) {
	r := setupSettingsRouter(t)

	w := doJSON(t, r, http.MethodPut, "/settings", gin.H{
		"key":   models.SettingNotifyOnRuns,
		"value": "true",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Update the same key
	w = doJSON(t, r, http.MethodPut, "/settings", gin.H{
		"key":   models.SettingNotifyOnRuns,
		"value": "false",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var settings map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.Equal(t, "false", settings[models.SettingNotifyOnRuns])
}

func TestSettingsHandler_Validation(t *testing.T) {
	r := setupSettingsRouter(t)

	w := doJSON(t, r, http.MethodPut, "/settings", gin.H{"key": "only-key"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
