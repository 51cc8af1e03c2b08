package services

import (
	"strings"

	"github.com/containrrr/shoutrrr"
	"gorm.io/gorm"

	"github.com/complysort/complysort/internal/logger"
	"github.com/complysort/complysort/internal/models"
)

// NotificationService sends run summaries through shoutrrr URLs stored in
// settings. Delivery is best-effort; a broken webhook never fails a run.
type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// Enabled reports whether run notifications are switched on.
func (s *NotificationService) Enabled() bool {
	var setting models.Setting
	if err := s.DB.Where("key = ?", models.SettingNotifyOnRuns).First(&setting).Error; err != nil {
		return false
	}
	return strings.EqualFold(setting.Value, "true")
}

// urls returns the configured shoutrrr destination URLs.
func (s *NotificationService) urls() []string {
	var setting models.Setting
	if err := s.DB.Where("key = ?", models.SettingNotifyURLs).First(&setting).Error; err != nil {
		return nil
	}

	var out []string
	for _, u := range strings.Split(setting.Value, ",") {
		u = strings.TrimSpace(u)
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}

// SendRunSummary pushes a message to every configured destination.
func (s *NotificationService) SendRunSummary(title, message string) {
	if !s.Enabled() {
		return
	}

	for _, u := range s.urls() {
		if err := shoutrrr.Send(u, title+"\n"+message); err != nil {
			logger.WithComponent("notify").WithField("url_scheme", schemeOf(u)).
				WithError(err).Warn("notification delivery failed")
		}
	}
}

// schemeOf extracts the shoutrrr service scheme for logging without leaking
// tokens embedded in the URL.
func schemeOf(u string) string {
	if i := strings.Index(u, "://"); i > 0 {
		return u[:i]
	}
	return "unknown"
}
