package models

import "time"

// Setting is a key/value runtime setting, e.g. notification URLs.
type Setting struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Key       string    `json:"key" gorm:"uniqueIndex"`
	Value     string    `json:"value" gorm:"type:text"`
	Category  string    `json:"category"`
	Type      string    `json:"type"` // "string", "bool", "int"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Well-known setting keys.
const (
	SettingNotifyURLs      = "notify.shoutrrr_urls" // comma-separated shoutrrr URLs
	SettingNotifyOnRuns    = "notify.on_runs"
	SettingCatalogSeededAt = "catalog.seeded_at"
)
