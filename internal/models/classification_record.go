package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassificationRecord is the queryable mirror of one audit-log line.
// The text logs stay the source of truth for rollback; these rows exist so
// the API can filter and page run history without parsing log files.
type ClassificationRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UUID      string    `json:"uuid" gorm:"uniqueIndex"`
	RunUUID   string    `json:"run_uuid" gorm:"index"`
	Action    string    `json:"action"` // COPY or LEAVE
	Framework string    `json:"framework,omitempty"`
	Src       string    `json:"src"`
	Dest      string    `json:"dest"`
	NoteID    string    `json:"note_id,omitempty"`
	Error     string    `json:"error,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *ClassificationRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.UUID == "" {
		r.UUID = uuid.NewString()
	}
	return
}
