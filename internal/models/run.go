package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RunKind distinguishes classification sweeps from rollback replays.
type RunKind string

const (
	RunKindClassify RunKind = "classify"
	RunKindRollback RunKind = "rollback"
)

// RunStatus tracks run lifecycle.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run records one classification or rollback invocation with its counters.
type Run struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	UUID       string     `json:"uuid" gorm:"uniqueIndex"`
	Kind       RunKind    `json:"kind"`
	Status     RunStatus  `json:"status"`
	Processed  int        `json:"processed"`
	Matched    int        `json:"matched"`
	Copies     int        `json:"copies"`
	Unmatched  int        `json:"unmatched"`
	Failures   int        `json:"failures"`
	Message    string     `json:"message,omitempty" gorm:"type:text"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (r *Run) BeforeCreate(tx *gorm.DB) (err error) {
	if r.UUID == "" {
		r.UUID = uuid.NewString()
	}
	return
}
