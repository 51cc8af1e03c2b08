package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/complysort/complysort/internal/catalog"
	"github.com/complysort/complysort/internal/config"
	"github.com/complysort/complysort/internal/journal"
	"github.com/complysort/complysort/internal/logger"
	"github.com/complysort/complysort/internal/models"
	"github.com/complysort/complysort/internal/organizer"
)

// RunService triggers classification and rollback runs and records their
// history. One run executes at a time; the classification path itself is
// strictly sequential.
type RunService struct {
	DB            *gorm.DB
	Cfg           config.Config
	Annotator     organizer.Annotator
	Notifications *NotificationService
}

// NewRunService wires a run service. Annotator may be nil to disable
// note-service integration.
func NewRunService(db *gorm.DB, cfg config.Config, annotator organizer.Annotator, ns *NotificationService) *RunService {
	return &RunService{DB: db, Cfg: cfg, Annotator: annotator, Notifications: ns}
}

// Classify walks the configured source directory once and classifies every
// file in it.
func (s *RunService) Classify(ctx context.Context) (*models.Run, error) {
	var frameworks []models.Framework
	if err := s.DB.Where("enabled = ?", true).Order("id").Find(&frameworks).Error; err != nil {
		return nil, fmt.Errorf("load frameworks: %w", err)
	}
	cat := catalog.FromFrameworks(frameworks)
	if cat.Len() == 0 {
		return nil, fmt.Errorf("no enabled frameworks in registry")
	}

	run := models.Run{
		Kind:      models.RunKindClassify,
		Status:    models.RunStatusRunning,
		StartedAt: time.Now(),
	}
	if err := s.DB.Create(&run).Error; err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}

	jw := journal.NewWriter(s.Cfg.AuditLogPath, s.Cfg.RollbackLogPath)
	org := organizer.New(cat, jw, s.Annotator, s.Cfg.DestDir)
	org.Observer = func(out organizer.Outcome) {
		rec := models.ClassificationRecord{
			RunUUID:   run.UUID,
			Action:    string(out.Action),
			Framework: out.Framework,
			Src:       out.Src,
			Dest:      out.Dest,
			NoteID:    out.NoteID,
		}
		if out.Err != nil {
			rec.Error = out.Err.Error()
		}
		// Best effort; the text journal stays authoritative.
		s.DB.Create(&rec)
	}

	sum, walkErr := org.Walk(ctx, s.Cfg.SourceDir)

	s.finishRun(&run, sum.Processed, sum.Matched, sum.Copies, sum.Unmatched, sum.Failures, walkErr)
	s.notify(&run)

	if walkErr != nil {
		return &run, fmt.Errorf("classification run %s: %w", run.UUID, walkErr)
	}
	return &run, nil
}

// Rollback replays the rollback journal in reverse order.
func (s *RunService) Rollback(ctx context.Context) (*models.Run, error) {
	run := models.Run{
		Kind:      models.RunKindRollback,
		Status:    models.RunStatusRunning,
		StartedAt: time.Now(),
	}
	if err := s.DB.Create(&run).Error; err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}

	res, err := journal.NewReplayer(s.Cfg.RollbackLogPath).Replay()

	// Rollback runs reuse the counters: processed=attempted,
	// matched=restored, unmatched=skipped no-ops.
	s.finishRun(&run, res.Attempted, res.Restored, 0, res.Skipped, res.Failed, err)
	s.notify(&run)

	if err != nil {
		return &run, fmt.Errorf("rollback run %s: %w", run.UUID, err)
	}
	return &run, nil
}

func (s *RunService) finishRun(run *models.Run, processed, matched, copies, unmatched, failures int, err error) {
	now := time.Now()
	run.Processed = processed
	run.Matched = matched
	run.Copies = copies
	run.Unmatched = unmatched
	run.Failures = failures
	run.FinishedAt = &now
	run.Status = models.RunStatusCompleted
	if err != nil {
		run.Status = models.RunStatusFailed
		run.Message = err.Error()
	}

	if dbErr := s.DB.Save(run).Error; dbErr != nil {
		logger.WithComponent("runs").WithError(dbErr).Error("persisting run result failed")
	}
}

func (s *RunService) notify(run *models.Run) {
	if s.Notifications == nil {
		return
	}
	title := fmt.Sprintf("ComplySort %s run %s", run.Kind, run.Status)
	msg := fmt.Sprintf("processed=%d matched=%d copies=%d unmatched=%d failures=%d",
		run.Processed, run.Matched, run.Copies, run.Unmatched, run.Failures)
	s.Notifications.SendRunSummary(title, msg)
}

// History returns runs, newest first.
func (s *RunService) History(limit int) ([]models.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	var runs []models.Run
	err := s.DB.Order("started_at desc").Limit(limit).Find(&runs).Error
	return runs, err
}

// Get fetches one run by UUID.
func (s *RunService) Get(uuid string) (*models.Run, error) {
	var run models.Run
	if err := s.DB.Where("uuid = ?", uuid).First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}
