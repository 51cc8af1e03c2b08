package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/complysort/complysort/internal/config"
	"github.com/complysort/complysort/internal/models"
)

func setupRunTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Framework{},
		&models.Run{},
		&models.ClassificationRecord{},
		&models.Setting{},
	))
	return db
}

func runTestConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		SourceDir:       filepath.Join(dir, "inbox"),
		DestDir:         filepath.Join(dir, "frameworks"),
		AuditLogPath:    filepath.Join(dir, "classification_log.txt"),
		RollbackLogPath: filepath.Join(dir, "rollback_log.txt"),
	}
	require.NoError(t, os.MkdirAll(cfg.SourceDir, 0o755))
	return cfg
}

func seedFramework(t *testing.T, db *gorm.DB, name, keywords string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Framework{Name: name, Keywords: keywords, Enabled: true}).Error)
}

func TestRunService_Classify(t *testing.T) {
	db := setupRunTestDB(t)
	cfg := runTestConfig(t)
	seedFramework(t, db, "FFIEC", "ffiec")
	seedFramework(t, db, "NIST", "nist")

	require.NoError(t, os.WriteFile(filepath.Join(cfg.SourceDir, "ffiec_report.pdf"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.SourceDir, "misc.txt"), []byte("b"), 0o644))

	svc := NewRunService(db, cfg, nil, nil)
	run, err := svc.Classify(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.RunKindClassify, run.Kind)
	assert.Equal(t, models.RunStatusCompleted, run.Status)
	assert.Equal(t, 2, run.Processed)
	assert.Equal(t, 1, run.Matched)
	assert.Equal(t, 1, run.Copies)
	assert.Equal(t, 1, run.Unmatched)
	assert.Equal(t, 0, run.Failures)
	assert.NotNil(t, run.FinishedAt)

	// Every audit line is mirrored as a classification record.
	var records []models.ClassificationRecord
	require.NoError(t, db.Where("run_uuid = ?", run.UUID).Order("id").Find(&records).Error)
	require.Len(t, records, 2)
	assert.Equal(t, "COPY", records[0].Action)
	assert.Equal(t, "FFIEC", records[0].Framework)
	assert.Equal(t, "LEAVE", records[1].Action)

	// The copy landed where the record says.
	_, statErr := os.Stat(records[0].Dest)
	assert.NoError(t, statErr)
}

func TestRunService_Classify_NoFrameworks(t *testing.T) {
	db := setupRunTestDB(t)
	cfg := runTestConfig(t)

	svc := NewRunService(db, cfg, nil, nil)
	_, err := svc.Classify(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no enabled frameworks")
}

func TestRunService_Classify_MissingSourceFailsRun(t *testing.T) {
	db := setupRunTestDB(t)
	cfg := runTestConfig(t)
	cfg.SourceDir = filepath.Join(cfg.SourceDir, "does-not-exist")
	seedFramework(t, db, "NIST", "nist")

	svc := NewRunService(db, cfg, nil, nil)
	run, err := svc.Classify(context.Background())
	require.Error(t, err)
	require.NotNil(t, run)
	assert.Equal(t, models.RunStatusFailed, run.Status)
	assert.NotEmpty(t, run.Message)
}

func TestRunService_ClassifyThenRollback(t *testing.T) {
	db := setupRunTestDB(t)
	cfg := runTestConfig(t)
	seedFramework(t, db, "ISO", "iso")

	src := filepath.Join(cfg.SourceDir, "iso_27001.pdf")
	require.NoError(t, os.WriteFile(src, []byte("cert"), 0o644))

	svc := NewRunService(db, cfg, nil, nil)
	_, err := svc.Classify(context.Background())
	require.NoError(t, err)

	dest := filepath.Join(cfg.DestDir, "ISO", "iso_27001.pdf")
	_, statErr := os.Stat(dest)
	require.NoError(t, statErr)

	run, err := svc.Rollback(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.RunKindRollback, run.Kind)
	assert.Equal(t, models.RunStatusCompleted, run.Status)
	assert.Equal(t, 1, run.Processed) // one instruction attempted
	assert.Equal(t, 1, run.Matched)   // restored
	assert.Equal(t, 0, run.Failures)

	// The copy was moved back over the source; the source path still exists.
	_, statErr = os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(src)
	assert.NoError(t, statErr)
}

func TestRunService_Rollback_MissingLog(t *testing.T) {
	db := setupRunTestDB(t)
	cfg := runTestConfig(t)

	svc := NewRunService(db, cfg, nil, nil)
	run, err := svc.Rollback(context.Background())
	require.Error(t, err)
	require.NotNil(t, run)
	assert.Equal(t, models.RunStatusFailed, run.Status)
}

func TestRunService_HistoryAndGet(t *testing.T) {
	db := setupRunTestDB(t)
	cfg := runTestConfig(t)
	seedFramework(t, db, "NIST", "nist")

	svc := NewRunService(db, cfg, nil, nil)
	run, err := svc.Classify(context.Background())
	require.NoError(t, err)

	history, err := svc.History(10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, run.UUID, history[0].UUID)

	got, err := svc.Get(run.UUID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)

	_, err = svc.Get("nope")
	require.Error(t, err)
}
