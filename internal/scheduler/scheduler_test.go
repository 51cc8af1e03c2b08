package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/complysort/complysort/internal/config"
	"github.com/complysort/complysort/internal/services"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	runs := services.NewRunService(db, config.Config{}, nil, nil)
	return New(runs)
}

func TestStart_EmptySpecDisablesScheduling(t *testing.T) {
	s := newTestScheduler(t)
	assert.NoError(t, s.Start(""))
}

func TestStart_InvalidSpec(t *testing.T) {
	s := newTestScheduler(t)
	assert.Error(t, s.Start("not a cron spec"))
}

func TestStart_ValidSpec(t *testing.T) {
	s := newTestScheduler(t)
	require.NoError(t, s.Start("@every 1h"))
	s.Stop()
}
