package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complysort/complysort/internal/models"
)

func TestOpenAndMigrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	// Migrated tables accept writes.
	fw := models.Framework{Name: "NIST", Keywords: "nist", Enabled: true}
	require.NoError(t, db.Create(&fw).Error)
	assert.NotZero(t, fw.ID)

	var count int64
	require.NoError(t, db.Model(&models.Framework{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestOpen_BadPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "sub", "test.db"))
	assert.Error(t, err)
}
