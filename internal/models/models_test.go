package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openModelsDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Framework{}, &Run{}, &ClassificationRecord{}, &User{}))
	return db
}

func TestBeforeCreate_AssignsUUIDs(t *testing.T) {
	db := openModelsDB(t)

	fw := Framework{Name: "NIST", Keywords: "nist"}
	require.NoError(t, db.Create(&fw).Error)
	assert.NotEmpty(t, fw.UUID)

	run := Run{Kind: RunKindClassify, Status: RunStatusRunning, StartedAt: time.Now()}
	require.NoError(t, db.Create(&run).Error)
	assert.NotEmpty(t, run.UUID)

	rec := ClassificationRecord{RunUUID: run.UUID, Action: "COPY"}
	require.NoError(t, db.Create(&rec).Error)
	assert.NotEmpty(t, rec.UUID)
}

func TestFramework_KeywordList(t *testing.T) {
	fw := Framework{Keywords: "FFIEC, Federal Financial Institutions ,,  "}
	assert.Equal(t, []string{"ffiec", "federal financial institutions"}, fw.KeywordList())
}

func TestFramework_SetKeywordList(t *testing.T) {
	var fw Framework
	fw.SetKeywordList([]string{" ISO 27001 ", "", "International Standards Organization"})
	assert.Equal(t, "iso 27001,international standards organization", fw.Keywords)
}

func TestFramework_NameUnique(t *testing.T) {
	db := openModelsDB(t)

	require.NoError(t, db.Create(&Framework{Name: "CIS", Keywords: "cis controls"}).Error)
	err := db.Create(&Framework{Name: "CIS", Keywords: "other"}).Error
	assert.Error(t, err)
}

func TestUser_PasswordRoundTrip(t *testing.T) {
	var u User
	require.NoError(t, u.SetPassword("correct horse"))
	assert.NotEqual(t, "correct horse", u.PasswordHash)
	assert.True(t, u.CheckPassword("correct horse"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestUser_IsLocked(t *testing.T) {
	var u User
	assert.False(t, u.IsLocked())

	past := time.Now().Add(-time.Minute)
	u.LockedUntil = &past
	assert.False(t, u.IsLocked())

	future := time.Now().Add(time.Minute)
	u.LockedUntil = &future
	assert.True(t, u.IsLocked())
}
