package utils

import (
	"testing"
	"time"

	"edupath/config"
	"edupath/database"
	"edupath/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSchedulerDB(t *testing.T) {
	t.Helper()

	// empty API key makes the email sender skip delivery but still succeed
	config.AppConfig = &config.Config{TrialDays: 7}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
}

func seedTrial(t *testing.T, userID string, expiresAt time.Time, reminderSent bool) {
	t.Helper()
	db := database.Database.Db
	require.NoError(t, db.Create(&models.LearnerProfile{
		UserID:   userID,
		Email:    userID + "@example.com",
		FullName: "Learner " + userID,
	}).Error)
	require.NoError(t, db.Create(&models.Enrollment{
		UserID:        userID,
		LearningTrack: models.TrackBackend,
		LearningMode:  "self_paced",
		AccessType:    models.AccessFree,
		Status:        models.StatusActive,
		FreeExpiresAt: &expiresAt,
		ReminderSent:  reminderSent,
	}).Error)
}

func reminderSent(t *testing.T, userID string) bool {
	t.Helper()
	var enrollment models.Enrollment
	require.NoError(t, database.Database.Db.Where("user_id = ?", userID).First(&enrollment).Error)
	return enrollment.ReminderSent
}

func TestProcessExpiringTrials(t *testing.T) {
	setupSchedulerDB(t)

	seedTrial(t, "soon", time.Now().Add(24*time.Hour), false)
	seedTrial(t, "far", time.Now().Add(6*24*time.Hour), false)
	seedTrial(t, "already-reminded", time.Now().Add(24*time.Hour), true)

	ProcessExpiringTrials()

	assert.True(t, reminderSent(t, "soon"))
	assert.False(t, reminderSent(t, "far"))
	assert.True(t, reminderSent(t, "already-reminded"))
}

func TestProcessExpiringTrials_IsMailedOnce(t *testing.T) {
	setupSchedulerDB(t)
	seedTrial(t, "soon", time.Now().Add(24*time.Hour), false)

	ProcessExpiringTrials()
	ProcessExpiringTrials()

	assert.True(t, reminderSent(t, "soon"))
}
