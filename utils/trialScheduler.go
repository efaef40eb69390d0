package utils

import (
	"time"

	"edupath/database"
	"edupath/models"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// InitializeTrialScheduler sets up the daily trial-expiry reminder job.
// Expired trials need no sweep: access is computed per request. The job
// only notifies learners whose trial is about to run out.
func InitializeTrialScheduler() {
	logrus.Info("[TRIAL-SCHEDULER] Initializing trial scheduler...")

	c := cron.New()

	// Run daily at 9 AM to remind learners with trials ending soon
	c.AddFunc("0 9 * * *", func() {
		logrus.Info("[TRIAL-SCHEDULER] Running daily trial check...")
		ProcessExpiringTrials()
	})

	c.Start()
	logrus.Info("[TRIAL-SCHEDULER] Trial scheduler started - runs daily at 9 AM")
}

// ProcessExpiringTrials sends reminder emails for free trials expiring
// within the next 2 days and marks them so each learner is mailed once.
func ProcessExpiringTrials() {
	db := database.Database.Db
	windowStart := time.Now()
	windowEnd := now.With(windowStart.AddDate(0, 0, 2)).EndOfDay()

	var expiring []models.Enrollment
	if err := db.
		Where("access_type = ? AND status = ? AND reminder_sent = false AND is_deleted = false", models.AccessFree, models.StatusActive).
		Where("free_expires_at BETWEEN ? AND ?", windowStart, windowEnd).
		Find(&expiring).Error; err != nil {
		logrus.Errorf("[TRIAL-SCHEDULER] Error fetching expiring trials: %v", err)
		return
	}

	logrus.Infof("[TRIAL-SCHEDULER] Found %d trials expiring soon", len(expiring))

	for _, enrollment := range expiring {
		var profile models.LearnerProfile
		if err := db.Where("user_id = ? AND is_deleted = false", enrollment.UserID).First(&profile).Error; err != nil {
			logrus.Errorf("[TRIAL-SCHEDULER] Error fetching profile for user %s: %v", enrollment.UserID, err)
			continue
		}

		if err := SendTrialReminderEmail(profile.Email, profile.FullName, *enrollment.FreeExpiresAt); err != nil {
			continue
		}

		if err := db.Model(&models.Enrollment{}).Where("id = ?", enrollment.ID).
			Update("reminder_sent", true).Error; err != nil {
			logrus.Errorf("[TRIAL-SCHEDULER] Error marking reminder sent for enrollment %d: %v", enrollment.ID, err)
		}
	}
}
