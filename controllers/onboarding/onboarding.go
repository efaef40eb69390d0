package onboardingController

import (
	"time"

	"edupath/config"
	"edupath/database"
	"edupath/entitlement"
	"edupath/middleware"
	"edupath/models"
	"edupath/utils"
	onboardingValidator "edupath/validators/onboarding"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CompleteOnboarding persists the whole onboarding wizard in one shot and
// creates the learner's enrollment. This is the only place an enrollment is
// created and the only place the trial expiry is initially set.
func CompleteOnboarding(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedOnboarding").(*onboardingValidator.OnboardingRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if user is already enrolled
	var existing models.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = ?", userID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled!", nil)
	}

	enrollment := models.Enrollment{
		UserID:        userID,
		LearningTrack: reqData.LearningTrack,
		LearningMode:  reqData.LearningMode,
		AccessType:    reqData.AccessType,
		Status:        models.StatusActive,
	}
	if reqData.AccessType == models.AccessPaid {
		// Paid access stays locked until payment is verified
		enrollment.Status = models.StatusLocked
	} else {
		expiry := time.Now().Add(time.Duration(config.AppConfig.TrialDays) * 24 * time.Hour)
		enrollment.FreeExpiresAt = &expiry
	}

	tx := db.Begin()

	if err := upsertProfile(tx, userID, reqData); err != nil {
		tx.Rollback()
		logrus.Errorf("Error saving onboarding records for user %s: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save onboarding data!", nil)
	}

	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		logrus.Errorf("Error creating enrollment for user %s: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create enrollment!", nil)
	}

	tx.Commit()

	go utils.SendWelcomeEmail(reqData.Email, reqData.FullName, reqData.AccessType, config.AppConfig.TrialDays)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Onboarding completed successfully!", enrollment)
}

// upsertProfile writes the four onboarding record types, replacing any
// earlier partial submission for the same user.
func upsertProfile(tx *gorm.DB, userID string, reqData *onboardingValidator.OnboardingRequest) error {
	var profile models.LearnerProfile
	if err := tx.Where("user_id = ? AND is_deleted = ?", userID, false).First(&profile).Error; err != nil {
		profile = models.LearnerProfile{UserID: userID}
	}
	profile.FullName = reqData.FullName
	profile.Email = reqData.Email
	profile.Country = reqData.Country
	if err := tx.Save(&profile).Error; err != nil {
		return err
	}

	var tech models.TechBackground
	if err := tx.Where("user_id = ? AND is_deleted = ?", userID, false).First(&tech).Error; err != nil {
		tech = models.TechBackground{UserID: userID}
	}
	tech.ExperienceLevel = reqData.ExperienceLevel
	tech.Device = reqData.Device
	tech.InternetQuality = reqData.InternetQuality
	if err := tx.Save(&tech).Error; err != nil {
		return err
	}

	var commitment models.LearningCommitment
	if err := tx.Where("user_id = ? AND is_deleted = ?", userID, false).First(&commitment).Error; err != nil {
		commitment = models.LearningCommitment{UserID: userID}
	}
	commitment.HoursPerWeek = reqData.HoursPerWeek
	commitment.StudyTime = reqData.StudyTime
	commitment.LearningGoal = reqData.LearningGoal
	commitment.WhyLearn = reqData.WhyLearn
	if err := tx.Save(&commitment).Error; err != nil {
		return err
	}

	var discipline models.DisciplineCheck
	if err := tx.Where("user_id = ? AND is_deleted = ?", userID, false).First(&discipline).Error; err != nil {
		discipline = models.DisciplineCheck{UserID: userID}
	}
	discipline.FollowsDeadlines = reqData.FollowsDeadlines
	discipline.PracticesConsistently = reqData.PracticesConsistently
	discipline.OpenToFeedback = reqData.OpenToFeedback
	return tx.Save(&discipline).Error
}

// GetLearnerData returns the caller's profile, enrollment and the computed
// access state the dashboard renders from.
func GetLearnerData(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var profile models.LearnerProfile
	db.Where("user_id = ? AND is_deleted = ?", userID, false).First(&profile)

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = ?", userID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Learner data fetched successfully!", fiber.Map{
			"profile":        profile,
			"enrollment":     nil,
			"has_enrollment": false,
		})
	}

	snapshot := entitlement.SnapshotOf(enrollment)
	state := entitlement.Evaluate(snapshot, time.Now())

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Learner data fetched successfully!", fiber.Map{
		"profile":        profile,
		"enrollment":     enrollment,
		"has_enrollment": true,
		"access_state":   state,
		"has_access":     state.HasAccess(),
		"days_remaining": entitlement.DaysRemaining(snapshot, time.Now()),
	})
}
