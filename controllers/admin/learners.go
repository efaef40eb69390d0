package adminController

import (
	"errors"
	"time"

	"edupath/database"
	"edupath/middleware"
	"edupath/models"
	adminValidator "edupath/validators/admin"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GetLearners returns every learner profile joined with their enrollment
// and most recent payment, plus the dashboard stat counters.
func GetLearners(c *fiber.Ctx) error {
	db := database.Database.Db

	var profiles []models.LearnerProfile
	if err := db.Where("is_deleted = ?", false).Order("created_at desc").Find(&profiles).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch learners!", nil)
	}

	var enrollments []models.Enrollment
	db.Where("is_deleted = ?", false).Find(&enrollments)

	var payments []models.Payment
	db.Where("is_deleted = ?", false).Order("created_at desc").Find(&payments)

	enrollmentByUser := make(map[string]models.Enrollment, len(enrollments))
	for _, e := range enrollments {
		enrollmentByUser[e.UserID] = e
	}
	// payments are ordered newest first; keep the first seen per user
	latestPaymentByUser := make(map[string]models.Payment)
	for _, p := range payments {
		if _, seen := latestPaymentByUser[p.UserID]; !seen {
			latestPaymentByUser[p.UserID] = p
		}
	}

	learners := make([]fiber.Map, 0, len(profiles))
	stats := fiber.Map{}
	var active, locked, free, paid int
	for _, profile := range profiles {
		row := fiber.Map{"profile": profile}
		if enrollment, ok := enrollmentByUser[profile.UserID]; ok {
			row["enrollment"] = enrollment
			switch enrollment.Status {
			case models.StatusActive:
				active++
			case models.StatusLocked:
				locked++
			}
			switch enrollment.AccessType {
			case models.AccessFree:
				free++
			case models.AccessPaid:
				paid++
			}
		}
		if payment, ok := latestPaymentByUser[profile.UserID]; ok {
			row["payment"] = payment
		}
		learners = append(learners, row)
	}

	stats["total"] = len(profiles)
	stats["active"] = active
	stats["locked"] = locked
	stats["free"] = free
	stats["paid"] = paid

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Learners fetched successfully!", fiber.Map{
		"learners": learners,
		"stats":    stats,
	})
}

func findEnrollment(c *fiber.Ctx) (*models.Enrollment, error) {
	enrollmentID := c.Locals("enrollmentID").(int)

	var enrollment models.Enrollment
	err := database.Database.Db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// UpdateEnrollmentStatus applies a direct admin override of active/locked
func UpdateEnrollmentStatus(c *fiber.Ctx) error {
	reqData := c.Locals("validatedStatus").(*adminValidator.StatusRequest)

	enrollment, err := findEnrollment(c)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to look up enrollment!", nil)
	}

	if err := database.Database.Db.Model(enrollment).Update("status", reqData.Status).Error; err != nil {
		logrus.Errorf("Error updating enrollment %d status: %v", enrollment.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment status updated!", enrollment)
}

// UpdateAccessType flips free/paid without touching status or trial expiry
func UpdateAccessType(c *fiber.Ctx) error {
	reqData := c.Locals("validatedAccessType").(*adminValidator.AccessTypeRequest)

	enrollment, err := findEnrollment(c)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to look up enrollment!", nil)
	}

	if err := database.Database.Db.Model(enrollment).Update("access_type", reqData.AccessType).Error; err != nil {
		logrus.Errorf("Error updating enrollment %d access type: %v", enrollment.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Access type updated!", enrollment)
}

// ExtendTrial pushes the trial expiry out by N days. A lapsed or missing
// expiry restarts from now rather than compounding from the old date.
func ExtendTrial(c *fiber.Ctx) error {
	reqData := c.Locals("validatedExtendTrial").(*adminValidator.ExtendTrialRequest)

	enrollment, err := findEnrollment(c)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to look up enrollment!", nil)
	}

	base := time.Now()
	if enrollment.FreeExpiresAt != nil && enrollment.FreeExpiresAt.After(base) {
		base = *enrollment.FreeExpiresAt
	}
	newExpiry := base.Add(time.Duration(reqData.Days) * 24 * time.Hour)

	if err := database.Database.Db.Model(enrollment).Updates(map[string]interface{}{
		"free_expires_at": newExpiry,
		"reminder_sent":   false,
	}).Error; err != nil {
		logrus.Errorf("Error extending trial for enrollment %d: %v", enrollment.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to extend trial!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Trial extended successfully!", fiber.Map{
		"enrollment_id":   enrollment.ID,
		"free_expires_at": newExpiry,
	})
}

// GetPayments returns all payment attempts for the back-office, paginated
func GetPayments(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	status := c.Query("status")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db
	query := db.Model(&models.Payment{}).Where("is_deleted = ?", false)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var payments []models.Payment
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", fiber.Map{
		"payments": payments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
