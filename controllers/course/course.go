package courseController

import (
	"errors"
	"time"

	"edupath/database"
	"edupath/entitlement"
	"edupath/middleware"
	"edupath/models"
	courseModels "edupath/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GetCourses returns the published courses for the learner's track with
// per-module accessibility computed from the current entitlement. Lesson
// bodies are withheld for modules the learner cannot open.
func GetCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = ?", userID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please complete onboarding first!", nil)
	}

	state := entitlement.Evaluate(entitlement.SnapshotOf(enrollment), time.Now())

	var courses []courseModels.Course
	if err := db.
		Where("track = ? AND is_published = ? AND is_deleted = ?", enrollment.LearningTrack, true, false).
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index asc")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index asc")
		}).
		Order("created_at asc").
		Find(&courses).Error; err != nil {
		logrus.Errorf("Error fetching courses for user %s: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		moduleViews := make([]fiber.Map, 0, len(course.Modules))
		for idx, module := range course.Modules {
			accessible := entitlement.ModuleVisible(state, idx, module.IsFreePreview, course.FreeModuleLimit)
			moduleViews = append(moduleViews, fiber.Map{
				"id":              module.ID,
				"title":           module.Title,
				"description":     module.Description,
				"order_index":     module.OrderIndex,
				"is_free_preview": module.IsFreePreview,
				"accessible":      accessible,
				"lessons":         lessonViews(module.Lessons, accessible),
			})
		}
		result = append(result, fiber.Map{
			"id":          course.ID,
			"title":       course.Title,
			"description": course.Description,
			"track":       course.Track,
			"modules":     moduleViews,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses":      result,
		"access_state": state,
		"has_access":   state.HasAccess(),
	})
}

// lessonViews withholds lesson content for inaccessible modules: titles
// stay visible so the learner can see what an upgrade unlocks.
func lessonViews(lessons []courseModels.Lesson, accessible bool) []fiber.Map {
	views := make([]fiber.Map, 0, len(lessons))
	for _, lesson := range lessons {
		view := fiber.Map{
			"id":          lesson.ID,
			"title":       lesson.Title,
			"lesson_type": lesson.LessonType,
			"order_index": lesson.OrderIndex,
		}
		if accessible {
			view["content"] = lesson.Content
			view["video_url"] = lesson.VideoURL
			view["file_url"] = lesson.FileURL
			view["file_name"] = lesson.FileName
			view["assignment_description"] = lesson.AssignmentDescription
		}
		views = append(views, view)
	}
	return views
}

// MarkLessonComplete upserts a completion record for the caller. Learners
// without access get a successful no-op: the UI never offers the action,
// but the server still refuses the write.
func MarkLessonComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to look up lesson!", nil)
	}

	var enrollment models.Enrollment
	hasAccess := false
	if err := db.Where("user_id = ? AND is_deleted = ?", userID, false).First(&enrollment).Error; err == nil {
		hasAccess = entitlement.Evaluate(entitlement.SnapshotOf(enrollment), time.Now()).HasAccess()
	}

	if !hasAccess {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson progress up to date!", fiber.Map{
			"recorded": false,
		})
	}

	var progress courseModels.StudentProgress
	err := db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lessonID, false).First(&progress).Error
	if err == nil {
		// Marking twice is a no-op
		if !progress.Completed {
			progress.Completed = true
			progress.ProgressPercentage = 100
			if err := db.Save(&progress).Error; err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record progress!", nil)
			}
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as complete!", fiber.Map{
			"recorded": true,
		})
	}

	progress = courseModels.StudentProgress{
		UserID:             userID,
		LessonID:           uint(lessonID),
		Completed:          true,
		ProgressPercentage: 100,
	}
	if err := db.Create(&progress).Error; err != nil {
		logrus.Errorf("Error recording progress for user %s lesson %d: %v", userID, lessonID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as complete!", fiber.Map{
		"recorded": true,
	})
}

// GetProgress returns the ids of lessons the caller has completed
func GetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var completed []courseModels.StudentProgress
	if err := database.Database.Db.
		Where("user_id = ? AND completed = ? AND is_deleted = ?", userID, true, false).
		Find(&completed).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	lessonIDs := make([]uint, 0, len(completed))
	for _, p := range completed {
		lessonIDs = append(lessonIDs, p.LessonID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"completed_lessons": lessonIDs,
	})
}
