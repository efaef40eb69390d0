package adminController

import (
	"errors"

	"edupath/database"
	"edupath/middleware"
	courseModels "edupath/models/course"
	adminValidator "edupath/validators/admin"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateCourse creates an unpublished course for a track
func CreateCourse(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCourse").(*adminValidator.CreateCourseRequest)

	course := courseModels.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		Track:       reqData.Track,
	}
	if reqData.FreeModuleLimit > 0 {
		course.FreeModuleLimit = reqData.FreeModuleLimit
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		logrus.Errorf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course created successfully!", course)
}

// CreateModule adds a module to an existing course
func CreateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	reqData := c.Locals("validatedModule").(*adminValidator.CreateModuleRequest)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to look up course!", nil)
	}

	module := courseModels.Module{
		CourseID:      course.ID,
		Title:         reqData.Title,
		Description:   reqData.Description,
		OrderIndex:    reqData.OrderIndex,
		IsFreePreview: reqData.IsFreePreview,
	}

	if err := database.Database.Db.Create(&module).Error; err != nil {
		logrus.Errorf("Error creating module for course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module created successfully!", module)
}

// CreateLesson adds a lesson to an existing module
func CreateLesson(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)
	reqData := c.Locals("validatedLesson").(*adminValidator.CreateLessonRequest)

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to look up module!", nil)
	}

	lesson := courseModels.Lesson{
		ModuleID:              module.ID,
		CourseID:              module.CourseID,
		Title:                 reqData.Title,
		LessonType:            reqData.LessonType,
		OrderIndex:            reqData.OrderIndex,
		Content:               reqData.Content,
		VideoURL:              reqData.VideoURL,
		FileURL:               reqData.FileURL,
		FileName:              reqData.FileName,
		AssignmentDescription: reqData.AssignmentDescription,
	}
	if lesson.LessonType == "" {
		lesson.LessonType = "video"
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		logrus.Errorf("Error creating lesson for module %d: %v", module.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson created successfully!", lesson)
}

// PublishCourse makes a course visible to learners
func PublishCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to look up course!", nil)
	}

	if err := database.Database.Db.Model(&course).Update("is_published", true).Error; err != nil {
		logrus.Errorf("Error publishing course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// ListCourses returns all courses for the back-office, drafts included
func ListCourses(c *fiber.Ctx) error {
	var courses []courseModels.Course
	if err := database.Database.Db.
		Where("is_deleted = ?", false).
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index asc")
		}).
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}
