package adminValidator

import (
	"edupath/middleware"
	"edupath/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type StatusRequest struct {
	Status string `json:"status"`
}

type AccessTypeRequest struct {
	AccessType string `json:"access_type"`
}

type ExtendTrialRequest struct {
	Days int `json:"days"`
}

type CreateCourseRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Track           string `json:"track"`
	FreeModuleLimit int    `json:"free_module_limit"`
}

type CreateModuleRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	OrderIndex    int    `json:"order_index"`
	IsFreePreview bool   `json:"is_free_preview"`
}

type CreateLessonRequest struct {
	Title                 string `json:"title"`
	LessonType            string `json:"lesson_type"`
	OrderIndex            int    `json:"order_index"`
	Content               string `json:"content"`
	VideoURL              string `json:"video_url"`
	FileURL               string `json:"file_url"`
	FileName              string `json:"file_name"`
	AssignmentDescription string `json:"assignment_description"`
}

var validTracks = map[string]bool{
	models.TrackFrontend:   true,
	models.TrackBackend:    true,
	models.TrackFullstack:  true,
	models.TrackFoundation: true,
}

var validLessonTypes = map[string]bool{
	"video":   true,
	"project": true,
	"quiz":    true,
}

func parseIDParam(c *fiber.Ctx, name string) (int, bool) {
	idStr := strings.TrimSpace(c.Params(name))
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// EnrollmentStatus validator middleware
func EnrollmentStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Enrollment ID!", nil)
		}

		reqData := new(StatusRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if reqData.Status != models.StatusActive && reqData.Status != models.StatusLocked {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Status must be active or locked!", nil)
		}

		c.Locals("enrollmentID", id)
		c.Locals("validatedStatus", reqData)
		return c.Next()
	}
}

// EnrollmentAccessType validator middleware
func EnrollmentAccessType() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Enrollment ID!", nil)
		}

		reqData := new(AccessTypeRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if reqData.AccessType != models.AccessFree && reqData.AccessType != models.AccessPaid {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Access type must be free or paid!", nil)
		}

		c.Locals("enrollmentID", id)
		c.Locals("validatedAccessType", reqData)
		return c.Next()
	}
}

// ExtendTrial validator middleware
func ExtendTrial() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Enrollment ID!", nil)
		}

		reqData := new(ExtendTrialRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if reqData.Days <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Days must be greater than 0!", nil)
		}

		c.Locals("enrollmentID", id)
		c.Locals("validatedExtendTrial", reqData)
		return c.Next()
	}
}

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if !validTracks[reqData.Track] {
			errors["track"] = "Invalid learning track!"
		}
		if reqData.FreeModuleLimit < 0 {
			errors["free_module_limit"] = "Free module limit cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// CreateModule validator middleware
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(CreateModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if strings.TrimSpace(reqData.Title) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Title is required!", nil)
		}

		c.Locals("courseID", id)
		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// CreateLesson validator middleware
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
		}

		reqData := new(CreateLessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.LessonType != "" && !validLessonTypes[reqData.LessonType] {
			errors["lesson_type"] = "Lesson type must be video, project or quiz!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("moduleID", id)
		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// CourseID validator middleware for publish/detail routes
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", id)
		return c.Next()
	}
}
