package courseRoutes

import (
	controllers "edupath/controllers/course"
	"edupath/middleware"
	validators "edupath/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	courseGroup.Get("/list", middleware.JWTMiddleware, controllers.GetCourses)
	courseGroup.Post("/lesson/:id/complete", middleware.JWTMiddleware, validators.MarkLessonComplete(), controllers.MarkLessonComplete)
	courseGroup.Get("/progress", middleware.JWTMiddleware, controllers.GetProgress)
}
