package adminRoutes

import (
	controllers "edupath/controllers/admin"
	"edupath/middleware"
	validators "edupath/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up all back-office routes. Every route resolves the
// caller's admin capability once via middleware.AdminOnly.
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	// Learner management
	adminGroup.Get("/learners", controllers.GetLearners)
	adminGroup.Put("/enrollment/:id/status", validators.EnrollmentStatus(), controllers.UpdateEnrollmentStatus)
	adminGroup.Put("/enrollment/:id/access-type", validators.EnrollmentAccessType(), controllers.UpdateAccessType)
	adminGroup.Post("/enrollment/:id/extend-trial", validators.ExtendTrial(), controllers.ExtendTrial)

	// Payments
	adminGroup.Get("/payments", controllers.GetPayments)

	// Course authoring
	adminGroup.Post("/course", validators.CreateCourse(), controllers.CreateCourse)
	adminGroup.Get("/course/list", controllers.ListCourses)
	adminGroup.Post("/course/:id/publish", validators.CourseID(), controllers.PublishCourse)
	adminGroup.Post("/course/:id/module", validators.CreateModule(), controllers.CreateModule)
	adminGroup.Post("/module/:id/lesson", validators.CreateLesson(), controllers.CreateLesson)
}
