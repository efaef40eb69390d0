package onboardingRoutes

import (
	controllers "edupath/controllers/onboarding"
	"edupath/middleware"
	validators "edupath/validators/onboarding"

	"github.com/gofiber/fiber/v2"
)

// SetupOnboardingRoutes sets up onboarding and learner dashboard routes
func SetupOnboardingRoutes(app *fiber.App) {
	onboardingGroup := app.Group("/onboarding")
	onboardingGroup.Post("/complete", middleware.JWTMiddleware, validators.CompleteOnboarding(), controllers.CompleteOnboarding)

	learnerGroup := app.Group("/learner")
	learnerGroup.Get("/me", middleware.JWTMiddleware, controllers.GetLearnerData)
}
