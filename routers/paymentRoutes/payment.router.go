package paymentRoutes

import (
	controllers "edupath/controllers/payment"
	"edupath/middleware"
	validators "edupath/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up the payment initialization and verification routes
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Post("/initialize", middleware.JWTMiddleware, validators.InitializePayment(), controllers.InitializePayment)
	paymentGroup.Post("/verify", middleware.JWTMiddleware, validators.VerifyPayment(), controllers.VerifyPayment)
	paymentGroup.Get("/history", middleware.JWTMiddleware, controllers.GetPaymentHistory)
}
