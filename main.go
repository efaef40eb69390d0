package main

import (
	"edupath/config"
	"edupath/database"
	adminRoutes "edupath/routers/adminRoutes"
	courseRoutes "edupath/routers/courseRoutes"
	onboardingRoutes "edupath/routers/onboardingRoutes"
	paymentRoutes "edupath/routers/paymentRoutes"
	"edupath/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	utils.InitializeTrialScheduler()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	onboardingRoutes.SetupOnboardingRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	logrus.Infof("Server is running on port %s", config.AppConfig.Port)
	logrus.Fatal(app.Listen(":" + config.AppConfig.Port))
}
