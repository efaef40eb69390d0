package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds application configuration
type Config struct {
	Port   string
	DBName string

	// AuthJWTSecret verifies access tokens issued by the identity provider.
	// This service never issues tokens itself.
	AuthJWTSecret string

	PaystackBaseURL   string
	PaystackSecretKey string

	SendgridAPIKey string
	EmailSender    string
	EmailFromName  string

	TrialDays int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		DBName: getEnv("DB_NAME", "edupath"),

		AuthJWTSecret: getEnv("AUTH_JWT_SECRET", "defaultSecret"),

		PaystackBaseURL:   getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		PaystackSecretKey: getEnv("PAYSTACK_SECRET_KEY", ""),

		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@edupath.africa"),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "EduPath"),

		TrialDays: getEnvInt("TRIAL_DAYS", 7),
	}

	// Validate critical configuration
	if AppConfig.AuthJWTSecret == "defaultSecret" {
		logrus.Warn("Using default AUTH_JWT_SECRET. Update it in your environment.")
	}
	if AppConfig.PaystackSecretKey == "" {
		logrus.Warn("PAYSTACK_SECRET_KEY is not set. Payment endpoints will fail.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		logrus.Errorf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
