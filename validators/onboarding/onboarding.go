package onboardingValidator

import (
	"edupath/middleware"
	"edupath/models"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// OnboardingRequest is the full multi-step onboarding payload
type OnboardingRequest struct {
	// Step 0: Personal Info
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Country  string `json:"country"`
	// Step 1: Tech Background
	ExperienceLevel string `json:"experience_level"`
	Device          string `json:"device"`
	InternetQuality string `json:"internet_quality"`
	// Step 2: Commitment
	HoursPerWeek string `json:"hours_per_week"`
	StudyTime    string `json:"study_time"`
	LearningGoal string `json:"learning_goal"`
	WhyLearn     string `json:"why_learn"`
	// Step 3: Discipline
	FollowsDeadlines      bool `json:"follows_deadlines"`
	PracticesConsistently bool `json:"practices_consistently"`
	OpenToFeedback        bool `json:"open_to_feedback"`
	// Step 4: Enrollment
	LearningTrack string `json:"learning_track"`
	LearningMode  string `json:"learning_mode"`
	AccessType    string `json:"access_type"`
	AgreeTerms    bool   `json:"agree_terms"`
}

// Helper to validate email format
func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

var validTracks = map[string]bool{
	models.TrackFrontend:   true,
	models.TrackBackend:    true,
	models.TrackFullstack:  true,
	models.TrackFoundation: true,
}

var validModes = map[string]bool{
	"self_paced": true,
	"live":       true,
	"mentorship": true,
	"project":    true,
	"hybrid":     true,
}

// CompleteOnboarding validator middleware
func CompleteOnboarding() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(OnboardingRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.FullName) == "" {
			errors["full_name"] = "Name is required!"
		}
		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}
		if strings.TrimSpace(reqData.Country) == "" {
			errors["country"] = "Country is required!"
		}
		if strings.TrimSpace(reqData.ExperienceLevel) == "" {
			errors["experience_level"] = "Experience level is required!"
		}
		if !validTracks[reqData.LearningTrack] {
			errors["learning_track"] = "Invalid learning track!"
		}
		if !validModes[reqData.LearningMode] {
			errors["learning_mode"] = "Invalid learning mode!"
		}
		if reqData.AccessType != models.AccessFree && reqData.AccessType != models.AccessPaid {
			errors["access_type"] = "Access type must be free or paid!"
		}
		if !reqData.AgreeTerms {
			errors["agree_terms"] = "You must accept the terms to continue!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedOnboarding", reqData)
		return c.Next()
	}
}
