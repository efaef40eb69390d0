package paymentController

import (
	"errors"
	"fmt"
	"time"

	"edupath/database"
	"edupath/middleware"
	"edupath/models"
	"edupath/utils"
	paymentValidator "edupath/validators/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InitializePayment starts a Paystack transaction for the caller and
// records the pending payment. The provider is called first: if it rejects
// the transaction no payment row is written.
func InitializePayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	email, _ := c.Locals("email").(string)
	if email == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPayment").(*paymentValidator.InitializeRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Unique per attempt; the user prefix plus millisecond timestamp keeps
	// collisions out of practical reach.
	reference := fmt.Sprintf("PAY-%s-%d", userID[:8], time.Now().UnixMilli())

	authorizationURL, err := utils.InitializePaystackTransaction(email, reqData.Amount, reference, reqData.CallbackURL, userID)
	if err != nil {
		var gatewayErr *utils.GatewayError
		if errors.As(err, &gatewayErr) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, gatewayErr.Message, nil)
		}
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid payment request!", nil)
	}

	payment := models.Payment{
		UserID:    userID,
		Reference: reference,
		Amount:    reqData.Amount,
		Currency:  "NGN",
		Provider:  "paystack",
		Status:    models.PaymentPending,
	}
	if err := database.Database.Db.Create(&payment).Error; err != nil {
		logrus.Errorf("Error recording pending payment %s: %v", reference, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record payment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment initialized successfully!", fiber.Map{
		"authorization_url": authorizationURL,
		"reference":         reference,
	})
}

// VerifyPayment reconciles a transaction's final state from Paystack into
// the payment and enrollment rows. Safe to call repeatedly for the same
// reference: both branches are plain column writes.
func VerifyPayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedVerify").(*paymentValidator.VerifyRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// A payment belongs to exactly the user who initialized it
	var payment models.Payment
	if err := db.Where("reference = ? AND user_id = ? AND is_deleted = ?", reqData.Reference, userID, false).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to look up payment!", nil)
	}

	providerStatus, rawBody, err := utils.VerifyPaystackTransaction(reqData.Reference)
	if err != nil {
		var gatewayErr *utils.GatewayError
		if errors.As(err, &gatewayErr) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, gatewayErr.Message, nil)
		}
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid verification request!", nil)
	}

	if providerStatus != "success" {
		if err := db.Model(&models.Payment{}).
			Where("reference = ? AND user_id = ?", reqData.Reference, userID).
			Updates(map[string]interface{}{
				"status":            models.PaymentFailed,
				"provider_response": datatypes.JSON(rawBody),
			}).Error; err != nil {
			logrus.Errorf("Error marking payment %s failed: %v", reqData.Reference, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update payment!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment not successful.", fiber.Map{
			"verified": false,
			"status":   providerStatus,
		})
	}

	tx := db.Begin()

	if err := tx.Model(&models.Payment{}).
		Where("reference = ? AND user_id = ?", reqData.Reference, userID).
		Updates(map[string]interface{}{
			"status":            models.PaymentSuccess,
			"provider_response": datatypes.JSON(rawBody),
		}).Error; err != nil {
		tx.Rollback()
		logrus.Errorf("Error marking payment %s successful: %v", reqData.Reference, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update payment!", nil)
	}

	// Activate the enrollment and drop the trial clock. The access type is
	// left as stored: flipping free to paid here is a product decision, not
	// a reconciliation step.
	if err := tx.Model(&models.Enrollment{}).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Updates(map[string]interface{}{
			"status":          models.StatusActive,
			"free_expires_at": nil,
		}).Error; err != nil {
		tx.Rollback()
		logrus.Errorf("Error activating enrollment for user %s: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Payment verified but failed to activate account!", nil)
	}

	tx.Commit()

	go sendReceipt(userID, payment)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment verified successfully!", fiber.Map{
		"verified": true,
		"status":   "success",
	})
}

func sendReceipt(userID string, payment models.Payment) {
	var profile models.LearnerProfile
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).First(&profile).Error; err != nil {
		logrus.Errorf("Error fetching profile for receipt email, user %s: %v", userID, err)
		return
	}
	utils.SendPaymentReceiptEmail(profile.Email, profile.FullName, payment.Amount, payment.Currency, payment.Reference)
}

// GetPaymentHistory returns the caller's payment attempts, newest first
func GetPaymentHistory(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db
	query := db.Model(&models.Payment{}).Where("user_id = ? AND is_deleted = ?", userID, false)

	var total int64
	query.Count(&total)

	var payments []models.Payment
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", fiber.Map{
		"payments": payments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
