package paymentValidator

import (
	"edupath/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type InitializeRequest struct {
	Amount      float64 `json:"amount"`
	CallbackURL string  `json:"callback_url"`
}

type VerifyRequest struct {
	Reference string `json:"reference"`
}

// InitializePayment validator middleware
func InitializePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(InitializeRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Amount <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "amount is required!", nil)
		}
		if strings.TrimSpace(reqData.CallbackURL) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "callback_url is required!", nil)
		}

		c.Locals("validatedPayment", reqData)
		return c.Next()
	}
}

// VerifyPayment validator middleware
func VerifyPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(VerifyRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Reference = strings.TrimSpace(reqData.Reference)
		if reqData.Reference == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "reference is required!", nil)
		}

		c.Locals("validatedVerify", reqData)
		return c.Next()
	}
}
