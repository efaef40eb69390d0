package utils

import (
	"edupath/config"
	"errors"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// ErrValidation is returned when a required input is missing or empty.
var ErrValidation = errors.New("missing required input")

// GatewayError carries the payment provider's own failure message.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway error: %s", e.Message)
}

type paystackInitResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type paystackVerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status string `json:"status"`
	} `json:"data"`
}

func paystackClient() *resty.Client {
	return resty.New().
		SetBaseURL(config.AppConfig.PaystackBaseURL).
		SetTimeout(10 * time.Second).
		SetAuthToken(config.AppConfig.PaystackSecretKey)
}

// InitializePaystackTransaction starts a transaction and returns the
// authorization URL the learner is redirected to. Amount is in major
// currency units; Paystack expects kobo, so it is converted here. The user
// id rides along as metadata for later reconciliation.
func InitializePaystackTransaction(email string, amount float64, reference, callbackURL, userID string) (string, error) {
	if email == "" || reference == "" || callbackURL == "" || amount <= 0 {
		return "", ErrValidation
	}

	var result paystackInitResponse
	resp, err := paystackClient().R().
		SetBody(map[string]interface{}{
			"email":        email,
			"amount":       int64(math.Round(amount * 100)),
			"reference":    reference,
			"callback_url": callbackURL,
			"metadata": map[string]string{
				"user_id": userID,
			},
		}).
		SetResult(&result).
		SetError(&result).
		Post("/transaction/initialize")
	if err != nil {
		logrus.Errorf("Paystack initialize request failed: %v", err)
		return "", &GatewayError{Message: "could not reach payment provider"}
	}

	if resp.IsError() || !result.Status {
		message := result.Message
		if message == "" {
			message = resp.Status()
		}
		logrus.Warnf("Paystack initialize rejected reference %s: %s", reference, message)
		return "", &GatewayError{Message: message}
	}

	return result.Data.AuthorizationURL, nil
}

// VerifyPaystackTransaction asks Paystack for the final state of a
// transaction. It returns the provider's transaction status ("success",
// "failed", "abandoned", ...) together with the raw response body, which is
// stored against the payment row for audit. A well-formed declined
// transaction is not an error.
func VerifyPaystackTransaction(reference string) (string, []byte, error) {
	if reference == "" {
		return "", nil, ErrValidation
	}

	var result paystackVerifyResponse
	resp, err := paystackClient().R().
		SetResult(&result).
		SetError(&result).
		Get("/transaction/verify/" + url.PathEscape(reference))
	if err != nil {
		logrus.Errorf("Paystack verify request failed for %s: %v", reference, err)
		return "", nil, &GatewayError{Message: "could not reach payment provider"}
	}

	if resp.StatusCode() >= 500 {
		return "", nil, &GatewayError{Message: resp.Status()}
	}

	status := result.Data.Status
	if !result.Status && status == "" {
		status = "failed"
	}

	return status, resp.Body(), nil
}
