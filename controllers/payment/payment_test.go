package paymentController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"edupath/config"
	"edupath/database"
	"edupath/middleware"
	"edupath/models"
	paymentValidator "edupath/validators/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// fakePaystack stands in for the provider; verifyStatus controls what the
// verify endpoint reports for any reference.
type fakePaystack struct {
	server       *httptest.Server
	verifyStatus string
	initFails    bool
	initCalls    int
}

func newFakePaystack() *fakePaystack {
	f := &fakePaystack{verifyStatus: "success"}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/transaction/initialize":
			f.initCalls++
			if f.initFails {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, `{"status":false,"message":"Invalid key"}`)
				return
			}
			fmt.Fprint(w, `{"status":true,"message":"Authorization URL created","data":{"authorization_url":"https://checkout.paystack.com/abc123","access_code":"abc123"}}`)
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/transaction/verify/"):
			fmt.Fprintf(w, `{"status":true,"message":"Verification successful","data":{"status":%q}}`, f.verifyStatus)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	return f
}

func setupTest(t *testing.T, paystackURL string) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		AuthJWTSecret:     testSecret,
		PaystackBaseURL:   paystackURL,
		PaystackSecretKey: "sk_test_xxx",
		TrialDays:         7,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/payment/initialize", middleware.JWTMiddleware, paymentValidator.InitializePayment(), InitializePayment)
	app.Post("/payment/verify", middleware.JWTMiddleware, paymentValidator.VerifyPayment(), VerifyPayment)
	app.Get("/payment/history", middleware.JWTMiddleware, GetPaymentHistory)
	return app
}

func authToken(t *testing.T, userID, email string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var bodyReader *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		bodyReader = bytes.NewReader(raw)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func TestInitializePayment_Success(t *testing.T) {
	fake := newFakePaystack()
	defer fake.server.Close()
	app := setupTest(t, fake.server.URL)

	userID := uuid.NewString()
	resp, body := doRequest(t, app, http.MethodPost, "/payment/initialize",
		authToken(t, userID, "learner@example.com"),
		map[string]interface{}{"amount": 500, "callback_url": "https://app.example.com/dashboard"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "https://checkout.paystack.com/abc123", data["authorization_url"])
	reference := data["reference"].(string)
	assert.True(t, strings.HasPrefix(reference, "PAY-"+userID[:8]+"-"))

	var payment models.Payment
	require.NoError(t, database.Database.Db.Where("reference = ?", reference).First(&payment).Error)
	assert.Equal(t, models.PaymentPending, payment.Status)
	assert.Equal(t, userID, payment.UserID)
	assert.Equal(t, 500.0, payment.Amount)
	assert.Equal(t, "NGN", payment.Currency)
}

func TestInitializePayment_MissingCallbackURL(t *testing.T) {
	fake := newFakePaystack()
	defer fake.server.Close()
	app := setupTest(t, fake.server.URL)

	resp, _ := doRequest(t, app, http.MethodPost, "/payment/initialize",
		authToken(t, uuid.NewString(), "learner@example.com"),
		map[string]interface{}{"amount": 500})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, fake.initCalls)

	var count int64
	database.Database.Db.Model(&models.Payment{}).Count(&count)
	assert.Zero(t, count)
}

func TestInitializePayment_GatewayRejection(t *testing.T) {
	fake := newFakePaystack()
	defer fake.server.Close()
	fake.initFails = true
	app := setupTest(t, fake.server.URL)

	resp, body := doRequest(t, app, http.MethodPost, "/payment/initialize",
		authToken(t, uuid.NewString(), "learner@example.com"),
		map[string]interface{}{"amount": 500, "callback_url": "https://app.example.com/dashboard"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid key", body["message"])

	// no payment row is written when the provider rejects
	var count int64
	database.Database.Db.Model(&models.Payment{}).Count(&count)
	assert.Zero(t, count)
}

func TestInitializePayment_RequiresAuth(t *testing.T) {
	fake := newFakePaystack()
	defer fake.server.Close()
	app := setupTest(t, fake.server.URL)

	resp, _ := doRequest(t, app, http.MethodPost, "/payment/initialize", "",
		map[string]interface{}{"amount": 500, "callback_url": "https://app.example.com/dashboard"})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func seedLockedEnrollmentWithPayment(t *testing.T, userID, reference string) {
	t.Helper()
	require.NoError(t, database.Database.Db.Create(&models.Enrollment{
		UserID:        userID,
		LearningTrack: models.TrackBackend,
		LearningMode:  "self_paced",
		AccessType:    models.AccessPaid,
		Status:        models.StatusLocked,
	}).Error)
	require.NoError(t, database.Database.Db.Create(&models.Payment{
		UserID:    userID,
		Reference: reference,
		Amount:    500,
		Currency:  "NGN",
		Provider:  "paystack",
		Status:    models.PaymentPending,
	}).Error)
}

func TestVerifyPayment_SuccessActivatesEnrollment(t *testing.T) {
	fake := newFakePaystack()
	defer fake.server.Close()
	app := setupTest(t, fake.server.URL)

	userID := uuid.NewString()
	reference := "PAY-" + userID[:8] + "-1700000000000"
	seedLockedEnrollmentWithPayment(t, userID, reference)
	token := authToken(t, userID, "learner@example.com")

	resp, body := doRequest(t, app, http.MethodPost, "/payment/verify", token,
		map[string]interface{}{"reference": reference})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["verified"])

	var payment models.Payment
	require.NoError(t, database.Database.Db.Where("reference = ?", reference).First(&payment).Error)
	assert.Equal(t, models.PaymentSuccess, payment.Status)
	assert.NotEmpty(t, payment.ProviderResponse)

	var enrollment models.Enrollment
	require.NoError(t, database.Database.Db.Where("user_id = ?", userID).First(&enrollment).Error)
	assert.Equal(t, models.StatusActive, enrollment.Status)
	assert.Nil(t, enrollment.FreeExpiresAt)
	// access type is not rewritten by verification
	assert.Equal(t, models.AccessPaid, enrollment.AccessType)
}

func TestVerifyPayment_IsIdempotent(t *testing.T) {
	fake := newFakePaystack()
	defer fake.server.Close()
	app := setupTest(t, fake.server.URL)

	userID := uuid.NewString()
	reference := "PAY-" + userID[:8] + "-1700000000001"
	seedLockedEnrollmentWithPayment(t, userID, reference)
	token := authToken(t, userID, "learner@example.com")

	for i := 0; i < 2; i++ {
		resp, body := doRequest(t, app, http.MethodPost, "/payment/verify", token,
			map[string]interface{}{"reference": reference})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, true, data["verified"])
	}

	var payment models.Payment
	require.NoError(t, database.Database.Db.Where("reference = ?", reference).First(&payment).Error)
	assert.Equal(t, models.PaymentSuccess, payment.Status)

	var enrollment models.Enrollment
	require.NoError(t, database.Database.Db.Where("user_id = ?", userID).First(&enrollment).Error)
	assert.Equal(t, models.StatusActive, enrollment.Status)
	assert.Nil(t, enrollment.FreeExpiresAt)
}

func TestVerifyPayment_DeclinedTransaction(t *testing.T) {
	fake := newFakePaystack()
	defer fake.server.Close()
	fake.verifyStatus = "abandoned"
	app := setupTest(t, fake.server.URL)

	userID := uuid.NewString()
	reference := "PAY-" + userID[:8] + "-1700000000002"
	seedLockedEnrollmentWithPayment(t, userID, reference)

	resp, body := doRequest(t, app, http.MethodPost, "/payment/verify",
		authToken(t, userID, "learner@example.com"),
		map[string]interface{}{"reference": reference})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, false, data["verified"])
	assert.Equal(t, "abandoned", data["status"])

	var payment models.Payment
	require.NoError(t, database.Database.Db.Where("reference = ?", reference).First(&payment).Error)
	assert.Equal(t, models.PaymentFailed, payment.Status)

	// the enrollment stays locked
	var enrollment models.Enrollment
	require.NoError(t, database.Database.Db.Where("user_id = ?", userID).First(&enrollment).Error)
	assert.Equal(t, models.StatusLocked, enrollment.Status)
}

func TestVerifyPayment_ScopedToOwner(t *testing.T) {
	fake := newFakePaystack()
	defer fake.server.Close()
	app := setupTest(t, fake.server.URL)

	owner := uuid.NewString()
	reference := "PAY-" + owner[:8] + "-1700000000003"
	seedLockedEnrollmentWithPayment(t, owner, reference)

	// someone else tries to verify the owner's reference
	resp, _ := doRequest(t, app, http.MethodPost, "/payment/verify",
		authToken(t, uuid.NewString(), "other@example.com"),
		map[string]interface{}{"reference": reference})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var payment models.Payment
	require.NoError(t, database.Database.Db.Where("reference = ?", reference).First(&payment).Error)
	assert.Equal(t, models.PaymentPending, payment.Status)
}

func TestVerifyPayment_MissingReference(t *testing.T) {
	fake := newFakePaystack()
	defer fake.server.Close()
	app := setupTest(t, fake.server.URL)

	resp, _ := doRequest(t, app, http.MethodPost, "/payment/verify",
		authToken(t, uuid.NewString(), "learner@example.com"),
		map[string]interface{}{"reference": "  "})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetPaymentHistory(t *testing.T) {
	fake := newFakePaystack()
	defer fake.server.Close()
	app := setupTest(t, fake.server.URL)

	userID := uuid.NewString()
	for i := 0; i < 3; i++ {
		require.NoError(t, database.Database.Db.Create(&models.Payment{
			UserID:    userID,
			Reference: fmt.Sprintf("PAY-%s-%d", userID[:8], i),
			Amount:    500,
			Status:    models.PaymentPending,
		}).Error)
	}

	resp, body := doRequest(t, app, http.MethodGet, "/payment/history?page=1&limit=2",
		authToken(t, userID, "learner@example.com"), nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["payments"], 2)
	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(t, 3.0, pagination["total"])
}
