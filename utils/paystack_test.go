package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"edupath/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPaystack(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config.AppConfig = &config.Config{
		PaystackBaseURL:   server.URL,
		PaystackSecretKey: "sk_test_abc",
	}
	return server
}

func TestInitializePaystackTransaction(t *testing.T) {
	var gotBody map[string]interface{}
	var gotAuth string

	setupPaystack(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]interface{}{
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code":       "abc123",
				"reference":         gotBody["reference"],
			},
		})
	})

	authURL, err := InitializePaystackTransaction(
		"learner@example.com", 150.50, "PAY-12345678-1700000000000",
		"https://app.example.com/callback", "user-1")

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc123", authURL)
	assert.Equal(t, "Bearer sk_test_abc", gotAuth)

	// amount converted to kobo
	assert.Equal(t, float64(15050), gotBody["amount"])
	assert.Equal(t, "learner@example.com", gotBody["email"])
	metadata := gotBody["metadata"].(map[string]interface{})
	assert.Equal(t, "user-1", metadata["user_id"])
}

func TestInitializePaystackTransaction_Rejected(t *testing.T) {
	setupPaystack(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  false,
			"message": "Invalid key",
		})
	})

	_, err := InitializePaystackTransaction(
		"learner@example.com", 100, "PAY-x", "https://cb", "user-1")

	var gatewayErr *GatewayError
	require.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, "Invalid key", gatewayErr.Message)
}

func TestInitializePaystackTransaction_MissingInputs(t *testing.T) {
	config.AppConfig = &config.Config{PaystackBaseURL: "http://paystack.invalid"}

	cases := []struct {
		name     string
		email    string
		amount   float64
		ref, cb  string
	}{
		{"empty email", "", 100, "PAY-x", "https://cb"},
		{"zero amount", "a@b.c", 0, "PAY-x", "https://cb"},
		{"empty reference", "a@b.c", 100, "", "https://cb"},
		{"empty callback", "a@b.c", 100, "PAY-x", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := InitializePaystackTransaction(tc.email, tc.amount, tc.ref, tc.cb, "user-1")
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestVerifyPaystackTransaction(t *testing.T) {
	setupPaystack(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/verify/PAY-ref-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Verification successful",
			"data":    map[string]interface{}{"status": "success", "amount": 15050},
		})
	})

	status, raw, err := VerifyPaystackTransaction("PAY-ref-1")

	require.NoError(t, err)
	assert.Equal(t, "success", status)
	assert.Contains(t, string(raw), "Verification successful")
}

func TestVerifyPaystackTransaction_Declined(t *testing.T) {
	setupPaystack(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Verification successful",
			"data":    map[string]interface{}{"status": "abandoned"},
		})
	})

	status, _, err := VerifyPaystackTransaction("PAY-ref-2")

	// a declined transaction is a result, not an error
	require.NoError(t, err)
	assert.Equal(t, "abandoned", status)
}

func TestVerifyPaystackTransaction_UnknownReference(t *testing.T) {
	setupPaystack(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  false,
			"message": "Transaction reference not found",
		})
	})

	status, _, err := VerifyPaystackTransaction("PAY-nope")

	require.NoError(t, err)
	assert.Equal(t, "failed", status)
}

func TestVerifyPaystackTransaction_ProviderDown(t *testing.T) {
	setupPaystack(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, _, err := VerifyPaystackTransaction("PAY-ref-3")

	var gatewayErr *GatewayError
	assert.ErrorAs(t, err, &gatewayErr)
}

func TestVerifyPaystackTransaction_EmptyReference(t *testing.T) {
	_, _, err := VerifyPaystackTransaction("")
	assert.True(t, errors.Is(err, ErrValidation))
}
