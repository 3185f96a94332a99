package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anupamdas/gokart/pkg/global"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	client := New(Config{KeyID: "rzp_test_key", KeySecret: "supersecret"})

	t.Run("valid signature accepted", func(t *testing.T) {
		sig := sign("supersecret", "order_123", "pay_456")
		assert.True(t, client.VerifySignature("order_123", "pay_456", sig))
	})

	t.Run("signature over different payload rejected", func(t *testing.T) {
		sig := sign("supersecret", "order_123", "pay_456")
		assert.False(t, client.VerifySignature("order_123", "pay_OTHER", sig))
	})

	t.Run("signature under wrong secret rejected", func(t *testing.T) {
		sig := sign("wrongsecret", "order_123", "pay_456")
		assert.False(t, client.VerifySignature("order_123", "pay_456", sig))
	})

	t.Run("empty signature rejected", func(t *testing.T) {
		assert.False(t, client.VerifySignature("order_123", "pay_456", ""))
	})
}

func TestCreateIntent(t *testing.T) {
	t.Run("posts amount and returns gateway order id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/orders", r.URL.Path)

			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "rzp_test_key", user)
			assert.Equal(t, "supersecret", pass)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, float64(29500), body["amount"])
			assert.Equal(t, "INR", body["currency"])
			assert.Equal(t, float64(1), body["payment_capture"])

			json.NewEncoder(w).Encode(map[string]string{"id": "order_remote_1"})
		}))
		defer server.Close()

		client := New(Config{KeyID: "rzp_test_key", KeySecret: "supersecret", BaseURL: server.URL})
		id, err := client.CreateIntent(context.Background(), 29500, "INR")
		require.NoError(t, err)
		assert.Equal(t, "order_remote_1", id)
	})

	t.Run("non-2xx surfaces as gateway unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := New(Config{KeyID: "k", KeySecret: "s", BaseURL: server.URL})
		_, err := client.CreateIntent(context.Background(), 100, "INR")
		assert.ErrorIs(t, err, global.ErrGatewayUnavailable)
	})

	t.Run("connection failure surfaces as gateway unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // nothing listening anymore

		client := New(Config{KeyID: "k", KeySecret: "s", BaseURL: server.URL})
		_, err := client.CreateIntent(context.Background(), 100, "INR")
		assert.ErrorIs(t, err, global.ErrGatewayUnavailable)
	})

	t.Run("response without order id rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{})
		}))
		defer server.Close()

		client := New(Config{KeyID: "k", KeySecret: "s", BaseURL: server.URL})
		_, err := client.CreateIntent(context.Background(), 100, "INR")
		assert.ErrorIs(t, err, global.ErrGatewayUnavailable)
	})
}
