// Package payment talks to the Razorpay-style payment gateway: it creates
// remote payment intents and verifies the HMAC signature the gateway sends
// back with its confirmation callback.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/anupamdas/gokart/pkg/global"
)

const defaultBaseURL = "https://api.razorpay.com"

type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string // override for tests; defaults to the live API
}

// Client is constructed once at startup with immutable credentials and passed
// to whoever needs it. There is no package-level instance.
type Client struct {
	keyID     string
	keySecret string
	baseURL   string
	http      *http.Client
}

func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		baseURL:   baseURL,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

// KeyID is the publishable key the browser widget needs.
func (c *Client) KeyID() string {
	return c.keyID
}

type createIntentRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	PaymentCapture int    `json:"payment_capture"`
}

type createIntentResponse struct {
	ID string `json:"id"`
}

// CreateIntent registers a payment intent for the given amount in minor
// currency units and returns the gateway order id. One outbound call, no
// local state.
func (c *Client) CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error) {
	body, err := json.Marshal(createIntentRequest{
		Amount:         amountMinor,
		Currency:       currency,
		PaymentCapture: 1,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", global.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: gateway returned status %d", global.ErrGatewayUnavailable, resp.StatusCode)
	}

	var intent createIntentResponse
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return "", fmt.Errorf("%w: malformed gateway response: %v", global.ErrGatewayUnavailable, err)
	}
	if intent.ID == "" {
		return "", fmt.Errorf("%w: gateway response missing order id", global.ErrGatewayUnavailable)
	}
	return intent.ID, nil
}

// VerifySignature checks that signature is the hex HMAC-SHA256 of
// "orderID|paymentID" under the shared secret. Constant-time compare.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
