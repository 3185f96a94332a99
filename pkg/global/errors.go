package global

import (
	"errors"
	"strings"
)

// Sentinel errors shared across the checkout and catalog flows. Handlers
// translate these into user-facing responses with errors.Is; nothing below
// this layer writes HTTP status codes.
var (
	// ErrNotFound covers unknown products, categories and orders, including a
	// payment callback that references a gateway order id we never issued.
	ErrNotFound = errors.New("not found")

	// ErrEmptyCart rejects a checkout with nothing to buy, before any
	// persistence happens.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrSignatureMismatch means the gateway callback signature did not match
	// the shared secret. Kept distinct from ErrNotFound so the user sees a
	// "payment could not be verified" message without internal detail.
	ErrSignatureMismatch = errors.New("payment signature mismatch")

	// ErrGatewayUnavailable wraps network or API failures talking to the
	// payment gateway. The order stays unpaid.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrInvalidQuantity rejects non-positive cart quantities.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// FieldErrors carries per-field validation failures so a handler can re-prompt
// the user instead of treating bad input as exceptional.
type FieldErrors []ValidationError

func (fe FieldErrors) Error() string {
	msgs := make([]string, len(fe))
	for i, e := range fe {
		msgs[i] = e.Field + ": " + e.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
