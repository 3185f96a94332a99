package models

import (
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/anupamdas/gokart/pkg/global"
)

// OrderItem is a line item embedded in an order. UnitPrice is the snapshot
// taken at order time and never changes afterwards.
type OrderItem struct {
	ProductID bson.ObjectID `bson:"product_id" json:"product_id"`
	Name      string        `bson:"name" json:"name"`
	UnitPrice Money         `bson:"unit_price" json:"unit_price"`
	Quantity  int           `bson:"quantity" json:"quantity"`
}

// Cost returns the pre-tax line total.
func (i OrderItem) Cost() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order represents a customer order. Items are embedded so the order and its
// line items are created in a single write. The paid flag transitions
// false -> true exactly once, via a verified gateway callback.
type Order struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID bson.ObjectID `bson:"customer_id,omitempty" json:"customer_id,omitempty"`
	FirstName  string        `bson:"first_name" json:"first_name"`
	LastName   string        `bson:"last_name" json:"last_name"`
	Email      string        `bson:"email" json:"email"`
	Address    string        `bson:"address" json:"address"`
	City       string        `bson:"city" json:"city"`
	PostalCode string        `bson:"postal_code" json:"postal_code"`

	Items []OrderItem `bson:"items" json:"items"`

	RazorpayOrderID   string `bson:"razorpay_order_id,omitempty" json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string `bson:"razorpay_payment_id,omitempty" json:"razorpay_payment_id,omitempty"`
	RazorpaySignature string `bson:"razorpay_signature,omitempty" json:"-"`
	Paid              bool   `bson:"paid" json:"paid"`

	GSTRate Money `bson:"gst_rate" json:"gst_rate"`

	// AmountMinor is the grand total in minor currency units (paise). Stored
	// as an integer alongside the decimal fields so revenue aggregations stay
	// exact.
	AmountMinor int64 `bson:"amount_minor" json:"amount_minor"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// TotalBeforeTax sums unit_price * quantity across all items.
func (o *Order) TotalBeforeTax() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Cost())
	}
	return total
}

// GSTAmount is the pre-tax total times gst_rate/100, rounded to 2 decimal
// places.
func (o *Order) GSTAmount() decimal.Decimal {
	return o.TotalBeforeTax().
		Mul(o.GSTRate.Decimal).
		Div(decimal.NewFromInt(100)).
		Round(2)
}

// TotalCost is the tax-inclusive grand total.
func (o *Order) TotalCost() decimal.Decimal {
	return o.TotalBeforeTax().Add(o.GSTAmount())
}

// TotalMinorUnits returns the grand total in minor currency units, as the
// gateway expects.
func (o *Order) TotalMinorUnits() int64 {
	return o.TotalCost().Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func (o *Order) SetTimestamps() {
	now := time.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
}

// CheckoutRequest carries the customer fields submitted at checkout.
type CheckoutRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	CustomerID string `json:"customer_id,omitempty"`
}

// Validate checks required fields and email format, returning per-field
// errors. Runs before any persistence so invalid input has no side effects.
func (r *CheckoutRequest) Validate() global.FieldErrors {
	var errs global.FieldErrors

	required := []struct {
		field, value string
	}{
		{"first_name", r.FirstName},
		{"last_name", r.LastName},
		{"email", r.Email},
		{"address", r.Address},
		{"city", r.City},
		{"postal_code", r.PostalCode},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, global.ValidationError{
				Field:   f.field,
				Message: "this field is required",
				Code:    "required",
			})
		}
	}

	if strings.TrimSpace(r.Email) != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			errs = append(errs, global.ValidationError{
				Field:   "email",
				Message: "must be a valid email address",
				Code:    "invalid_format",
			})
		}
	}

	return errs
}
