// Package invoice assembles a structured tax invoice for a paid order and
// hands it to a renderer for page layout.
package invoice

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/anupamdas/gokart/pkg/global"
	"github.com/anupamdas/gokart/pkg/models"
)

// Line is one row of the item table, amounts pre-formatted.
type Line struct {
	Description string
	UnitPrice   string
	Quantity    int
	LineTotal   string
}

// Document is the structured invoice; layout is the renderer's concern.
type Document struct {
	StoreName  string
	GSTIN      string
	Number     string // INV-<order id>
	Date       string
	PaymentRef string

	BilledTo []string

	Lines []Line

	Subtotal   string
	GSTLabel   string
	GSTAmount  string
	GrandTotal string
}

// Renderer turns a document into bytes. The PDF implementation lives in this
// package; swapping the layout engine does not touch document assembly.
type Renderer interface {
	Render(doc *Document) ([]byte, error)
}

// Builder assembles invoice documents with the issuer's identity.
type Builder struct {
	StoreName      string
	GSTIN          string
	CurrencySymbol string
}

// Build produces the invoice document for a paid order. Unpaid orders are
// rejected: invoices only exist for confirmed payment.
func (b Builder) Build(order *models.Order) (*Document, error) {
	if !order.Paid {
		return nil, global.ErrNotFound
	}

	paymentRef := order.RazorpayPaymentID
	if paymentRef == "" {
		paymentRef = "N/A"
	}

	doc := &Document{
		StoreName:  b.StoreName,
		GSTIN:      b.GSTIN,
		Number:     "INV-" + order.ID.Hex(),
		Date:       order.CreatedAt.Format("Jan 02, 2006"),
		PaymentRef: paymentRef,
		BilledTo: []string{
			order.FirstName + " " + order.LastName,
			order.Address,
			order.City + ", " + order.PostalCode,
		},
		Subtotal:   b.amount(order.TotalBeforeTax()),
		GSTLabel:   fmt.Sprintf("GST (%s%%)", order.GSTRate.StringFixed(2)),
		GSTAmount:  b.amount(order.GSTAmount()),
		GrandTotal: b.amount(order.TotalCost()),
	}

	doc.Lines = make([]Line, len(order.Items))
	for i, item := range order.Items {
		doc.Lines[i] = Line{
			Description: item.Name,
			UnitPrice:   b.amount(item.UnitPrice.Decimal),
			Quantity:    item.Quantity,
			LineTotal:   b.amount(item.Cost()),
		}
	}

	return doc, nil
}

func (b Builder) amount(d decimal.Decimal) string {
	return b.CurrencySymbol + " " + d.StringFixed(2)
}
