package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/anupamdas/gokart/pkg/global"
	"github.com/anupamdas/gokart/pkg/models"
)

func paidOrder(t *testing.T) *models.Order {
	t.Helper()
	priceA, err := models.MoneyFromString("100.00")
	require.NoError(t, err)
	priceB, err := models.MoneyFromString("50.00")
	require.NoError(t, err)
	rate, err := models.MoneyFromString("18.00")
	require.NoError(t, err)

	return &models.Order{
		ID:         bson.NewObjectID(),
		FirstName:  "Asha",
		LastName:   "Rao",
		Email:      "asha@example.com",
		Address:    "42 MG Road",
		City:       "Bengaluru",
		PostalCode: "560001",
		Items: []models.OrderItem{
			{ProductID: bson.NewObjectID(), Name: "Product A", UnitPrice: priceA, Quantity: 2},
			{ProductID: bson.NewObjectID(), Name: "Product B", UnitPrice: priceB, Quantity: 1},
		},
		RazorpayOrderID:   "order_remote_1",
		RazorpayPaymentID: "pay_42",
		Paid:              true,
		GSTRate:           rate,
		CreatedAt:         time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC),
	}
}

func testBuilder() Builder {
	return Builder{
		StoreName:      "GoKart Store",
		GSTIN:          "29ABCDE1234F1Z5",
		CurrencySymbol: "Rs.",
	}
}

func TestBuildRejectsUnpaidOrder(t *testing.T) {
	order := paidOrder(t)
	order.Paid = false

	_, err := testBuilder().Build(order)
	assert.ErrorIs(t, err, global.ErrNotFound)
}

func TestBuildDocument(t *testing.T) {
	order := paidOrder(t)
	doc, err := testBuilder().Build(order)
	require.NoError(t, err)

	assert.Equal(t, "GoKart Store", doc.StoreName)
	assert.Equal(t, "29ABCDE1234F1Z5", doc.GSTIN)
	assert.Equal(t, "INV-"+order.ID.Hex(), doc.Number)
	assert.Equal(t, "Mar 14, 2026", doc.Date)
	assert.Equal(t, "pay_42", doc.PaymentRef)

	require.Len(t, doc.BilledTo, 3)
	assert.Equal(t, "Asha Rao", doc.BilledTo[0])
	assert.Equal(t, "Bengaluru, 560001", doc.BilledTo[2])

	require.Len(t, doc.Lines, 2)
	assert.Equal(t, "Product A", doc.Lines[0].Description)
	assert.Equal(t, "Rs. 100.00", doc.Lines[0].UnitPrice)
	assert.Equal(t, 2, doc.Lines[0].Quantity)
	assert.Equal(t, "Rs. 200.00", doc.Lines[0].LineTotal)

	assert.Equal(t, "Rs. 250.00", doc.Subtotal)
	assert.Equal(t, "GST (18.00%)", doc.GSTLabel)
	assert.Equal(t, "Rs. 45.00", doc.GSTAmount)
	assert.Equal(t, "Rs. 295.00", doc.GrandTotal)
}

func TestBuildFallsBackOnMissingPaymentRef(t *testing.T) {
	order := paidOrder(t)
	order.RazorpayPaymentID = ""

	doc, err := testBuilder().Build(order)
	require.NoError(t, err)
	assert.Equal(t, "N/A", doc.PaymentRef)
}

func TestPDFRendererProducesPDF(t *testing.T) {
	doc, err := testBuilder().Build(paidOrder(t))
	require.NoError(t, err)

	data, err := PDFRenderer{}.Render(doc)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}
