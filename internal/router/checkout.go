package router

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anupamdas/gokart/pkg/checkout"
	"github.com/anupamdas/gokart/pkg/global"
	"github.com/anupamdas/gokart/pkg/models"
)

// PostCheckout submits the cart as an order and returns what the browser
// needs to launch the gateway widget.
func (a *API) PostCheckout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	result, err := a.Checkout.Checkout(c.Request.Context(), sessionID(c), req)
	if err != nil {
		var fieldErrs global.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid checkout details", fieldErrs))
		case errors.Is(err, global.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Your cart is empty", nil))
		case errors.Is(err, global.ErrGatewayUnavailable):
			log.Printf("Gateway intent creation failed: %v", err)
			c.JSON(http.StatusBadGateway, global.ErrorResponse("Payment service is currently unavailable, please try again", nil))
		default:
			log.Printf("Checkout failed: %v", err)
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Checkout failed", nil))
		}
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(result))
}

// VerifyPayment handles the gateway's confirmation callback. Signature
// mismatch, unknown order and internal failure each get a distinct response;
// a repeated callback for an already-paid order succeeds without side
// effects.
func (a *API) VerifyPayment(c *gin.Context) {
	var req checkout.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid verification payload", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	order, err := a.Checkout.ConfirmPayment(c.Request.Context(), sessionID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, global.ErrSignatureMismatch):
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "failure",
				"message": "Payment verification failed (signature mismatch).",
			})
		case errors.Is(err, global.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "failure",
				"message": "No order matches this payment reference.",
			})
		default:
			log.Printf("Payment verification error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "An internal error occurred.",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"order_id":     order.ID.Hex(),
		"redirect_url": fmt.Sprintf("/api/orders/%s", order.ID.Hex()),
	})
}

// GetPaidOrder backs the payment success page: the order summary with its
// totals, only once payment is confirmed.
func (a *API) GetPaidOrder(c *gin.Context) {
	order, err := a.Checkout.PaidOrder(c.Request.Context(), c.Param("id"))
	if errors.Is(err, global.ErrNotFound) {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found", []global.ValidationError{
			{Field: "id", Message: "No paid order exists with this id", Code: "not_found"},
		}))
		return
	}
	if err != nil {
		log.Printf("Error fetching order: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch order", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"order":       order,
		"subtotal":    order.TotalBeforeTax().StringFixed(2),
		"gst_amount":  order.GSTAmount().StringFixed(2),
		"grand_total": order.TotalCost().StringFixed(2),
	}))
}

// DownloadInvoice streams the PDF invoice for a paid order.
func (a *API) DownloadInvoice(c *gin.Context) {
	order, err := a.Checkout.PaidOrder(c.Request.Context(), c.Param("id"))
	if errors.Is(err, global.ErrNotFound) {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found", []global.ValidationError{
			{Field: "id", Message: "No paid order exists with this id", Code: "not_found"},
		}))
		return
	}
	if err != nil {
		log.Printf("Error fetching order for invoice: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch order", nil))
		return
	}

	doc, err := a.Invoices.Build(order)
	if err != nil {
		log.Printf("Error building invoice: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to generate invoice", nil))
		return
	}

	pdfBytes, err := a.Renderer.Render(doc)
	if err != nil {
		log.Printf("Error rendering invoice PDF: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to generate invoice", nil))
		return
	}

	filename := fmt.Sprintf("invoice_%s.pdf", order.ID.Hex())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
