package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anupamdas/gokart/pkg/global"
	"github.com/anupamdas/gokart/pkg/models"
)

func (a *API) GetCart(c *gin.Context) {
	view, err := a.Checkout.CartView(c.Request.Context(), sessionID(c))
	if err != nil {
		log.Printf("Error loading cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(view))
}

func (a *API) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	ctx := c.Request.Context()

	product, err := a.Catalog.ProductByID(ctx, req.ProductID)
	if errors.Is(err, global.ErrNotFound) {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
			{Field: "product_id", Message: "No product exists with this id", Code: "not_found"},
		}))
		return
	}
	if err != nil {
		log.Printf("Error fetching product for cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to add to cart", nil))
		return
	}

	if err := a.Cart.Add(ctx, sessionID(c), product, req.Quantity, req.Replace); err != nil {
		if errors.Is(err, global.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid quantity", []global.ValidationError{
				{Field: "quantity", Message: "Quantity must be a positive integer", Code: "invalid_value"},
			}))
			return
		}
		log.Printf("Error adding to cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to add to cart", nil))
		return
	}

	view, err := a.Checkout.CartView(ctx, sessionID(c))
	if err != nil {
		log.Printf("Error loading cart after add: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(view))
}

// RemoveFromCart deletes one product's line. Removing something that is not
// in the cart succeeds quietly.
func (a *API) RemoveFromCart(c *gin.Context) {
	ctx := c.Request.Context()

	if err := a.Cart.Remove(ctx, sessionID(c), c.Param("productId")); err != nil {
		log.Printf("Error removing from cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to remove from cart", nil))
		return
	}

	view, err := a.Checkout.CartView(ctx, sessionID(c))
	if err != nil {
		log.Printf("Error loading cart after remove: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(view))
}

func (a *API) ClearCart(c *gin.Context) {
	if err := a.Cart.Clear(c.Request.Context(), sessionID(c)); err != nil {
		log.Printf("Error clearing cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to clear cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"message": "Cart cleared"}))
}
