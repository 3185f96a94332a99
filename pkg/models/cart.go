package models

import "github.com/shopspring/decimal"

// Cart models for the Redis session-backed cart

// CartLine is one product's quantity and price snapshot within a session's
// cart. UnitPrice is frozen at add-time and is not updated when the catalog
// price changes.
type CartLine struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartItemView is a cart line joined with live catalog data for display.
type CartItemView struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Slug        string          `json:"slug"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type CartView struct {
	Items     []CartItemView  `json:"items"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Replace   bool   `json:"replace"`
}
