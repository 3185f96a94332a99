// Package checkout owns the cart-to-order reconciliation: it turns a session
// cart into a persisted order with a gateway payment intent, and settles the
// order when the gateway's signed confirmation callback arrives.
package checkout

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/anupamdas/gokart/pkg/global"
	"github.com/anupamdas/gokart/pkg/models"
)

type CartStore interface {
	Lines(ctx context.Context, sessionID string) ([]models.CartLine, error)
	Clear(ctx context.Context, sessionID string) error
}

type CatalogStore interface {
	ProductsByIDs(ctx context.Context, ids []string) (map[string]*models.Product, error)
}

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	SetPaidIfUnpaid(ctx context.Context, gatewayOrderID, paymentID, signature string) (*models.Order, bool, error)
}

type Gateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

type Service struct {
	Cart    CartStore
	Catalog CatalogStore
	Orders  OrderStore
	Gateway Gateway

	GSTRate  decimal.Decimal
	Currency string
}

// CheckoutResult is what the browser needs to launch the gateway widget.
type CheckoutResult struct {
	OrderID         string `json:"order_id"`
	RazorpayOrderID string `json:"razorpay_order_id"`
	AmountMinor     int64  `json:"amount"`
	Currency        string `json:"currency"`
	KeyID           string `json:"razorpay_key_id"`
}

// VerifyRequest carries the three fields the gateway posts back after the
// shopper completes payment.
type VerifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// Checkout validates the customer fields, snapshots the cart into an order,
// requests a gateway payment intent for the tax-inclusive total and persists
// the order in a single write. The gateway call happens before the insert, so
// a failed intent leaves nothing behind to roll back.
func (s *Service) Checkout(ctx context.Context, sessionID string, req models.CheckoutRequest) (*CheckoutResult, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, errs
	}

	lines, err := s.Cart.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, global.ErrEmptyCart
	}

	ids := make([]string, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}
	products, err := s.Catalog.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			// Product vanished from the catalog since it was added; the cart
			// iteration contract is to skip it.
			continue
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: models.NewMoney(line.UnitPrice),
			Quantity:  line.Quantity,
		})
	}
	if len(items) == 0 {
		return nil, global.ErrEmptyCart
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	order := &models.Order{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		Items:      items,
		GSTRate:    models.NewMoney(s.GSTRate),
	}
	if req.CustomerID != "" {
		if customerID, err := bson.ObjectIDFromHex(req.CustomerID); err == nil {
			order.CustomerID = customerID
		}
	}
	order.AmountMinor = order.TotalMinorUnits()

	gatewayOrderID, err := s.Gateway.CreateIntent(ctx, order.AmountMinor, s.Currency)
	if err != nil {
		return nil, err
	}
	order.RazorpayOrderID = gatewayOrderID

	if err := s.Orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	return &CheckoutResult{
		OrderID:         order.ID.Hex(),
		RazorpayOrderID: gatewayOrderID,
		AmountMinor:     order.AmountMinor,
		Currency:        s.Currency,
		KeyID:           s.Gateway.KeyID(),
	}, nil
}

// ConfirmPayment settles an order from the gateway callback. The signature is
// checked first; only then is the order looked up and conditionally flipped
// to paid. A repeat callback for an already-paid order is a no-op. The
// originating cart is cleared once, when the transition actually happens.
func (s *Service) ConfirmPayment(ctx context.Context, sessionID string, req VerifyRequest) (*models.Order, error) {
	if !s.Gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return nil, global.ErrSignatureMismatch
	}

	order, updated, err := s.Orders.SetPaidIfUnpaid(ctx, req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if err != nil {
		return nil, err
	}

	if updated && sessionID != "" {
		if err := s.Cart.Clear(ctx, sessionID); err != nil {
			// The payment is settled; a stale cart is recoverable.
			return order, nil
		}
	}
	return order, nil
}

// PaidOrder fetches an order that must already be paid; unpaid orders are
// reported as not found, the invoice and success page contract.
func (s *Service) PaidOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Paid {
		return nil, global.ErrNotFound
	}
	return order, nil
}

// CartView joins the session cart with live catalog data. Lines whose product
// no longer exists are skipped; totals always come from the snapshot prices.
func (s *Service) CartView(ctx context.Context, sessionID string) (*models.CartView, error) {
	lines, err := s.Cart.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	view := &models.CartView{
		Items: make([]models.CartItemView, 0, len(lines)),
		Total: decimal.Zero,
	}
	if len(lines) == 0 {
		return view, nil
	}

	ids := make([]string, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}
	products, err := s.Catalog.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			continue
		}
		view.Items = append(view.Items, models.CartItemView{
			ProductID:   line.ProductID,
			ProductName: product.Name,
			Slug:        product.Slug,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			LineTotal:   line.LineTotal(),
		})
		view.ItemCount += line.Quantity
		view.Total = view.Total.Add(line.LineTotal())
	}
	sort.Slice(view.Items, func(i, j int) bool {
		return view.Items[i].ProductName < view.Items[j].ProductName
	})
	return view, nil
}
