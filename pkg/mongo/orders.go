package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/anupamdas/gokart/pkg/global"
	"github.com/anupamdas/gokart/pkg/models"
)

type OrderStore struct{}

func NewOrderStore() *OrderStore {
	return &OrderStore{}
}

// Insert persists an order together with its embedded line items in a single
// write. The unique sparse index on razorpay_order_id guarantees at most one
// order per gateway intent.
func (s *OrderStore) Insert(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = bson.NewObjectID()
	}
	order.SetTimestamps()

	_, err := GetCollection("orders").InsertOne(ctx, order)
	return err
}

func (s *OrderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, global.ErrNotFound
	}

	var order models.Order
	err = GetCollection("orders").FindOne(ctx, bson.M{"_id": objectID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, global.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderStore) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Order, error) {
	var order models.Order
	err := GetCollection("orders").
		FindOne(ctx, bson.M{"razorpay_order_id": gatewayOrderID}).
		Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, global.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SetPaidIfUnpaid flips paid to true for the order matching gatewayOrderID,
// but only if it is still unpaid. The conditional filter makes the first
// verification win; a retried callback matches nothing and is reported as
// updated=false with the already-paid order. A gateway order id that matches
// no order at all returns ErrNotFound.
func (s *OrderStore) SetPaidIfUnpaid(ctx context.Context, gatewayOrderID, paymentID, signature string) (*models.Order, bool, error) {
	var order models.Order
	err := GetCollection("orders").FindOneAndUpdate(ctx,
		bson.M{"razorpay_order_id": gatewayOrderID, "paid": false},
		bson.M{"$set": bson.M{
			"paid":                true,
			"razorpay_payment_id": paymentID,
			"razorpay_signature":  signature,
			"updated_at":          time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)

	if errors.Is(err, mongo.ErrNoDocuments) {
		existing, lookupErr := s.GetByGatewayOrderID(ctx, gatewayOrderID)
		if lookupErr != nil {
			return nil, false, lookupErr
		}
		// Already paid: the earlier verification won, this one is a no-op.
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &order, true, nil
}
