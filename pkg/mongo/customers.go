package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/anupamdas/gokart/pkg/global"
	"github.com/anupamdas/gokart/pkg/models"
)

var ErrDuplicateEmail = errors.New("customer email already registered")

type CustomerStore struct{}

func NewCustomerStore() *CustomerStore {
	return &CustomerStore{}
}

func (s *CustomerStore) Insert(ctx context.Context, customer *models.Customer) error {
	if customer.ID.IsZero() {
		customer.ID = bson.NewObjectID()
	}
	customer.SetTimestamps()

	_, err := GetCollection("customers").InsertOne(ctx, customer)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *CustomerStore) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, global.ErrNotFound
	}

	var customer models.Customer
	err = GetCollection("customers").FindOne(ctx, bson.M{"_id": objectID}).Decode(&customer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, global.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
