package mongo

import (
	"log"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/anupamdas/gokart/pkg/global"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []IndexConfig{
	// Customers
	{
		CollectionName: "customers",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_customer_email_unique"),
		},
	},

	// Categories
	{
		CollectionName: "categories",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_category_slug_unique"),
		},
	},

	// Products
	{
		CollectionName: "products",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "category_id", Value: 1}},
			Options: options.Index().SetName("idx_product_category"),
		},
	},
	{
		CollectionName: "products",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("idx_product_slug"),
		},
	},

	// Orders: at most one order per gateway payment intent. Sparse because
	// the field is only set once an intent has been created.
	{
		CollectionName: "orders",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{{Key: "razorpay_order_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetSparse(true).
				SetName("idx_order_gateway_id_unique"),
		},
	},
	{
		CollectionName: "orders",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_order_created"),
		},
	},
}

func EnsureIndexesOnStartup() {
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()

	for _, cfg := range requiredIndexes {
		collection := GetCollection(cfg.CollectionName)
		if _, err := collection.Indexes().CreateOne(ctx, cfg.IndexModel); err != nil {
			log.Fatalf("Failed to ensure index on %s: %v", cfg.CollectionName, err)
		}
	}

	log.Println("MongoDB indexes ensured")
}
