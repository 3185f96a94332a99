package mongo

import (
	"log"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/anupamdas/gokart/pkg/global"
)

var client *mongo.Client

// InitMongoDB connects once at startup; the client is shared for the process
// lifetime.
func InitMongoDB() {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	clientOptions := options.Client().ApplyURI(global.GetMongoURI()).SetServerAPIOptions(serverAPI)

	c, err := mongo.Connect(clientOptions)
	if err != nil {
		log.Fatalf("Failed to create MongoDB client: %v", err)
	}
	client = c

	ctx, cancel := global.GetDefaultTimer()
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	log.Println("Connected to MongoDB successfully")
}

func GetClient() *mongo.Client {
	return client
}

func GetDatabase() *mongo.Database {
	return client.Database(global.GetDatabaseName())
}

func GetCollection(collectionName string) *mongo.Collection {
	return GetDatabase().Collection(collectionName)
}
