package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/anupamdas/gokart/pkg/global"
	"github.com/anupamdas/gokart/pkg/models"
)

// CatalogStore resolves products and categories. All reads return snapshots;
// nothing here mutates the catalog.
type CatalogStore struct{}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{}
}

func (s *CatalogStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	cursor, err := GetCollection("categories").Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CatalogStore) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := GetCollection("categories").FindOne(ctx, bson.M{"slug": slug}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, global.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ListAvailable returns available products, optionally filtered to one
// category.
func (s *CatalogStore) ListAvailable(ctx context.Context, categoryID *bson.ObjectID) ([]models.Product, error) {
	filter := bson.M{"available": true}
	if categoryID != nil {
		filter["category_id"] = *categoryID
	}

	cursor, err := GetCollection("products").Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *CatalogStore) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, global.ErrNotFound
	}

	var product models.Product
	err = GetCollection("products").FindOne(ctx, bson.M{"_id": objectID}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, global.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductByIDSlug is the detail-page lookup: id and slug must both match and
// the product must be available.
func (s *CatalogStore) ProductByIDSlug(ctx context.Context, id, slug string) (*models.Product, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, global.ErrNotFound
	}

	var product models.Product
	err = GetCollection("products").FindOne(ctx, bson.M{
		"_id":       objectID,
		"slug":      slug,
		"available": true,
	}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, global.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductsByIDs resolves a set of product ids to products, keyed by hex id.
// Unknown ids are simply absent from the result; callers decide whether that
// matters.
func (s *CatalogStore) ProductsByIDs(ctx context.Context, ids []string) (map[string]*models.Product, error) {
	objectIDs := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := bson.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objectIDs = append(objectIDs, objectID)
	}

	result := make(map[string]*models.Product, len(objectIDs))
	if len(objectIDs) == 0 {
		return result, nil
	}

	cursor, err := GetCollection("products").Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	for i := range products {
		p := products[i]
		result[p.ID.Hex()] = &p
	}
	return result, nil
}
