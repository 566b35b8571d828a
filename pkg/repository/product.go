package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/storefront/pkg/models"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(m *Mongo) *ProductRepository {
	return &ProductRepository{collection: m.database.Collection(productsCollection)}
}

// FindByID returns (nil, nil) when no product matches.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}
	return &product, nil
}

func (r *ProductRepository) List(ctx context.Context, query models.ProductQuery) ([]models.Product, int64, error) {
	filter := bson.M{}
	if query.Keyword != "" {
		filter["name"] = bson.M{"$regex": query.Keyword, "$options": "i"}
	}
	if query.Category != "" {
		filter["category"] = query.Category
	}
	if query.SaleOnly {
		filter["onSale"] = true
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count products")
	}

	skip := int64((query.Page - 1) * query.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(query.Limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list products")
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, errors.Wrap(err, "failed to decode products")
	}
	return products, total, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return errors.Wrap(err, "failed to insert product")
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	return errors.Wrap(err, "failed to update product")
}

// Delete reports whether a product was actually removed.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, errors.Wrap(err, "failed to delete product")
	}
	return res.DeletedCount > 0, nil
}

// DecrementStock atomically takes quantity units off a product's stock, but
// only while enough stock remains. The stock >= quantity guard in the filter
// is what keeps concurrent purchases from overselling: a request that loses
// the race matches no document and reports false.
func (r *ProductRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": quantity}},
		bson.M{
			"$inc": bson.M{"stock": -quantity},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return false, errors.Wrap(err, "failed to decrement stock")
	}
	return res.MatchedCount > 0, nil
}

// IncrementStock returns quantity units to a product's stock.
func (r *ProductRepository) IncrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"stock": quantity},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	return errors.Wrap(err, "failed to restore stock")
}
