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

type WishlistRepository struct {
	collection *mongo.Collection
}

func NewWishlistRepository(m *Mongo) *WishlistRepository {
	return &WishlistRepository{collection: m.database.Collection(wishlistCollection)}
}

func (r *WishlistRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.WishlistItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list wishlist")
	}
	defer cursor.Close(ctx)

	items := []models.WishlistItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, errors.Wrap(err, "failed to decode wishlist")
	}
	return items, nil
}

// Find returns (nil, nil) when the product is not on the user's wishlist.
func (r *WishlistRepository) Find(ctx context.Context, userID, productID primitive.ObjectID) (*models.WishlistItem, error) {
	var item models.WishlistItem
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "productId": productID}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find wishlist item")
	}
	return &item, nil
}

func (r *WishlistRepository) Create(ctx context.Context, item *models.WishlistItem) error {
	item.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return errors.Wrap(err, "failed to insert wishlist item")
	}
	item.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Delete reports whether an entry was actually removed.
func (r *WishlistRepository) Delete(ctx context.Context, userID, productID primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID, "productId": productID})
	if err != nil {
		return false, errors.Wrap(err, "failed to delete wishlist item")
	}
	return res.DeletedCount > 0, nil
}
