package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/example/storefront/pkg/models"
)

type AddressRepository struct {
	collection *mongo.Collection
}

func NewAddressRepository(m *Mongo) *AddressRepository {
	return &AddressRepository{collection: m.database.Collection(addressesCollection)}
}

func (r *AddressRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Address, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list addresses")
	}
	defer cursor.Close(ctx)

	addresses := []models.Address{}
	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, errors.Wrap(err, "failed to decode addresses")
	}
	return addresses, nil
}

// FindByID returns (nil, nil) when no address matches.
func (r *AddressRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Address, error) {
	var address models.Address
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&address)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find address")
	}
	return &address, nil
}

func (r *AddressRepository) Create(ctx context.Context, address *models.Address) error {
	now := time.Now()
	address.CreatedAt = now
	address.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, address)
	if err != nil {
		return errors.Wrap(err, "failed to insert address")
	}
	address.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *AddressRepository) Update(ctx context.Context, address *models.Address) error {
	address.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": address.ID}, address)
	return errors.Wrap(err, "failed to update address")
}

func (r *AddressRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return errors.Wrap(err, "failed to delete address")
}

// ClearDefault unsets the default flag on all of a user's addresses, so a
// newly promoted default is the only one.
func (r *AddressRepository) ClearDefault(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"userId": userID, "isDefault": true},
		bson.M{"$set": bson.M{"isDefault": false, "updatedAt": time.Now()}},
	)
	return errors.Wrap(err, "failed to clear default address")
}
