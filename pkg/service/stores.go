package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/storefront/pkg/models"
)

// The store interfaces are implemented by pkg/repository over MongoDB and by
// in-memory fakes in tests. Lookups return (nil, nil) when nothing matches.

type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	List(ctx context.Context, query models.ProductQuery) ([]models.Product, int64, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)

	// DecrementStock succeeds only while stock >= quantity; the conditional
	// update is the oversell guard under concurrent purchases.
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error)
	IncrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error
}

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error)
	Update(ctx context.Context, order *models.Order) error
}

type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	FindSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error)
}

type AddressStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Address, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Address, error)
	Create(ctx context.Context, address *models.Address) error
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ClearDefault(ctx context.Context, userID primitive.ObjectID) error
}

type ReviewStore interface {
	FindByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	FindByUserAndProduct(ctx context.Context, userID, productID primitive.ObjectID) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type WishlistStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.WishlistItem, error)
	Find(ctx context.Context, userID, productID primitive.ObjectID) (*models.WishlistItem, error)
	Create(ctx context.Context, item *models.WishlistItem) error
	Delete(ctx context.Context, userID, productID primitive.ObjectID) (bool, error)
}

// Cache is the product read cache; Get returns (nil, nil) on a miss.
type Cache interface {
	Get(ctx context.Context, id string) (*models.Product, error)
	Set(ctx context.Context, product *models.Product) error
	Invalidate(ctx context.Context, ids ...string) error
}
