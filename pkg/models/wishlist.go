package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WishlistItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"user_id"`
	ProductID primitive.ObjectID `bson:"productId" json:"product_id"`
	Product   *Product           `bson:"-" json:"product,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}
