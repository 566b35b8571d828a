package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description" json:"description"`
	Price          float64            `bson:"price" json:"price"`
	SalePrice      *float64           `bson:"salePrice,omitempty" json:"salePrice,omitempty"`
	OnSale         bool               `bson:"onSale" json:"onSale"`
	SalePercentage float64            `bson:"salePercentage" json:"salePercentage"`
	Category       string             `bson:"category" json:"category"`
	ImageURL       string             `bson:"imageUrl" json:"imageUrl"`
	Stock          int                `bson:"stock" json:"stock"`
	IsAvailable    bool               `bson:"isAvailable" json:"isAvailable"`
	CreatedAt      time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updated_at"`
}

// EffectivePrice is the unit price charged at purchase time:
// the sale price while the product is on sale, the regular price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.OnSale && p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// ProductQuery narrows a catalog listing. Zero values mean "no filter".
type ProductQuery struct {
	Keyword  string
	Category string
	SaleOnly bool
	Page     int
	Limit    int
}
