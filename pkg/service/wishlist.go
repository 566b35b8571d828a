package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/storefront/pkg/auth"
	"github.com/example/storefront/pkg/models"
)

type WishlistService struct {
	wishlist WishlistStore
	products ProductStore
}

func NewWishlistService(wishlist WishlistStore, products ProductStore) *WishlistService {
	return &WishlistService{wishlist: wishlist, products: products}
}

// List returns the requester's wishlist with product details resolved.
// Entries whose product has since been deleted are kept, without details.
func (s *WishlistService) List(ctx context.Context, principal auth.Principal) ([]models.WishlistItem, error) {
	items, err := s.wishlist.FindByUser(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		product, err := s.products.FindByID(ctx, items[i].ProductID)
		if err != nil {
			return nil, err
		}
		items[i].Product = product
	}
	return items, nil
}

func (s *WishlistService) Add(ctx context.Context, principal auth.Principal, productID primitive.ObjectID) (*models.WishlistItem, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product not found: %w", ErrNotFound)
	}

	existing, err := s.wishlist.Find(ctx, principal.UserID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("product already in wishlist: %w", ErrInvalidRequest)
	}

	item := &models.WishlistItem{
		UserID:    principal.UserID,
		ProductID: productID,
	}
	if err := s.wishlist.Create(ctx, item); err != nil {
		return nil, err
	}
	item.Product = product
	return item, nil
}

func (s *WishlistService) Remove(ctx context.Context, principal auth.Principal, productID primitive.ObjectID) error {
	removed, err := s.wishlist.Delete(ctx, principal.UserID, productID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("product not found in wishlist: %w", ErrNotFound)
	}
	return nil
}
