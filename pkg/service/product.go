package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/pricing"
)

// ProductService manages the catalog: CRUD, sale pricing, and the cached
// read path.
type ProductService struct {
	products ProductStore
	cache    Cache
	logger   *zap.Logger
}

func NewProductService(products ProductStore, cache Cache, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, cache: cache, logger: logger}
}

type ProductsPage struct {
	Products []models.Product `json:"products"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
	Total    int64            `json:"total"`
}

func (s *ProductService) List(ctx context.Context, query models.ProductQuery) (*ProductsPage, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = 8
	}

	products, total, err := s.products.List(ctx, query)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(query.Limit) - 1) / int64(query.Limit))
	return &ProductsPage{Products: products, Page: query.Page, Pages: pages, Total: total}, nil
}

// Get reads through the cache. Cache errors fall back to the store.
func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	cached, err := s.cache.Get(ctx, id.Hex())
	if err != nil {
		s.logger.Warn("product cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product not found: %w", ErrNotFound)
	}

	if err := s.cache.Set(ctx, product); err != nil {
		s.logger.Warn("product cache write failed", zap.Error(err))
	}
	return product, nil
}

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `json:"stock"`
	IsAvailable *bool   `json:"is_available"`
}

func (in *ProductInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("product name is required: %w", ErrInvalidRequest)
	}
	if in.Category == "" {
		return fmt.Errorf("product category is required: %w", ErrInvalidRequest)
	}
	if in.Price < 0 {
		return fmt.Errorf("price cannot be negative: %w", ErrInvalidRequest)
	}
	if in.Stock < 0 {
		return fmt.Errorf("stock cannot be negative: %w", ErrInvalidRequest)
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}

	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
		IsAvailable: available,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProductInput carries only the fields to change; nil means keep.
type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"image_url"`
	Stock       *int     `json:"stock"`
	IsAvailable *bool    `json:"is_available"`
}

func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, in UpdateProductInput) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product not found: %w", ErrNotFound)
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, fmt.Errorf("price cannot be negative: %w", ErrInvalidRequest)
		}
		product.Price = *in.Price
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, fmt.Errorf("stock cannot be negative: %w", ErrInvalidRequest)
		}
		product.Stock = *in.Stock
	}
	if in.IsAvailable != nil {
		product.IsAvailable = *in.IsAvailable
	}

	// A price change while on sale moves the sale price with it.
	if product.OnSale && product.SalePercentage > 0 {
		sale := pricing.SalePrice(product.Price, product.SalePercentage)
		product.SalePrice = &sale
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, product.ID)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("product not found: %w", ErrNotFound)
	}
	s.invalidate(ctx, id)
	return nil
}

// ApplySale marks a product on sale at the given percentage. A percentage of
// zero clears the sale.
func (s *ProductService) ApplySale(ctx context.Context, id primitive.ObjectID, percentage float64) (*models.Product, error) {
	if percentage < 0 || percentage > 100 {
		return nil, fmt.Errorf("sale percentage must be between 0 and 100: %w", ErrInvalidRequest)
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product not found: %w", ErrNotFound)
	}

	applySale(product, percentage)

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, product.ID)
	return product, nil
}

func (s *ProductService) RemoveSale(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product not found: %w", ErrNotFound)
	}

	applySale(product, 0)

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, product.ID)
	return product, nil
}

// BulkSale applies one percentage across many products. Unknown ids are
// skipped rather than failing the batch.
func (s *ProductService) BulkSale(ctx context.Context, ids []primitive.ObjectID, percentage float64) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("product ids are required: %w", ErrInvalidRequest)
	}
	if percentage < 0 || percentage > 100 {
		return nil, fmt.Errorf("sale percentage must be between 0 and 100: %w", ErrInvalidRequest)
	}

	updated := []models.Product{}
	for _, id := range ids {
		product, err := s.products.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}

		applySale(product, percentage)

		if err := s.products.Update(ctx, product); err != nil {
			return nil, err
		}
		s.invalidate(ctx, product.ID)
		updated = append(updated, *product)
	}
	return updated, nil
}

func applySale(product *models.Product, percentage float64) {
	product.OnSale = percentage > 0
	product.SalePercentage = percentage
	if percentage > 0 {
		sale := pricing.SalePrice(product.Price, percentage)
		product.SalePrice = &sale
	} else {
		product.SalePrice = nil
	}
}

func (s *ProductService) invalidate(ctx context.Context, id primitive.ObjectID) {
	if err := s.cache.Invalidate(ctx, id.Hex()); err != nil {
		s.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
}
