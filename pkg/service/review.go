package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/storefront/pkg/auth"
	"github.com/example/storefront/pkg/models"
)

// ReviewService manages product reviews: one per user per product, editable
// and deletable by the author only.
type ReviewService struct {
	reviews  ReviewStore
	products ProductStore
	users    UserStore
}

func NewReviewService(reviews ReviewStore, products ProductStore, users UserStore) *ReviewService {
	return &ReviewService{reviews: reviews, products: products, users: users}
}

type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (in *ReviewInput) validate() error {
	if in.Rating < 1 || in.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5: %w", ErrInvalidRequest)
	}
	if in.Comment == "" {
		return fmt.Errorf("comment is required: %w", ErrInvalidRequest)
	}
	return nil
}

// ListForProduct returns a product's reviews, newest first, with author
// summaries resolved.
func (s *ReviewService) ListForProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	reviews, err := s.reviews.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(reviews))
	seen := make(map[primitive.ObjectID]bool)
	for _, r := range reviews {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			ids = append(ids, r.UserID)
		}
	}

	summaries, err := s.users.FindSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		if summary, ok := summaries[reviews[i].UserID]; ok {
			u := summary
			reviews[i].User = &u
		}
	}
	return reviews, nil
}

func (s *ReviewService) Create(ctx context.Context, principal auth.Principal, productID primitive.ObjectID, in ReviewInput) (*models.Review, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product not found: %w", ErrNotFound)
	}

	existing, err := s.reviews.FindByUserAndProduct(ctx, principal.UserID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("you have already reviewed this product: %w", ErrInvalidRequest)
	}

	review := &models.Review{
		UserID:    principal.UserID,
		ProductID: productID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Update(ctx context.Context, principal auth.Principal, id primitive.ObjectID, in ReviewInput) (*models.Review, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, fmt.Errorf("review not found: %w", ErrNotFound)
	}
	if review.UserID != principal.UserID {
		return nil, fmt.Errorf("not authorized to update this review: %w", ErrForbidden)
	}

	review.Rating = in.Rating
	review.Comment = in.Comment
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, principal auth.Principal, id primitive.ObjectID) error {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if review == nil {
		return fmt.Errorf("review not found: %w", ErrNotFound)
	}
	if review.UserID != principal.UserID && !principal.IsAdmin() {
		return fmt.Errorf("not authorized to delete this review: %w", ErrForbidden)
	}
	return s.reviews.Delete(ctx, id)
}
