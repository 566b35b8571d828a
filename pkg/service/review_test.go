package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/storefront/pkg/auth"
	"github.com/example/storefront/pkg/models"
)

type reviewFixture struct {
	svc      *ReviewService
	products *fakeProductStore
	users    *fakeUserStore
}

func newReviewFixture() *reviewFixture {
	products := newFakeProductStore()
	users := newFakeUserStore()
	return &reviewFixture{
		svc:      NewReviewService(newFakeReviewStore(), products, users),
		products: products,
		users:    users,
	}
}

func TestCreateReview(t *testing.T) {
	fx := newReviewFixture()
	ctx := context.Background()
	author := userPrincipal()

	productID := fx.products.add(models.Product{Name: "Lamp", Price: 19.99, Stock: 5})

	review, err := fx.svc.Create(ctx, author, productID, ReviewInput{Rating: 4, Comment: "solid"})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, author.UserID, review.UserID)
}

func TestCreateReviewValidation(t *testing.T) {
	fx := newReviewFixture()
	ctx := context.Background()

	productID := fx.products.add(models.Product{Name: "Lamp", Price: 19.99, Stock: 5})

	_, err := fx.svc.Create(ctx, userPrincipal(), productID, ReviewInput{Rating: 0, Comment: "x"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = fx.svc.Create(ctx, userPrincipal(), productID, ReviewInput{Rating: 6, Comment: "x"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = fx.svc.Create(ctx, userPrincipal(), productID, ReviewInput{Rating: 3})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = fx.svc.Create(ctx, userPrincipal(), primitive.NewObjectID(), ReviewInput{Rating: 3, Comment: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateReviewRejectsDuplicate(t *testing.T) {
	fx := newReviewFixture()
	ctx := context.Background()
	author := userPrincipal()

	productID := fx.products.add(models.Product{Name: "Lamp", Price: 19.99, Stock: 5})

	_, err := fx.svc.Create(ctx, author, productID, ReviewInput{Rating: 4, Comment: "solid"})
	require.NoError(t, err)

	_, err = fx.svc.Create(ctx, author, productID, ReviewInput{Rating: 5, Comment: "again"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestUpdateReviewAuthorOnly(t *testing.T) {
	fx := newReviewFixture()
	ctx := context.Background()
	author := userPrincipal()

	productID := fx.products.add(models.Product{Name: "Lamp", Price: 19.99, Stock: 5})
	review, err := fx.svc.Create(ctx, author, productID, ReviewInput{Rating: 4, Comment: "solid"})
	require.NoError(t, err)

	_, err = fx.svc.Update(ctx, userPrincipal(), review.ID, ReviewInput{Rating: 1, Comment: "bad"})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := fx.svc.Update(ctx, author, review.ID, ReviewInput{Rating: 5, Comment: "even better"})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
}

func TestDeleteReview(t *testing.T) {
	fx := newReviewFixture()
	ctx := context.Background()
	author := userPrincipal()

	productID := fx.products.add(models.Product{Name: "Lamp", Price: 19.99, Stock: 5})
	review, err := fx.svc.Create(ctx, author, productID, ReviewInput{Rating: 4, Comment: "solid"})
	require.NoError(t, err)

	err = fx.svc.Delete(ctx, userPrincipal(), review.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// Administrators may remove any review.
	require.NoError(t, fx.svc.Delete(ctx, adminPrincipal(), review.ID))

	err = fx.svc.Delete(ctx, author, review.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListForProductResolvesAuthors(t *testing.T) {
	fx := newReviewFixture()
	ctx := context.Background()

	authorID := fx.users.add(models.User{Name: "Ada", Email: "ada@example.com"})
	author := auth.Principal{UserID: authorID, Role: models.RoleUser}

	productID := fx.products.add(models.Product{Name: "Lamp", Price: 19.99, Stock: 5})
	_, err := fx.svc.Create(ctx, author, productID, ReviewInput{Rating: 4, Comment: "solid"})
	require.NoError(t, err)

	reviews, err := fx.svc.ListForProduct(ctx, productID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.NotNil(t, reviews[0].User)
	assert.Equal(t, "Ada", reviews[0].User.Name)
}
