package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/storefront/pkg/models"
)

// In-memory stand-ins for the Mongo-backed stores. They follow the same
// contract: lookups return (nil, nil) when nothing matches.

type fakeProductStore struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]models.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: map[primitive.ObjectID]models.Product{}}
}

func (f *fakeProductStore) add(p models.Product) primitive.ObjectID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	f.products[p.ID] = p
	return p.ID
}

func (f *fakeProductStore) stock(id primitive.ObjectID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id].Stock
}

func (f *fakeProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	copy := p
	return &copy, nil
}

func (f *fakeProductStore) List(_ context.Context, query models.ProductQuery) ([]models.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := []models.Product{}
	for _, p := range f.products {
		if query.Keyword != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(query.Keyword)) {
			continue
		}
		if query.Category != "" && p.Category != query.Category {
			continue
		}
		if query.SaleOnly && !p.OnSale {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	start := (query.Page - 1) * query.Limit
	if start >= len(matched) {
		return []models.Product{}, total, nil
	}
	end := start + query.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeProductStore) Create(_ context.Context, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductStore) Update(_ context.Context, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return false, nil
	}
	delete(f.products, id)
	return true, nil
}

func (f *fakeProductStore) DecrementStock(_ context.Context, id primitive.ObjectID, quantity int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok || p.Stock < quantity {
		return false, nil
	}
	p.Stock -= quantity
	f.products[id] = p
	return true, nil
}

func (f *fakeProductStore) IncrementStock(_ context.Context, id primitive.ObjectID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil
	}
	p.Stock += quantity
	f.products[id] = p
	return nil
}

type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]models.Order
	seq    int
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[primitive.ObjectID]models.Order{}}
}

func (f *fakeOrderStore) Insert(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order.ID = primitive.NewObjectID()
	f.seq++
	// distinct timestamps keep newest-first ordering deterministic
	order.CreatedAt = time.Now().Add(time.Duration(f.seq) * time.Millisecond)
	order.UpdatedAt = order.CreatedAt
	f.orders[order.ID] = *order
	return nil
}

func (f *fakeOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	copy := o
	return &copy, nil
}

func (f *fakeOrderStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := []models.Order{}
	for _, o := range f.orders {
		if o.UserID == userID {
			matched = append(matched, o)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return matched, nil
}

func (f *fakeOrderStore) FindAll(_ context.Context, page, limit int) ([]models.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := []models.Order{}
	for _, o := range f.orders {
		all = append(all, o)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []models.Order{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeOrderStore) Update(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order.UpdatedAt = time.Now()
	f.orders[order.ID] = *order
	return nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[primitive.ObjectID]models.User{}}
}

func (f *fakeUserStore) add(u models.User) primitive.ObjectID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.Email = strings.ToLower(u.Email)
	f.users[u.ID] = u
	return u.ID
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copy := u
	return &copy, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == strings.ToLower(email) {
			copy := u
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = primitive.NewObjectID()
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserStore) Update(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.Email = strings.ToLower(user.Email)
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserStore) FindSummaries(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[primitive.ObjectID]models.UserSummary{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = models.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}
	return out, nil
}

type fakeAddressStore struct {
	mu        sync.Mutex
	addresses map[primitive.ObjectID]models.Address
}

func newFakeAddressStore() *fakeAddressStore {
	return &fakeAddressStore{addresses: map[primitive.ObjectID]models.Address{}}
}

func (f *fakeAddressStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := []models.Address{}
	for _, a := range f.addresses {
		if a.UserID == userID {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

func (f *fakeAddressStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.addresses[id]
	if !ok {
		return nil, nil
	}
	copy := a
	return &copy, nil
}

func (f *fakeAddressStore) Create(_ context.Context, address *models.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	address.ID = primitive.NewObjectID()
	address.CreatedAt = time.Now()
	address.UpdatedAt = address.CreatedAt
	f.addresses[address.ID] = *address
	return nil
}

func (f *fakeAddressStore) Update(_ context.Context, address *models.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addresses[address.ID] = *address
	return nil
}

func (f *fakeAddressStore) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.addresses, id)
	return nil
}

func (f *fakeAddressStore) ClearDefault(_ context.Context, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, a := range f.addresses {
		if a.UserID == userID && a.IsDefault {
			a.IsDefault = false
			f.addresses[id] = a
		}
	}
	return nil
}

type fakeReviewStore struct {
	mu      sync.Mutex
	reviews map[primitive.ObjectID]models.Review
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: map[primitive.ObjectID]models.Review{}}
}

func (f *fakeReviewStore) FindByProduct(_ context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := []models.Review{}
	for _, r := range f.reviews {
		if r.ProductID == productID {
			matched = append(matched, r)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return matched, nil
}

func (f *fakeReviewStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reviews[id]
	if !ok {
		return nil, nil
	}
	copy := r
	return &copy, nil
}

func (f *fakeReviewStore) FindByUserAndProduct(_ context.Context, userID, productID primitive.ObjectID) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.UserID == userID && r.ProductID == productID {
			copy := r
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewStore) Create(_ context.Context, review *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt
	f.reviews[review.ID] = *review
	return nil
}

func (f *fakeReviewStore) Update(_ context.Context, review *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviews[review.ID] = *review
	return nil
}

func (f *fakeReviewStore) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.reviews, id)
	return nil
}

type fakeWishlistStore struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.WishlistItem
}

func newFakeWishlistStore() *fakeWishlistStore {
	return &fakeWishlistStore{items: map[primitive.ObjectID]models.WishlistItem{}}
}

func (f *fakeWishlistStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.WishlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := []models.WishlistItem{}
	for _, item := range f.items {
		if item.UserID == userID {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (f *fakeWishlistStore) Find(_ context.Context, userID, productID primitive.ObjectID) (*models.WishlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items {
		if item.UserID == userID && item.ProductID == productID {
			copy := item
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeWishlistStore) Create(_ context.Context, item *models.WishlistItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now()
	f.items[item.ID] = *item
	return nil
}

func (f *fakeWishlistStore) Delete(_ context.Context, userID, productID primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, item := range f.items {
		if item.UserID == userID && item.ProductID == productID {
			delete(f.items, id)
			return true, nil
		}
	}
	return false, nil
}

type fakeCache struct {
	mu       sync.Mutex
	products map[string]models.Product
}

func newFakeCache() *fakeCache {
	return &fakeCache{products: map[string]models.Product{}}
}

func (f *fakeCache) Get(_ context.Context, id string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	copy := p
	return &copy, nil
}

func (f *fakeCache) Set(_ context.Context, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[product.ID.Hex()] = *product
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, ids ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.products, id)
	}
	return nil
}
