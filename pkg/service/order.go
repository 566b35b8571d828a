package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/example/storefront/pkg/auth"
	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/pricing"
)

// OrderService owns the order lifecycle: creation with stock reservation,
// cancellation with stock restoration, and the administrative status updates.
type OrderService struct {
	orders   OrderStore
	products ProductStore
	users    UserStore
	cache    Cache
	logger   *zap.Logger
}

func NewOrderService(orders OrderStore, products ProductStore, users UserStore, cache Cache, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		users:    users,
		cache:    cache,
		logger:   logger,
	}
}

type OrderLine struct {
	ProductID primitive.ObjectID `json:"product_id"`
	Quantity  int                `json:"quantity"`
}

type CreateOrderInput struct {
	Items           []OrderLine            `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
}

// Create builds an order from the submitted lines. Each line captures the
// product's effective price at this moment and reserves stock with a
// conditional decrement. Creation is all-or-nothing: if any line fails, the
// stock already taken by earlier lines is released before returning.
func (s *OrderService) Create(ctx context.Context, principal auth.Principal, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("no order items: %w", ErrInvalidRequest)
	}

	var items []models.OrderItem
	release := func() {
		for _, item := range items {
			if err := s.products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				s.logger.Error("failed to release reserved stock",
					zap.String("product_id", item.ProductID.Hex()),
					zap.Int("quantity", item.Quantity),
					zap.Error(err))
			}
		}
		s.invalidateProducts(ctx, items)
	}

	for _, line := range in.Items {
		if line.Quantity <= 0 {
			release()
			return nil, fmt.Errorf("quantity must be positive: %w", ErrInvalidRequest)
		}

		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			release()
			return nil, err
		}
		if product == nil {
			release()
			return nil, fmt.Errorf("product not found: %s: %w", line.ProductID.Hex(), ErrNotFound)
		}

		ok, err := s.products.DecrementStock(ctx, product.ID, line.Quantity)
		if err != nil {
			release()
			return nil, err
		}
		if !ok {
			release()
			return nil, &InsufficientStockError{Product: product.Name, Available: product.Stock}
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			Price:     product.EffectivePrice(),
		})
	}

	order := &models.Order{
		UserID:          principal.UserID,
		Items:           items,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		TotalAmount:     pricing.OrderTotal(items),
		Status:          models.OrderPending,
		PaymentStatus:   models.PaymentPending,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		release()
		return nil, err
	}

	s.invalidateProducts(ctx, items)
	return order, nil
}

// Cancel transitions an order to cancelled and returns each line's quantity
// to the product's stock. Only the owner or an administrator may cancel, and
// only while the order is still pending or processing.
func (s *OrderService) Cancel(ctx context.Context, principal auth.Principal, id primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order not found: %w", ErrNotFound)
	}
	if !principal.CanAccess(order.UserID) {
		return nil, fmt.Errorf("not authorized to cancel this order: %w", ErrForbidden)
	}
	if !order.Status.Cancellable() {
		return nil, fmt.Errorf("cannot cancel order with status %q: %w", order.Status, ErrInvalidTransition)
	}

	for _, item := range order.Items {
		if err := s.products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}
	s.invalidateProducts(ctx, order.Items)

	order.Status = models.OrderCancelled
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// SetStatus sets an order's status to any value from the closed enumeration.
// Transitions are deliberately permissive; reaching delivered stamps the
// delivery timestamp.
func (s *OrderService) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	st := models.OrderStatus(status)
	if !st.Valid() {
		return nil, fmt.Errorf("unknown order status %q: %w", status, ErrInvalidRequest)
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order not found: %w", ErrNotFound)
	}

	order.Status = st
	if st == models.OrderDelivered {
		now := time.Now()
		order.DeliveredAt = &now
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// SetPaymentStatus sets an order's payment status; completed stamps the paid
// timestamp.
func (s *OrderService) SetPaymentStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	st := models.PaymentStatus(status)
	if !st.Valid() {
		return nil, fmt.Errorf("unknown payment status %q: %w", status, ErrInvalidRequest)
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order not found: %w", ErrNotFound)
	}

	order.PaymentStatus = st
	if st == models.PaymentCompleted {
		now := time.Now()
		order.PaidAt = &now
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Get returns one order to its owner or an administrator.
func (s *OrderService) Get(ctx context.Context, principal auth.Principal, id primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order not found: %w", ErrNotFound)
	}
	if !principal.CanAccess(order.UserID) {
		return nil, fmt.Errorf("not authorized to view this order: %w", ErrForbidden)
	}
	return order, nil
}

// ListMine returns the requester's orders, newest first.
func (s *OrderService) ListMine(ctx context.Context, principal auth.Principal) ([]models.Order, error) {
	return s.orders.FindByUser(ctx, principal.UserID)
}

// AdminOrder is an order with its owner resolved for display.
type AdminOrder struct {
	models.Order
	User *models.UserSummary `json:"user,omitempty"`
}

type AdminOrdersPage struct {
	Orders []AdminOrder `json:"orders"`
	Page   int          `json:"page"`
	Pages  int          `json:"pages"`
	Total  int64        `json:"total"`
}

// AdminList returns one page of all orders, newest first, with owner
// summaries resolved.
func (s *OrderService) AdminList(ctx context.Context, page, limit int) (*AdminOrdersPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	orders, total, err := s.orders.FindAll(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(orders))
	seen := make(map[primitive.ObjectID]bool)
	for _, o := range orders {
		if !seen[o.UserID] {
			seen[o.UserID] = true
			ids = append(ids, o.UserID)
		}
	}

	summaries, err := s.users.FindSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	resolved := make([]AdminOrder, len(orders))
	for i, o := range orders {
		resolved[i] = AdminOrder{Order: o}
		if summary, ok := summaries[o.UserID]; ok {
			s := summary
			resolved[i].User = &s
		}
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &AdminOrdersPage{Orders: resolved, Page: page, Pages: pages, Total: total}, nil
}

// Cache entries go stale whenever order flow adjusts stock. Invalidation
// failures only delay freshness by the TTL, so they are logged, not returned.
func (s *OrderService) invalidateProducts(ctx context.Context, items []models.OrderItem) {
	if len(items) == 0 {
		return
	}
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ProductID.Hex()
	}
	if err := s.cache.Invalidate(ctx, ids...); err != nil {
		s.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
}
