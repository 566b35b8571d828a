package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/example/storefront/pkg/config"
	"github.com/example/storefront/pkg/models"
)

const productCacheTTL = 10 * time.Minute

// ProductCache is a read-through cache in front of the product collection.
// Catalog reads dominate this workload; writes invalidate.
type ProductCache struct {
	client *redis.Client
	config *config.RedisConfig
}

func NewProductCache(cfg *config.RedisConfig) *ProductCache {
	return &ProductCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
		config: cfg,
	}
}

func (c *ProductCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *ProductCache) Close() error {
	return c.client.Close()
}

func (c *ProductCache) setJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, expiration).Err()
}

func (c *ProductCache) getJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

func (c *ProductCache) Set(ctx context.Context, product *models.Product) error {
	return c.setJSON(ctx, productKey(product.ID.Hex()), product, productCacheTTL)
}

// Get returns (nil, nil) on a cache miss.
func (c *ProductCache) Get(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := c.getJSON(ctx, productKey(id), &product)
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Invalidate drops cached copies after any product write, including the
// stock adjustments made by order creation and cancellation.
func (c *ProductCache) Invalidate(ctx context.Context, ids ...string) error {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}
	return c.client.Del(ctx, keys...).Err()
}
