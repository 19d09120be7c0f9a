package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shophub/internal/models"

	"github.com/go-redis/redis/v8"
)

const productListKey = "catalog:products"

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client used as a read-through catalog cache
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetProduct returns the cached product, or (nil, nil) on a cache miss.
func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	data, err := c.rdb.Get(ctx, productKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var p models.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("corrupt cached product %d: %w", id, err)
	}
	return &p, nil
}

// SetProduct caches a product with the given TTL.
func (c *Client) SetProduct(ctx context.Context, p *models.Product, ttl time.Duration) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, productKey(p.ID), data, ttl).Err()
}

// GetProductList returns the cached unfiltered listing, or (nil, nil) on a
// cache miss.
func (c *Client) GetProductList(ctx context.Context) ([]models.Product, error) {
	data, err := c.rdb.Get(ctx, productListKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("corrupt cached product list: %w", err)
	}
	return products, nil
}

// SetProductList caches the unfiltered listing and each product by id in a
// single pipeline.
func (c *Client) SetProductList(ctx context.Context, products []models.Product, ttl time.Duration) error {
	listData, err := json.Marshal(products)
	if err != nil {
		return err
	}

	pipe := c.rdb.Pipeline()
	pipe.Set(ctx, productListKey, listData, ttl)
	for i := range products {
		data, err := json.Marshal(&products[i])
		if err != nil {
			return err
		}
		pipe.Set(ctx, productKey(products[i].ID), data, ttl)
	}

	_, err = pipe.Exec(ctx)
	return err
}

// InvalidateCatalog drops the listing cache and all cached products. Called
// after seeding rewrites the catalog.
func (c *Client) InvalidateCatalog(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, "catalog:*", 100).Iterator()

	keys := []string{}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func productKey(id int64) string {
	return fmt.Sprintf("catalog:product:%d", id)
}
