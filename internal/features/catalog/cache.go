package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const listingCacheKey = "products:all"

// ListingCache is a cache-aside layer over the full product listing. A nil
// *ListingCache means caching is disabled; every method tolerates it.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewListingCache(client *redis.Client) *ListingCache {
	if client == nil {
		return nil
	}

	return &ListingCache{
		client: client,
		ttl:    5 * time.Minute,
	}
}

var errCacheMiss = errors.New("listing cache miss")

func (c *ListingCache) get(ctx context.Context) ([]*Product, error) {
	if c == nil {
		return nil, errCacheMiss
	}

	data, err := c.client.Get(ctx, listingCacheKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errCacheMiss
		}

		return nil, fmt.Errorf("failed to read listing cache: %w", err)
	}

	var products []*Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		return nil, fmt.Errorf("failed to decode listing cache: %w", err)
	}

	return products, nil
}

func (c *ListingCache) set(ctx context.Context, products []*Product) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode listing cache: %w", err)
	}

	return c.client.Set(ctx, listingCacheKey, data, c.ttl).Err()
}

func (c *ListingCache) invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}

	return c.client.Del(ctx, listingCacheKey).Err()
}
