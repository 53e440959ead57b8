package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient connects to Redis and verifies the connection with a ping.
// The product listing cache is optional; callers treat a nil client as
// "no cache".
func NewRedisClient(addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis addr not set")
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Println("successfully connected to Redis")

	return client, nil
}
