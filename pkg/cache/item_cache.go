package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ItemCacheTTL is the time-to-live for cached items.
	ItemCacheTTL = 24 * time.Hour

	itemCacheKeyPrefix = "item"
)

// CachedItem is the denormalized item read model stored in Redis.
// Fields are stored as a Redis hash.
type CachedItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CategoryID  int64     `json:"category_id"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ItemCache provides structured read/write operations for item cache
// entries. Key format: "item:{itemID}". The worker maintains entries from
// item-changed events; reads fall through to Postgres on a miss.
type ItemCache struct {
	client *RedisClient
}

// NewItemCache creates a new ItemCache backed by the given RedisClient.
func NewItemCache(r *RedisClient) *ItemCache {
	return &ItemCache{client: r}
}

// Get retrieves a cached item by id.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ItemCache) Get(ctx context.Context, itemID int64) (*CachedItem, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := strconv.ParseInt(vals["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	categoryID, err := strconv.ParseInt(vals["category_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse category_id: %w", err)
	}
	userID, err := strconv.ParseInt(vals["user_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse user_id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}

	return &CachedItem{
		ID:          id,
		Name:        vals["name"],
		Description: vals["description"],
		CategoryID:  categoryID,
		UserID:      userID,
		CreatedAt:   createdAt,
	}, nil
}

// Set writes a cached item as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem) error {
	key := c.key(item.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"id", strconv.FormatInt(item.ID, 10),
		"name", item.Name,
		"description", item.Description,
		"category_id", strconv.FormatInt(item.CategoryID, 10),
		"user_id", strconv.FormatInt(item.UserID, 10),
		"created_at", item.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, ItemCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached item.
func (c *ItemCache) Delete(ctx context.Context, itemID int64) error {
	if err := c.client.Client().Del(ctx, c.key(itemID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "item:{itemID}"
func (c *ItemCache) key(itemID int64) string {
	return fmt.Sprintf("%s:%d", itemCacheKeyPrefix, itemID)
}
