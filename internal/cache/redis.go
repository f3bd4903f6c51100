package cache

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin optional layer over Redis used for unread notification
// counts. A nil *Cache (or one built from an unreachable Redis) degrades to a
// pass-through: every method becomes a no-op miss and the caller falls back to
// the database.
type Cache struct {
	client *redis.Client
}

const unreadCountTTL = 60 * time.Second

// New connects to Redis at addr. An empty addr or a failed ping returns nil;
// the service runs without a cache in that case.
func New(addr string) *Cache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without cache)", err)
		return nil
	}
	log.Println("Redis connected successfully")
	return &Cache{client: client}
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func unreadCountKey(recipientID uint) string {
	return fmt.Sprintf("notifications:unread:%d", recipientID)
}

// GetUnreadCount returns the cached unread count for the recipient.
// found is false on a miss or when the cache is disabled.
func (c *Cache) GetUnreadCount(ctx context.Context, recipientID uint) (count int64, found bool) {
	if c == nil {
		return 0, false
	}
	s, err := c.client.Get(ctx, unreadCountKey(recipientID)).Result()
	if err == redis.Nil {
		return 0, false
	}
	if err != nil {
		log.Printf("Redis get error: %v", err)
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetUnreadCount stores the unread count for the recipient with a short TTL.
func (c *Cache) SetUnreadCount(ctx context.Context, recipientID uint, count int64) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, unreadCountKey(recipientID), count, unreadCountTTL).Err(); err != nil {
		log.Printf("Redis set error: %v", err)
	}
}

// InvalidateUnreadCount drops the recipient's cached count. Called whenever a
// notification for the recipient is created or marked read.
func (c *Cache) InvalidateUnreadCount(ctx context.Context, recipientID uint) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, unreadCountKey(recipientID)).Err(); err != nil {
		log.Printf("Redis del error: %v", err)
	}
}
