package userdir

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"order-service/internal/models"

	"github.com/go-redis/redis/v8"
)

// Cache keeps resolved user projections in Redis so that read-path
// enrichment does not hit the remote directory once per order. Every cache
// failure degrades to a remote call; the cache is never authoritative.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache creates a user projection cache backed by Redis.
func NewCache(addr, password string, db int, ttl time.Duration) (*Cache, error) {
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

	return &Cache{rdb: rdb, ttl: ttl}, nil
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.rdb.Close()
}

// GetByID returns a cached projection for a user id, if present.
func (c *Cache) GetByID(ctx context.Context, id int64) (*models.User, bool) {
	return c.get(ctx, idKey(id))
}

// GetByEmail returns a cached projection for an email, if present.
func (c *Cache) GetByEmail(ctx context.Context, email string) (*models.User, bool) {
	return c.get(ctx, emailKey(email))
}

// Put stores a projection under both its id and email keys.
func (c *Cache) Put(ctx context.Context, user *models.User) {
	data, err := json.Marshal(user)
	if err != nil {
		return
	}

	pipe := c.rdb.Pipeline()
	pipe.Set(ctx, idKey(user.ID), data, c.ttl)
	if user.Email != "" {
		pipe.Set(ctx, emailKey(user.Email), data, c.ttl)
	}
	_, _ = pipe.Exec(ctx)
}

func (c *Cache) get(ctx context.Context, key string) (*models.User, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, false
	}
	return &user, true
}

func idKey(id int64) string {
	return fmt.Sprintf("user:id:%d", id)
}

func emailKey(email string) string {
	return fmt.Sprintf("user:email:%s", email)
}
