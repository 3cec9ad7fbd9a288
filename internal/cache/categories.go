package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Skotchmaster/freshcart/internal/logging"
	"github.com/Skotchmaster/freshcart/internal/models"
)

const categoriesKey = "freshcart:categories"

type store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Categories is a cache-aside store for the category listing. Redis errors
// are logged and treated as misses.
type Categories struct {
	rdb store
	ttl time.Duration
}

func NewCategories(rdb *redis.Client, ttl time.Duration) *Categories {
	return &Categories{rdb: rdb, ttl: ttl}
}

func NewClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     10,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func (c *Categories) GetCategories(ctx context.Context) ([]models.Category, bool) {
	raw, err := c.rdb.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.FromContext(ctx).Warn("cache_get_error", "key", categoriesKey, "error", err)
		}
		return nil, false
	}
	var cats []models.Category
	if err := json.Unmarshal(raw, &cats); err != nil {
		logging.FromContext(ctx).Warn("cache_decode_error", "key", categoriesKey, "error", err)
		return nil, false
	}
	return cats, true
}

func (c *Categories) SetCategories(ctx context.Context, cats []models.Category) {
	data, err := json.Marshal(cats)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, categoriesKey, data, c.ttl).Err(); err != nil {
		logging.FromContext(ctx).Warn("cache_set_error", "key", categoriesKey, "error", err)
	}
}

func (c *Categories) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, categoriesKey).Err(); err != nil {
		logging.FromContext(ctx).Warn("cache_del_error", "key", categoriesKey, "error", err)
	}
}
