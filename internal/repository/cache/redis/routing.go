package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	"gitee.com/flycash/mail-delivery-platform/internal/repository/cache"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	rdb *redis.Client
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{
		rdb: rdb,
	}
}

func (c *Cache) Get(ctx context.Context, task domain.TaskType) (domain.TaskRouting, error) {
	key := cache.RoutingKey(task)
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// 键不存在
			return domain.TaskRouting{}, cache.ErrKeyNotFound
		}
		return domain.TaskRouting{}, fmt.Errorf("failed to get routing from redis %w", err)
	}

	// 反序列化数据
	var routing domain.TaskRouting
	err = json.Unmarshal([]byte(val), &routing)
	if err != nil {
		return domain.TaskRouting{}, fmt.Errorf("failed to unmarshal routing data %w", err)
	}

	return routing, nil
}

func (c *Cache) Set(ctx context.Context, routing domain.TaskRouting) error {
	key := cache.RoutingKey(routing.Task)

	data, err := json.Marshal(routing)
	if err != nil {
		return fmt.Errorf("failed to marshal routing data %w", err)
	}

	err = c.rdb.Set(ctx, key, data, cache.DefaultExpiredTime).Err()
	if err != nil {
		return fmt.Errorf("failed to set routing to redis %w", err)
	}
	return nil
}

func (c *Cache) Del(ctx context.Context, task domain.TaskType) error {
	return c.rdb.Del(ctx, cache.RoutingKey(task)).Err()
}
