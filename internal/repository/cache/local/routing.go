package local

import (
	"context"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	"gitee.com/flycash/mail-delivery-platform/internal/repository/cache"
	ca "github.com/patrickmn/go-cache"
)

// Cache 本地路由缓存，挡在Redis前面的一层。
// 路由配置量小、变更低频，本地过期后回源即可。
type Cache struct {
	c *ca.Cache
}

func NewLocalCache(c *ca.Cache) *Cache {
	return &Cache{
		c: c,
	}
}

func (l *Cache) Get(_ context.Context, task domain.TaskType) (domain.TaskRouting, error) {
	key := cache.RoutingKey(task)
	v, ok := l.c.Get(key)
	if !ok {
		return domain.TaskRouting{}, cache.ErrKeyNotFound
	}
	return v.(domain.TaskRouting), nil
}

func (l *Cache) Set(_ context.Context, routing domain.TaskRouting) error {
	key := cache.RoutingKey(routing.Task)
	l.c.Set(key, routing, cache.DefaultExpiredTime)
	return nil
}

func (l *Cache) Del(_ context.Context, task domain.TaskType) error {
	l.c.Delete(cache.RoutingKey(task))
	return nil
}
