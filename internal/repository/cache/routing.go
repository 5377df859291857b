package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
)

const (
	RoutingPrefix = "routing"

	DefaultExpiredTime = 10 * time.Minute
)

var ErrKeyNotFound = errors.New("key not found")

// RoutingCache 任务路由缓存
type RoutingCache interface {
	Get(ctx context.Context, task domain.TaskType) (domain.TaskRouting, error)
	Set(ctx context.Context, routing domain.TaskRouting) error
	Del(ctx context.Context, task domain.TaskType) error
}

func RoutingKey(task domain.TaskType) string {
	return fmt.Sprintf("%s:%s", RoutingPrefix, task)
}
