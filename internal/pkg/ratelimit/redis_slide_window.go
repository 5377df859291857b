package ratelimit

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/net/context"
)

var (
	//go:embed lua/slide_window_record.lua
	slidingWindowRecordScript string

	_ Window = (*RedisSlidingWindow)(nil)
)

// RedisSlidingWindow 基于Redis有序集合的滑动窗口计数器。
// 登记走lua脚本，保证并发调用下清理、登记、续期是一个原子动作。
type RedisSlidingWindow struct {
	cmd       redis.Cmdable
	interval  time.Duration
	keyPrefix string
}

// NewRedisSlidingWindow 创建一个窗口长度为interval的滑动窗口计数器
func NewRedisSlidingWindow(cmd redis.Cmdable, interval time.Duration) *RedisSlidingWindow {
	return &RedisSlidingWindow{
		cmd:       cmd,
		interval:  interval,
		keyPrefix: "window:",
	}
}

// Record 在窗口内登记一次事件，返回登记后的窗口计数
func (r *RedisSlidingWindow) Record(ctx context.Context, key string) (int64, error) {
	return r.cmd.Eval(ctx, slidingWindowRecordScript,
		[]string{r.windowKey(key)},
		r.interval.Milliseconds(),
		time.Now().UnixMilli(),
	).Int64()
}

// Count 读取当前窗口内的事件数。纯读操作，不登记、不清理。
func (r *RedisSlidingWindow) Count(ctx context.Context, key string) (int64, error) {
	minScore := time.Now().Add(-r.interval).UnixMilli()
	return r.cmd.ZCount(ctx, r.windowKey(key),
		fmt.Sprintf("(%d", minScore), "+inf").Result()
}

// windowKey 获取窗口计数的Redis键
func (r *RedisSlidingWindow) windowKey(key string) string {
	return fmt.Sprintf("%s%s", r.keyPrefix, key)
}
