package ratelimit

import "golang.org/x/net/context"

// Window 滑动窗口计数器。
// Record 在窗口内登记一次事件，Count 只读取当前窗口内的事件数，不产生任何写入。
//
//go:generate mockgen -source=./types.go -package=limitmocks -destination=./mocks/window.mock.go Window
type Window interface {
	// Record 登记一次事件，返回登记后的窗口计数
	Record(ctx context.Context, key string) (int64, error)
	// Count 读取当前窗口内的事件数，纯读
	Count(ctx context.Context, key string) (int64, error)
}
