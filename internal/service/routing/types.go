package routing

import (
	"context"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
)

// Engine 路由执行引擎。对单条消息顺序走完供应商链路：
// 授权检查 → 路由查找 → 链路构建 → 按序尝试（重试+切换）。
// 不同消息之间可以完全并发。
type Engine interface {
	// SendWithRouting 按任务类别的路由配置发送一条消息，
	// 同步返回聚合结果。所有结局都通过返回值表达，不会向外抛异常。
	SendWithRouting(ctx context.Context, msg domain.Message) (domain.FailoverResult, error)
	// BatchSendWithRouting 并发发送多条互相独立的消息，
	// 单条消息内部仍然是严格顺序的链路行走
	BatchSendWithRouting(ctx context.Context, msgs []domain.Message) ([]domain.FailoverResult, error)
}
