package adapter

import (
	"context"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
)

// 门禁拒绝原因
const (
	ReasonInactive    = "provider inactive"
	ReasonUnhealthy   = "consecutive failures exceeded"
	ReasonRateLimited = "rate limit exceeded"
)

// Adapter 传输适配器能力契约。
// 任何传输家族（SMTP直连、HTTP API、Webhook中继）都实现这一个接口，
// 引擎不感知具体厂商。
//
//go:generate mockgen -source=./types.go -destination=./mocks/adapter.mock.go -package=adaptermocks Adapter
type Adapter interface {
	// Send 发送消息。失败时返回归一化的 *errs.SendError，
	// 引擎不会分支到厂商特有的错误形态上。
	Send(ctx context.Context, msg domain.Message) (domain.SendReceipt, error)
	// CheckHealth 连通性探测，不产生真实发送
	CheckHealth(ctx context.Context) error
	// Capabilities 能力声明：附件、HTML、批量、收件人上限、附件大小上限
	Capabilities() domain.Capabilities
	// CanSend 纯读门禁。供应商未激活、连续失败达到阈值、
	// 时/日配额耗尽时返回false与原因。调用任意次都不改变任何计数。
	CanSend(ctx context.Context) (bool, string, error)
}

// HealthReader 健康计数只读视图，由健康跟踪器提供
type HealthReader interface {
	Snapshot(ctx context.Context, provider domain.Provider) (domain.HealthSnapshot, error)
}

// Secrets 凭证解密器。适配器在发送调用内临时解密，
// 明文随调用结束丢弃，不缓存、不落日志。
type Secrets interface {
	Decrypt(encrypted string) (string, error)
}
