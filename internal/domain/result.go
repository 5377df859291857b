package domain

import "time"

// FailureCode 引擎对外的错误码。配置类错误不重试，传输类错误在引擎内重试兜底。
type FailureCode string

const (
	FailureCodeNone                 FailureCode = ""
	FailureCodeConsentRequired      FailureCode = "CONSENT_REQUIRED"       // 收件人未授权
	FailureCodeRoutingNotConfigured FailureCode = "ROUTING_NOT_CONFIGURED" // 任务类别无启用的路由
	FailureCodeNoProvidersAvailable FailureCode = "NO_PROVIDERS_AVAILABLE" // 链路为空
	FailureCodeProviderUnavailable  FailureCode = "PROVIDER_UNAVAILABLE"   // 检查时刻被限流或未激活
	FailureCodeSendError            FailureCode = "SEND_ERROR"             // 传输层失败
	FailureCodeAllProvidersFailed   FailureCode = "ALL_PROVIDERS_FAILED"   // 整条链路耗尽
)

// AttemptResult 单次尝试结果。落审计后即丢弃，不做长期保留。
type AttemptResult struct {
	Success      bool
	ProviderID   int64
	ProviderName string
	ErrorCode    string // 归一化后的传输错误码
	ErrorMessage string
	Attempt      int32 // 整条链路内的序号，从1开始
	Timestamp    time.Time
}

// SendReceipt 适配器成功发送后的回执
type SendReceipt struct {
	ProviderMessageID string // 供应商侧的消息标识，可能为空
}

// FailoverResult 一次完整链路执行的聚合结果，同步返回给调用方
type FailoverResult struct {
	Success       bool
	MessageID     int64
	ProviderID    int64 // 最终使用的供应商
	ProviderName  string
	TotalAttempts int32 // 整条链路的总尝试次数

	FailoverOccurred       bool
	FailoverFromProviderID int64  // 触发切换的供应商
	FailoverReason         string // 触发切换的原因

	ErrorCode    FailureCode
	ErrorMessage string
}
