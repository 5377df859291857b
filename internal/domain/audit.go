package domain

import "time"

// DeliveryAudit 发送审计记录，只追加不修改。
// 不包含正文与任何凭证，只有元数据。
type DeliveryAudit struct {
	ID             int64
	MessageID      int64
	Task           TaskType
	ProviderID     int64
	ProviderName   string
	Success        bool
	ErrorCode      string
	ErrorMessage   string // 截断后的错误文本
	Attempt        int32  // 链路内的尝试序号
	RecipientCount int32
	Timestamp      time.Time
}
