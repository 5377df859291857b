package audit

// AttemptEventTopic 发送尝试事件主题
const AttemptEventTopic = "delivery_attempt_events"

// AttemptEvent 每次发送尝试对外发布一条，供下游消费（对账、告警）。
// 与审计记录一样，不携带正文与凭证。
type AttemptEvent struct {
	MessageID      int64  `json:"messageId"`
	Task           string `json:"task"`
	ProviderID     int64  `json:"providerId"`
	ProviderName   string `json:"providerName"`
	Success        bool   `json:"success"`
	ErrorCode      string `json:"errorCode,omitempty"`
	Attempt        int32  `json:"attempt"`
	RecipientCount int32  `json:"recipientCount"`
	Timestamp      int64  `json:"timestamp"`
}
