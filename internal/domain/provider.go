package domain

import "time"

// Transport 传输类型
type Transport string

const (
	TransportSMTP    Transport = "SMTP"    // SMTP直连
	TransportAPI     Transport = "API"     // HTTP API发信商
	TransportWebhook Transport = "WEBHOOK" // Webhook中继
)

// ProviderStatus 供应商状态
type ProviderStatus string

const (
	ProviderStatusActive   ProviderStatus = "ACTIVE"   // 激活
	ProviderStatusInactive ProviderStatus = "INACTIVE" // 未激活
)

// ProviderRole 供应商在路由中的定位
type ProviderRole string

const (
	ProviderRolePrimary   ProviderRole = "PRIMARY"
	ProviderRoleSecondary ProviderRole = "SECONDARY"
	ProviderRoleFallback  ProviderRole = "FALLBACK"
)

// MaxConsecutiveFailures 连续失败达到该阈值后，供应商不再参与链路构建，
// 直到运维显式重置。引擎不做自动恢复。
const MaxConsecutiveFailures = 10

// Provider 供应商领域模型
type Provider struct {
	ID   int64
	Name string
	Code string // 供应商编码，如 sendgrid, mailgun, postmark

	Transport Transport

	// 发件身份
	SenderName    string
	SenderAddress string

	// 连接参数
	Endpoint string // API/Webhook入口地址
	Host     string // SMTP主机
	Port     int    // SMTP端口

	APIKey    string // API密钥/SMTP用户名，明文
	APISecret string // API密钥/SMTP口令，存储与传递均为密文，适配器调用时临时解密

	Role     ProviderRole
	Priority int // 同一角色内的排序，小者优先

	// 速率上限
	MaxPerHour int
	MaxPerDay  int

	// 累计计数，仅由健康跟踪器变更
	TotalSent    int64
	TotalFailed  int64
	LastUsedAt   time.Time
	LastFailedAt time.Time

	Status ProviderStatus
}

func (p Provider) IsActive() bool {
	return p.Status == ProviderStatusActive
}

// Capabilities 传输能力声明
type Capabilities struct {
	SupportsAttachments bool
	SupportsHTML        bool
	SupportsBulk        bool
	MaxRecipients       int   // 单封邮件收件人上限，0表示不限
	MaxAttachmentSize   int64 // 单附件字节上限，0表示不限
}

// HealthSnapshot 供应商当前健康/速率计数的只读快照
type HealthSnapshot struct {
	HourlyCount         int64
	DailyCount          int64
	ConsecutiveFailures int64
}
