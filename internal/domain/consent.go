package domain

// ConsentStatus 收件人对某任务类别的授权状态
type ConsentStatus string

const (
	ConsentStatusOptIn  ConsentStatus = "OPT_IN"  // 已订阅
	ConsentStatusOptOut ConsentStatus = "OPT_OUT" // 已退订
)

// ConsentRecord 收件人授权记录。无记录时按任务类别的默认策略处理。
type ConsentRecord struct {
	ID     int64
	UserID int64
	Task   TaskType
	Status ConsentStatus
}
