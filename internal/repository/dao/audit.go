package dao

import (
	"context"

	"github.com/ego-component/egorm"
)

// DeliveryAudit 发送审计记录，只追加。不落正文与凭证。
type DeliveryAudit struct {
	ID             int64  `gorm:"primaryKey;comment:'审计ID'"`
	MessageID      int64  `gorm:"type:BIGINT;NOT NULL;index:idx_message_id;comment:'消息ID'"`
	TaskType       string `gorm:"type:VARCHAR(32);NOT NULL;comment:'任务类别'"`
	ProviderID     int64  `gorm:"type:BIGINT;NOT NULL;index:idx_provider_id;comment:'供应商ID'"`
	ProviderName   string `gorm:"type:VARCHAR(64);NOT NULL;comment:'供应商名称'"`
	Success        bool   `gorm:"type:TINYINT(1);NOT NULL;comment:'是否成功'"`
	ErrorCode      string `gorm:"type:VARCHAR(64);comment:'归一化错误码'"`
	ErrorMessage   string `gorm:"type:VARCHAR(512);comment:'截断后的错误文本'"`
	Attempt        int32  `gorm:"type:INT;NOT NULL;comment:'链路内尝试序号'"`
	RecipientCount int32  `gorm:"type:INT;NOT NULL;comment:'收件人数量'"`
	Ctime          int64
}

// TableName 重命名表
func (DeliveryAudit) TableName() string {
	return "delivery_audits"
}

type DeliveryAuditDAO interface {
	// Create 追加一条审计记录
	Create(ctx context.Context, audit DeliveryAudit) (DeliveryAudit, error)
	// FindByMessageID 查询某条消息的全部尝试记录，按尝试序号排列
	FindByMessageID(ctx context.Context, messageID int64) ([]DeliveryAudit, error)
}

type deliveryAuditDAO struct {
	db *egorm.Component
}

func NewDeliveryAuditDAO(db *egorm.Component) DeliveryAuditDAO {
	return &deliveryAuditDAO{db: db}
}

func (d *deliveryAuditDAO) Create(ctx context.Context, audit DeliveryAudit) (DeliveryAudit, error) {
	if err := d.db.WithContext(ctx).Create(&audit).Error; err != nil {
		return DeliveryAudit{}, err
	}
	return audit, nil
}

func (d *deliveryAuditDAO) FindByMessageID(ctx context.Context, messageID int64) ([]DeliveryAudit, error) {
	var audits []DeliveryAudit
	err := d.db.WithContext(ctx).
		Where("message_id = ?", messageID).
		Order("attempt ASC").
		Find(&audits).Error
	if err != nil {
		return nil, err
	}
	return audits, nil
}
