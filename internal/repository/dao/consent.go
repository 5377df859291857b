package dao

import (
	"context"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm/clause"
)

// ConsentRecord 收件人授权记录
type ConsentRecord struct {
	ID       int64  `gorm:"primaryKey;autoIncrement;comment:'记录ID'"`
	UserID   int64  `gorm:"type:BIGINT;NOT NULL;uniqueIndex:idx_user_task;comment:'用户ID'"`
	TaskType string `gorm:"type:VARCHAR(32);NOT NULL;uniqueIndex:idx_user_task;comment:'任务类别'"`
	Status   string `gorm:"type:ENUM('OPT_IN','OPT_OUT');NOT NULL;comment:'授权状态'"`
	Ctime    int64
	Utime    int64
}

// TableName 重命名表
func (ConsentRecord) TableName() string {
	return "consent_records"
}

type ConsentDAO interface {
	// Upsert 写入或更新授权记录
	Upsert(ctx context.Context, record ConsentRecord) error
	// Find 查找用户对某任务类别的授权记录
	Find(ctx context.Context, userID int64, taskType string) (ConsentRecord, error)
}

type consentDAO struct {
	db *egorm.Component
}

func NewConsentDAO(db *egorm.Component) ConsentDAO {
	return &consentDAO{db: db}
}

func (c *consentDAO) Upsert(ctx context.Context, record ConsentRecord) error {
	now := time.Now().Unix()
	record.Ctime = now
	record.Utime = now
	return c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "task_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "utime"}),
	}).Create(&record).Error
}

func (c *consentDAO) Find(ctx context.Context, userID int64, taskType string) (ConsentRecord, error) {
	var record ConsentRecord
	err := c.db.WithContext(ctx).
		Where("user_id = ? AND task_type = ?", userID, taskType).
		First(&record).Error
	if err != nil {
		return ConsentRecord{}, err
	}
	return record, nil
}
