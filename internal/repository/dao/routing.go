package dao

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ego-component/egorm"
)

// TaskRouting 任务路由模型，每个任务类别一行
type TaskRouting struct {
	ID                  int64  `gorm:"primaryKey;autoIncrement;comment:'路由ID'"`
	TaskType            string `gorm:"type:VARCHAR(32);NOT NULL;uniqueIndex:idx_task_type;comment:'任务类别'"`
	PrimaryProviderID   int64  `gorm:"type:BIGINT;NOT NULL;comment:'主供应商ID'"`
	FallbackProviderIDs string `gorm:"type:VARCHAR(1024);comment:'兜底供应商ID列表，JSON数组，声明序即尝试序'"`
	RetryAttempts       int32  `gorm:"type:INT;NOT NULL;DEFAULT:1;comment:'单供应商尝试次数'"`
	RetryDelayMs        int64  `gorm:"type:BIGINT;NOT NULL;DEFAULT:0;comment:'重试间隔，毫秒'"`
	MaxSendAttempts     int32  `gorm:"type:INT;NOT NULL;comment:'整条链路总尝试上限'"`
	ForceProviderID     int64  `gorm:"type:BIGINT;NOT NULL;DEFAULT:0;comment:'强制供应商ID，0为未设置'"`
	Enabled             bool   `gorm:"type:TINYINT(1);NOT NULL;DEFAULT:1;comment:'是否启用'"`
	Ctime               int64
	Utime               int64
}

// TableName 重命名表
func (TaskRouting) TableName() string {
	return "task_routings"
}

// MarshalFallbackIDs 序列化兜底供应商ID列表
func (t *TaskRouting) MarshalFallbackIDs(ids []int64) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	t.FallbackProviderIDs = string(data)
	return nil
}

// UnmarshalFallbackIDs 反序列化兜底供应商ID列表
func (t *TaskRouting) UnmarshalFallbackIDs() ([]int64, error) {
	if t.FallbackProviderIDs == "" {
		return nil, nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(t.FallbackProviderIDs), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

type TaskRoutingDAO interface {
	// Create 创建路由
	Create(ctx context.Context, routing TaskRouting) (TaskRouting, error)
	// Update 更新路由
	Update(ctx context.Context, routing TaskRouting) error
	// FindByTaskType 根据任务类别查找路由
	FindByTaskType(ctx context.Context, taskType string) (TaskRouting, error)
	// FindAll 查找全部路由
	FindAll(ctx context.Context) ([]TaskRouting, error)
}

type taskRoutingDAO struct {
	db *egorm.Component
}

func NewTaskRoutingDAO(db *egorm.Component) TaskRoutingDAO {
	return &taskRoutingDAO{db: db}
}

func (t *taskRoutingDAO) Create(ctx context.Context, routing TaskRouting) (TaskRouting, error) {
	now := time.Now().Unix()
	routing.Ctime = now
	routing.Utime = now
	if err := t.db.WithContext(ctx).Create(&routing).Error; err != nil {
		return TaskRouting{}, err
	}
	return routing, nil
}

func (t *taskRoutingDAO) Update(ctx context.Context, routing TaskRouting) error {
	routing.Utime = time.Now().Unix()
	updates := map[string]interface{}{
		"primary_provider_id":   routing.PrimaryProviderID,
		"fallback_provider_ids": routing.FallbackProviderIDs,
		"retry_attempts":        routing.RetryAttempts,
		"retry_delay_ms":        routing.RetryDelayMs,
		"max_send_attempts":     routing.MaxSendAttempts,
		"force_provider_id":     routing.ForceProviderID,
		"enabled":               routing.Enabled,
		"utime":                 routing.Utime,
	}
	return t.db.WithContext(ctx).Model(&TaskRouting{}).Where("id = ?", routing.ID).Updates(updates).Error
}

func (t *taskRoutingDAO) FindByTaskType(ctx context.Context, taskType string) (TaskRouting, error) {
	var routing TaskRouting
	err := t.db.WithContext(ctx).Where("task_type = ?", taskType).First(&routing).Error
	if err != nil {
		return TaskRouting{}, err
	}
	return routing, nil
}

func (t *taskRoutingDAO) FindAll(ctx context.Context) ([]TaskRouting, error) {
	var routings []TaskRouting
	err := t.db.WithContext(ctx).Find(&routings).Error
	if err != nil {
		return nil, err
	}
	return routings, nil
}
