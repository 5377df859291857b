package domain

import (
	"fmt"
	"time"

	"gitee.com/flycash/mail-delivery-platform/internal/errs"
)

// TaskRouting 任务路由配置，每个任务类别一行
type TaskRouting struct {
	ID                  int64
	Task                TaskType
	PrimaryProviderID   int64
	FallbackProviderIDs []int64 // 按声明顺序兜底
	RetryAttempts       int32   // 单个供应商的尝试次数
	RetryDelay          time.Duration
	MaxSendAttempts     int32 // 整条链路的总尝试上限
	ForceProviderID     int64 // 大于0时绕过正常链路，强制使用该供应商
	Enabled             bool
}

// Forced 是否设置了强制供应商
func (r TaskRouting) Forced() bool {
	return r.ForceProviderID > 0
}

func (r TaskRouting) Validate() error {
	if !r.Task.IsValid() {
		return fmt.Errorf("%w: Task = %q", errs.ErrInvalidParameter, r.Task)
	}

	if r.PrimaryProviderID <= 0 && !r.Forced() {
		return fmt.Errorf("%w: PrimaryProviderID = %d", errs.ErrInvalidParameter, r.PrimaryProviderID)
	}

	if r.RetryAttempts <= 0 {
		return fmt.Errorf("%w: RetryAttempts = %d", errs.ErrInvalidParameter, r.RetryAttempts)
	}

	if r.MaxSendAttempts <= 0 {
		return fmt.Errorf("%w: MaxSendAttempts = %d", errs.ErrInvalidParameter, r.MaxSendAttempts)
	}

	if r.RetryDelay < 0 {
		return fmt.Errorf("%w: RetryDelay = %v", errs.ErrInvalidParameter, r.RetryDelay)
	}

	return nil
}
