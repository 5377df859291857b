package adapter

import (
	"context"
	"fmt"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
)

// base 各传输适配器共用的门禁实现
type base struct {
	provider domain.Provider
	health   HealthReader
}

// CanSend 纯读门禁，只读取当前计数，不做任何登记
func (b *base) CanSend(ctx context.Context) (bool, string, error) {
	if !b.provider.IsActive() {
		return false, ReasonInactive, nil
	}

	snapshot, err := b.health.Snapshot(ctx, b.provider)
	if err != nil {
		return false, "", fmt.Errorf("读取健康快照失败: %w", err)
	}

	if snapshot.ConsecutiveFailures >= domain.MaxConsecutiveFailures {
		return false, ReasonUnhealthy, nil
	}

	if b.provider.MaxPerHour > 0 && snapshot.HourlyCount >= int64(b.provider.MaxPerHour) {
		return false, ReasonRateLimited, nil
	}

	if b.provider.MaxPerDay > 0 && snapshot.DailyCount >= int64(b.provider.MaxPerDay) {
		return false, ReasonRateLimited, nil
	}

	return true, "", nil
}
