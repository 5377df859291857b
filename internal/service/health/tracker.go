package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	"gitee.com/flycash/mail-delivery-platform/internal/pkg/ratelimit"
	"gitee.com/flycash/mail-delivery-platform/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"github.com/redis/go-redis/v9"
)

const (
	hourKeyPrefix     = "provider:hour"
	dayKeyPrefix      = "provider:day"
	failuresKeyPrefix = "provider:failures"
)

// Tracker 供应商健康与速率跟踪器。
// 实时计数放在Redis里做原子更新，多个并发链路共享同一份计数，
// 不存在读-改-写竞争。累计计数异步落库。
//
//go:generate mockgen -source=./tracker.go -destination=./mocks/tracker.mock.go -package=healthmocks Tracker
type Tracker interface {
	// Snapshot 读取供应商当前计数快照。纯读，调用任意次都不会改变计数。
	Snapshot(ctx context.Context, provider domain.Provider) (domain.HealthSnapshot, error)
	// MarkSuccess 登记一次成功发送：时/日窗口+1，连续失败清零
	MarkSuccess(ctx context.Context, providerID int64) error
	// MarkFailure 登记一次失败发送：时/日窗口+1，连续失败+1。
	// 限流跳过不会调用本方法，跳过不算失败。
	MarkFailure(ctx context.Context, providerID int64) error
	// ConsecutiveFailures 读取连续失败次数
	ConsecutiveFailures(ctx context.Context, providerID int64) (int64, error)
	// ResetFailures 运维介入，清零连续失败计数。
	// 引擎不做自动恢复，越过阈值的供应商只能由运维显式重置。
	ResetFailures(ctx context.Context, providerID int64) error
}

type redisTracker struct {
	rdb        redis.Cmdable
	hourWindow ratelimit.Window
	dayWindow  ratelimit.Window
	repo       repository.ProviderRepository
	logger     *elog.Component
}

func NewRedisTracker(rdb redis.Cmdable, repo repository.ProviderRepository) Tracker {
	return &redisTracker{
		rdb:        rdb,
		hourWindow: ratelimit.NewRedisSlidingWindow(rdb, time.Hour),
		dayWindow:  ratelimit.NewRedisSlidingWindow(rdb, 24*time.Hour),
		repo:       repo,
		logger:     elog.DefaultLogger,
	}
}

func (t *redisTracker) Snapshot(ctx context.Context, provider domain.Provider) (domain.HealthSnapshot, error) {
	hourly, err := t.hourWindow.Count(ctx, t.hourKey(provider.ID))
	if err != nil {
		return domain.HealthSnapshot{}, fmt.Errorf("读取小时窗口计数失败: %w", err)
	}

	daily, err := t.dayWindow.Count(ctx, t.dayKey(provider.ID))
	if err != nil {
		return domain.HealthSnapshot{}, fmt.Errorf("读取每日窗口计数失败: %w", err)
	}

	failures, err := t.ConsecutiveFailures(ctx, provider.ID)
	if err != nil {
		return domain.HealthSnapshot{}, err
	}

	return domain.HealthSnapshot{
		HourlyCount:         hourly,
		DailyCount:          daily,
		ConsecutiveFailures: failures,
	}, nil
}

func (t *redisTracker) MarkSuccess(ctx context.Context, providerID int64) error {
	if err := t.recordWindows(ctx, providerID); err != nil {
		return err
	}

	if err := t.rdb.Set(ctx, t.failuresKey(providerID), 0, 0).Err(); err != nil {
		return fmt.Errorf("清零连续失败计数失败: %w", err)
	}

	t.persistTotals(ctx, providerID, true)
	return nil
}

func (t *redisTracker) MarkFailure(ctx context.Context, providerID int64) error {
	if err := t.recordWindows(ctx, providerID); err != nil {
		return err
	}

	if err := t.rdb.Incr(ctx, t.failuresKey(providerID)).Err(); err != nil {
		return fmt.Errorf("累加连续失败计数失败: %w", err)
	}

	t.persistTotals(ctx, providerID, false)
	return nil
}

func (t *redisTracker) ConsecutiveFailures(ctx context.Context, providerID int64) (int64, error) {
	failures, err := t.rdb.Get(ctx, t.failuresKey(providerID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("读取连续失败计数失败: %w", err)
	}
	return failures, nil
}

func (t *redisTracker) ResetFailures(ctx context.Context, providerID int64) error {
	return t.rdb.Set(ctx, t.failuresKey(providerID), 0, 0).Err()
}

func (t *redisTracker) recordWindows(ctx context.Context, providerID int64) error {
	if _, err := t.hourWindow.Record(ctx, t.hourKey(providerID)); err != nil {
		return fmt.Errorf("登记小时窗口失败: %w", err)
	}
	if _, err := t.dayWindow.Record(ctx, t.dayKey(providerID)); err != nil {
		return fmt.Errorf("登记每日窗口失败: %w", err)
	}
	return nil
}

// persistTotals 累计计数落库，走原子列表达式。失败只记日志，
// 不影响发送主流程。
func (t *redisTracker) persistTotals(ctx context.Context, providerID int64, success bool) {
	if err := t.repo.UpdateHealth(ctx, providerID, success); err != nil {
		t.logger.Warn("更新供应商累计计数失败",
			elog.Any("err", err),
			elog.Int64("providerID", providerID),
		)
	}
}

func (t *redisTracker) hourKey(providerID int64) string {
	return fmt.Sprintf("%s:%d", hourKeyPrefix, providerID)
}

func (t *redisTracker) dayKey(providerID int64) string {
	return fmt.Sprintf("%s:%d", dayKeyPrefix, providerID)
}

func (t *redisTracker) failuresKey(providerID int64) string {
	return fmt.Sprintf("%s:%d", failuresKeyPrefix, providerID)
}
