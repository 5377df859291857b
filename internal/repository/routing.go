package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	"gitee.com/flycash/mail-delivery-platform/internal/errs"
	"gitee.com/flycash/mail-delivery-platform/internal/repository/cache"
	"gitee.com/flycash/mail-delivery-platform/internal/repository/cache/local"
	cacheredis "gitee.com/flycash/mail-delivery-platform/internal/repository/cache/redis"
	"gitee.com/flycash/mail-delivery-platform/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
	"gorm.io/gorm"
)

// TaskRoutingRepository 任务路由仓储接口
//
//go:generate mockgen -source=./routing.go -destination=./mocks/routing.mock.go -package=repomocks -typed TaskRoutingRepository
type TaskRoutingRepository interface {
	// Create 创建路由
	Create(ctx context.Context, routing domain.TaskRouting) (domain.TaskRouting, error)
	// Update 更新路由
	Update(ctx context.Context, routing domain.TaskRouting) error
	// FindByTaskType 根据任务类别查找路由
	FindByTaskType(ctx context.Context, task domain.TaskType) (domain.TaskRouting, error)
	// FindAll 查找全部路由
	FindAll(ctx context.Context) ([]domain.TaskRouting, error)
}

type taskRoutingRepository struct {
	dao        dao.TaskRoutingDAO
	localCache cache.RoutingCache
	redisCache cache.RoutingCache
	logger     *elog.Component
}

func NewTaskRoutingRepository(d dao.TaskRoutingDAO, localCache *local.Cache, redisCache *cacheredis.Cache) TaskRoutingRepository {
	return &taskRoutingRepository{
		dao:        d,
		localCache: localCache,
		redisCache: redisCache,
		logger:     elog.DefaultLogger,
	}
}

func (t *taskRoutingRepository) Create(ctx context.Context, routing domain.TaskRouting) (domain.TaskRouting, error) {
	entity, err := t.toEntity(routing)
	if err != nil {
		return domain.TaskRouting{}, err
	}
	created, err := t.dao.Create(ctx, entity)
	if err != nil {
		return domain.TaskRouting{}, err
	}
	return t.toDomain(created)
}

func (t *taskRoutingRepository) Update(ctx context.Context, routing domain.TaskRouting) error {
	entity, err := t.toEntity(routing)
	if err != nil {
		return err
	}
	if err := t.dao.Update(ctx, entity); err != nil {
		return err
	}
	// 更新后清理两级缓存，下次查询回源
	t.evict(ctx, routing.Task)
	return nil
}

// FindByTaskType 本地缓存 → Redis → DB，逐级回源并回填
func (t *taskRoutingRepository) FindByTaskType(ctx context.Context, task domain.TaskType) (domain.TaskRouting, error) {
	routing, err := t.localCache.Get(ctx, task)
	if err == nil {
		return routing, nil
	}

	routing, err = t.redisCache.Get(ctx, task)
	if err == nil {
		if err := t.localCache.Set(ctx, routing); err != nil {
			t.logger.Warn("回填本地缓存失败", elog.Any("err", err), elog.String("task", string(task)))
		}
		return routing, nil
	}

	entity, err := t.dao.FindByTaskType(ctx, string(task))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TaskRouting{}, fmt.Errorf("%w: task = %s", errs.ErrRoutingNotFound, task)
		}
		return domain.TaskRouting{}, err
	}

	routing, err = t.toDomain(entity)
	if err != nil {
		return domain.TaskRouting{}, err
	}

	if err := t.redisCache.Set(ctx, routing); err != nil {
		t.logger.Warn("回填Redis缓存失败", elog.Any("err", err), elog.String("task", string(task)))
	}
	if err := t.localCache.Set(ctx, routing); err != nil {
		t.logger.Warn("回填本地缓存失败", elog.Any("err", err), elog.String("task", string(task)))
	}

	return routing, nil
}

func (t *taskRoutingRepository) FindAll(ctx context.Context) ([]domain.TaskRouting, error) {
	entities, err := t.dao.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.TaskRouting, 0, len(entities))
	for i := range entities {
		routing, err := t.toDomain(entities[i])
		if err != nil {
			return nil, err
		}
		result = append(result, routing)
	}
	return result, nil
}

func (t *taskRoutingRepository) evict(ctx context.Context, task domain.TaskType) {
	if err := t.localCache.Del(ctx, task); err != nil {
		t.logger.Warn("清理本地缓存失败", elog.Any("err", err), elog.String("task", string(task)))
	}
	if err := t.redisCache.Del(ctx, task); err != nil {
		t.logger.Warn("清理Redis缓存失败", elog.Any("err", err), elog.String("task", string(task)))
	}
}

func (t *taskRoutingRepository) toDomain(d dao.TaskRouting) (domain.TaskRouting, error) {
	fallbackIDs, err := d.UnmarshalFallbackIDs()
	if err != nil {
		return domain.TaskRouting{}, fmt.Errorf("反序列化兜底供应商列表失败: %w", err)
	}
	return domain.TaskRouting{
		ID:                  d.ID,
		Task:                domain.TaskType(d.TaskType),
		PrimaryProviderID:   d.PrimaryProviderID,
		FallbackProviderIDs: fallbackIDs,
		RetryAttempts:       d.RetryAttempts,
		RetryDelay:          time.Duration(d.RetryDelayMs) * time.Millisecond,
		MaxSendAttempts:     d.MaxSendAttempts,
		ForceProviderID:     d.ForceProviderID,
		Enabled:             d.Enabled,
	}, nil
}

func (t *taskRoutingRepository) toEntity(routing domain.TaskRouting) (dao.TaskRouting, error) {
	entity := dao.TaskRouting{
		ID:                routing.ID,
		TaskType:          string(routing.Task),
		PrimaryProviderID: routing.PrimaryProviderID,
		RetryAttempts:     routing.RetryAttempts,
		RetryDelayMs:      routing.RetryDelay.Milliseconds(),
		MaxSendAttempts:   routing.MaxSendAttempts,
		ForceProviderID:   routing.ForceProviderID,
		Enabled:           routing.Enabled,
	}
	if err := entity.MarshalFallbackIDs(routing.FallbackProviderIDs); err != nil {
		return dao.TaskRouting{}, fmt.Errorf("序列化兜底供应商列表失败: %w", err)
	}
	return entity, nil
}
