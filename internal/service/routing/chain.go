package routing

import (
	"context"
	"errors"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	"gitee.com/flycash/mail-delivery-platform/internal/errs"
	"gitee.com/flycash/mail-delivery-platform/internal/repository"
	"gitee.com/flycash/mail-delivery-platform/internal/service/health"
	"github.com/gotomicro/ego/core/elog"
)

// ChainBuilder 根据路由配置构建有序的供应商链路。
// 结果顺序就是尝试顺序：主供应商在前，兜底按声明序在后，
// 不按健康度或其他标准重排。
type ChainBuilder struct {
	providerRepo repository.ProviderRepository
	tracker      health.Tracker
	logger       *elog.Component
}

func NewChainBuilder(providerRepo repository.ProviderRepository, tracker health.Tracker) *ChainBuilder {
	return &ChainBuilder{
		providerRepo: providerRepo,
		tracker:      tracker,
		logger:       elog.DefaultLogger,
	}
}

// Build 构建链路。强制供应商绕过健康过滤但仍要求激活状态；
// 正常链路里未激活或连续失败达到阈值的供应商直接剔除。
func (b *ChainBuilder) Build(ctx context.Context, routing domain.TaskRouting) ([]domain.Provider, error) {
	if routing.Forced() {
		return b.buildForced(ctx, routing.ForceProviderID)
	}

	ids := make([]int64, 0, len(routing.FallbackProviderIDs)+1)
	ids = append(ids, routing.PrimaryProviderID)
	ids = append(ids, routing.FallbackProviderIDs...)

	providers, err := b.providerRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	chain := make([]domain.Provider, 0, len(ids))
	for _, id := range ids {
		p, ok := providers[id]
		if !ok {
			b.logger.Warn("路由引用了不存在的供应商",
				elog.Int64("providerID", id),
				elog.String("task", string(routing.Task)),
			)
			continue
		}

		if !p.IsActive() {
			continue
		}

		failures, err := b.tracker.ConsecutiveFailures(ctx, id)
		if err != nil {
			return nil, err
		}
		if failures >= domain.MaxConsecutiveFailures {
			continue
		}

		chain = append(chain, p)
	}

	return chain, nil
}

func (b *ChainBuilder) buildForced(ctx context.Context, providerID int64) ([]domain.Provider, error) {
	p, err := b.providerRepo.FindByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, errs.ErrProviderNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !p.IsActive() {
		return nil, nil
	}

	return []domain.Provider{p}, nil
}
