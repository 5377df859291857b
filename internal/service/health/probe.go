package health

import (
	"context"
	"time"

	"gitee.com/flycash/mail-delivery-platform/internal/pkg/loopjob"
	"gitee.com/flycash/mail-delivery-platform/internal/repository"
	"gitee.com/flycash/mail-delivery-platform/internal/service/adapter"
	"github.com/gotomicro/ego/core/elog"
	"github.com/meoying/dlock-go"
)

const (
	probeLockKey  = "health_probe"
	probeTimeout  = 10 * time.Second
	probeInterval = time.Minute
)

// Probe 供应商连通性探测循环。整个集群同一时刻只有一个实例在探测，
// 由分布式锁保证。探测只做连通性检查，不产生真实发送，
// 结果只记日志与指标，不影响连续失败计数。
type Probe struct {
	providerRepo repository.ProviderRepository
	factory      adapter.Factory
	loop         *loopjob.InfiniteLoop
	logger       *elog.Component
}

func NewProbe(dclient dlock.Client, providerRepo repository.ProviderRepository, factory adapter.Factory) *Probe {
	p := &Probe{
		providerRepo: providerRepo,
		factory:      factory,
		logger:       elog.DefaultLogger,
	}
	p.loop = loopjob.NewInfiniteLoop(dclient, p.probeOnce, probeLockKey)
	return p
}

// Run 当 ctx 被取消的时候退出
func (p *Probe) Run(ctx context.Context) {
	p.loop.Run(ctx)
}

func (p *Probe) probeOnce(ctx context.Context) error {
	providers, err := p.providerRepo.FindActive(ctx)
	if err != nil {
		return err
	}

	for i := range providers {
		a := p.factory.Adapter(providers[i])

		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := a.CheckHealth(probeCtx)
		cancel()

		if err != nil {
			p.logger.Warn("供应商连通性探测失败",
				elog.Int64("providerID", providers[i].ID),
				elog.String("provider", providers[i].Name),
				elog.Any("err", err),
			)
		}
	}

	// 两轮探测之间歇一会，避免空转
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(probeInterval):
		return nil
	}
}
