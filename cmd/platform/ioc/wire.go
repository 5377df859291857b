//go:build wireinject

package ioc

import (
	evtaudit "gitee.com/flycash/mail-delivery-platform/internal/event/audit"
	"gitee.com/flycash/mail-delivery-platform/internal/ioc"
	"gitee.com/flycash/mail-delivery-platform/internal/repository"
	"gitee.com/flycash/mail-delivery-platform/internal/repository/cache/local"
	cacheredis "gitee.com/flycash/mail-delivery-platform/internal/repository/cache/redis"
	"gitee.com/flycash/mail-delivery-platform/internal/repository/dao"
	auditsvc "gitee.com/flycash/mail-delivery-platform/internal/service/audit"
	consentsvc "gitee.com/flycash/mail-delivery-platform/internal/service/consent"
	healthsvc "gitee.com/flycash/mail-delivery-platform/internal/service/health"
	managesvc "gitee.com/flycash/mail-delivery-platform/internal/service/manage"
	routingsvc "gitee.com/flycash/mail-delivery-platform/internal/service/routing"
	"github.com/google/wire"
)

var (
	// BaseSet 基础设施
	BaseSet = wire.NewSet(
		ioc.InitDB,
		ioc.InitRedisClient,
		ioc.InitRedisCmd,
		ioc.InitDistributedLock,
		ioc.InitGoCache,
		ioc.InitCipher,
		ioc.InitIDGenerator,
		ioc.InitMQ,
		ioc.InitHTTPClient,

		local.NewLocalCache,
		cacheredis.NewCache,
	)
	repoSet = wire.NewSet(
		dao.NewProviderDAO,
		repository.NewProviderRepository,
		dao.NewTaskRoutingDAO,
		repository.NewTaskRoutingRepository,
		dao.NewConsentDAO,
		repository.NewConsentRepository,
		dao.NewDeliveryAuditDAO,
		repository.NewDeliveryAuditRepository,
	)
	healthSet = wire.NewSet(
		healthsvc.NewRedisTracker,
		healthsvc.NewProbe,
		ioc.InitAdapterFactory,
	)
	engineSet = wire.NewSet(
		consentsvc.NewService,
		evtaudit.NewAttemptEventProducer,
		auditsvc.NewService,
		routingsvc.NewChainBuilder,
		routingsvc.NewEngine,
	)
	manageSet = wire.NewSet(managesvc.NewService)
)

func InitApp() (*ioc.App, error) {
	wire.Build(
		BaseSet,
		repoSet,
		healthSet,
		engineSet,
		manageSet,
		wire.Struct(new(ioc.App), "*"),
	)
	return new(ioc.App), nil
}
