package ioc

import (
	"context"

	"gitee.com/flycash/mail-delivery-platform/internal/repository"
	"gitee.com/flycash/mail-delivery-platform/internal/service/audit"
	"gitee.com/flycash/mail-delivery-platform/internal/service/consent"
	"gitee.com/flycash/mail-delivery-platform/internal/service/health"
	"gitee.com/flycash/mail-delivery-platform/internal/service/manage"
	"gitee.com/flycash/mail-delivery-platform/internal/service/routing"
)

// App 组装完成的应用。对外提供发送引擎与管理服务，
// 内部后台任务通过 StartTasks 启动。
type App struct {
	Engine routing.Engine

	ManageSvc  manage.Service
	ConsentSvc consent.Service
	AuditSvc   audit.Service

	ProviderRepo repository.ProviderRepository
	RoutingRepo  repository.TaskRoutingRepository

	Probe *health.Probe
}

// StartTasks 启动后台任务，ctx取消时全部退出
func (a *App) StartTasks(ctx context.Context) {
	go a.Probe.Run(ctx)
}
