package ioc

import (
	"gitee.com/flycash/mail-delivery-platform/internal/pkg/secret"
	"gitee.com/flycash/mail-delivery-platform/internal/service/adapter"
	adaptermetrics "gitee.com/flycash/mail-delivery-platform/internal/service/adapter/metrics"
	adaptertracing "gitee.com/flycash/mail-delivery-platform/internal/service/adapter/tracing"
	"gitee.com/flycash/mail-delivery-platform/internal/service/health"
	"github.com/go-resty/resty/v2"
)

// InitAdapterFactory 适配器工厂，出厂即带指标与链路追踪装饰
func InitAdapterFactory(tracker health.Tracker, cipher *secret.Cipher, client *resty.Client) adapter.Factory {
	return adapter.NewFactory(
		tracker,
		cipher,
		client,
		adaptermetrics.NewBuilder().Decorate(),
		adaptertracing.Decorate(),
	)
}
