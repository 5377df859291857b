package adapter

import (
	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	"github.com/go-resty/resty/v2"
)

// Decorator 适配器装饰器，观测类包装在出厂时套上
type Decorator func(provider domain.Provider, a Adapter) Adapter

// Factory 根据供应商声明的传输类型构造适配器
//
//go:generate mockgen -source=./factory.go -destination=./mocks/factory.mock.go -package=adaptermocks Factory
type Factory interface {
	// Adapter 返回该供应商对应的适配器实例
	Adapter(provider domain.Provider) Adapter
}

type factory struct {
	health     HealthReader
	secrets    Secrets
	client     *resty.Client
	decorators []Decorator
}

func NewFactory(health HealthReader, secrets Secrets, client *resty.Client, decorators ...Decorator) Factory {
	return &factory{
		health:     health,
		secrets:    secrets,
		client:     client,
		decorators: decorators,
	}
}

// Adapter 查表分发，不走继承。未知传输类型回退到HTTP API适配器：
// 带鉴权的请求/响应是最通用的传输家族，这是刻意的默认安全行为。
func (f *factory) Adapter(provider domain.Provider) Adapter {
	var a Adapter
	switch provider.Transport {
	case domain.TransportSMTP:
		a = NewSMTPAdapter(provider, f.health, f.secrets)
	case domain.TransportWebhook:
		a = NewWebhookAdapter(provider, f.health, f.secrets, f.client)
	case domain.TransportAPI:
		a = NewHTTPAPIAdapter(provider, f.health, f.secrets, f.client)
	default:
		a = NewHTTPAPIAdapter(provider, f.health, f.secrets, f.client)
	}

	for _, d := range f.decorators {
		a = d(provider, a)
	}
	return a
}
