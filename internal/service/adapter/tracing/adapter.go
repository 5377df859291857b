// Package tracing 为适配器实现添加链路追踪的装饰器
package tracing

import (
	"context"
	"strconv"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	"gitee.com/flycash/mail-delivery-platform/internal/service/adapter"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Decorate 返回工厂可用的装饰器
func Decorate() adapter.Decorator {
	tracer := otel.Tracer("mail-delivery-platform/adapter")
	return func(provider domain.Provider, a adapter.Adapter) adapter.Adapter {
		return &Adapter{
			adapter:  a,
			provider: provider,
			tracer:   tracer,
		}
	}
}

// Adapter 带链路追踪的适配器
type Adapter struct {
	adapter  adapter.Adapter
	provider domain.Provider
	tracer   trace.Tracer
}

func (a *Adapter) Send(ctx context.Context, msg domain.Message) (domain.SendReceipt, error) {
	ctx, span := a.tracer.Start(ctx, "Adapter.Send",
		trace.WithAttributes(
			attribute.String("message.id", strconv.FormatInt(msg.ID, 10)),
			attribute.String("message.task", string(msg.Task)),
			attribute.String("provider.name", a.provider.Name),
			attribute.String("provider.transport", string(a.provider.Transport)),
		))
	defer span.End()

	receipt, err := a.adapter.Send(ctx, msg)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(
			attribute.String("provider.messageId", receipt.ProviderMessageID),
		)
	}

	return receipt, err
}

func (a *Adapter) CheckHealth(ctx context.Context) error {
	ctx, span := a.tracer.Start(ctx, "Adapter.CheckHealth",
		trace.WithAttributes(
			attribute.String("provider.name", a.provider.Name),
		))
	defer span.End()

	err := a.adapter.CheckHealth(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (a *Adapter) Capabilities() domain.Capabilities {
	return a.adapter.Capabilities()
}

func (a *Adapter) CanSend(ctx context.Context) (bool, string, error) {
	return a.adapter.CanSend(ctx)
}
