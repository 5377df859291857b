// Package metrics 为适配器实现添加指标收集的装饰器
package metrics

import (
	"context"
	"time"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	"gitee.com/flycash/mail-delivery-platform/internal/service/adapter"
	"github.com/prometheus/client_golang/prometheus"
)

// Builder 持有指标向量，整个进程注册一次，
// 装饰任意多个适配器实例共用同一组向量
type Builder struct {
	sendDurationSummary *prometheus.SummaryVec
	sendCounter         *prometheus.CounterVec
	sendStatusCounter   *prometheus.CounterVec
}

func NewBuilder() *Builder {
	sendDurationSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "provider_send_duration_seconds",
			Help:       "供应商发送消息耗时统计（秒）",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.95: 0.005, 0.99: 0.001},
			MaxAge:     time.Minute * 5,
		},
		[]string{"provider", "transport", "status"},
	)

	sendCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_send_total",
			Help: "供应商发送消息总数",
		},
		[]string{"provider", "transport"},
	)

	sendStatusCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_send_status_total",
			Help: "供应商发送消息状态统计",
		},
		[]string{"provider", "transport", "status"},
	)

	// 注册指标
	prometheus.MustRegister(sendDurationSummary, sendCounter, sendStatusCounter)

	return &Builder{
		sendDurationSummary: sendDurationSummary,
		sendCounter:         sendCounter,
		sendStatusCounter:   sendStatusCounter,
	}
}

// Decorate 返回工厂可用的装饰器
func (b *Builder) Decorate() adapter.Decorator {
	return func(provider domain.Provider, a adapter.Adapter) adapter.Adapter {
		return &Adapter{
			builder:   b,
			adapter:   a,
			name:      provider.Name,
			transport: string(provider.Transport),
		}
	}
}

// Adapter 带指标收集的适配器
type Adapter struct {
	builder   *Builder
	adapter   adapter.Adapter
	name      string
	transport string
}

// Send 发送消息并记录指标
func (a *Adapter) Send(ctx context.Context, msg domain.Message) (domain.SendReceipt, error) {
	startTime := time.Now()

	a.builder.sendCounter.WithLabelValues(a.name, a.transport).Inc()

	receipt, err := a.adapter.Send(ctx, msg)

	duration := time.Since(startTime).Seconds()
	status := "success"
	if err != nil {
		status = "failure"
	}

	a.builder.sendStatusCounter.WithLabelValues(a.name, a.transport, status).Inc()
	a.builder.sendDurationSummary.WithLabelValues(a.name, a.transport, status).Observe(duration)

	return receipt, err
}

func (a *Adapter) CheckHealth(ctx context.Context) error {
	return a.adapter.CheckHealth(ctx)
}

func (a *Adapter) Capabilities() domain.Capabilities {
	return a.adapter.Capabilities()
}

func (a *Adapter) CanSend(ctx context.Context) (bool, string, error) {
	return a.adapter.CanSend(ctx)
}
