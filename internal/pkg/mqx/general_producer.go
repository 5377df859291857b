package mqx

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecodeclub/mq-api"
)

// Producer 泛型事件生产者
type Producer[T any] interface {
	Produce(ctx context.Context, evt T) error
}

// GeneralProducer 将任意事件序列化为JSON后投递到指定topic
type GeneralProducer[T any] struct {
	producer mq.Producer
	topic    string
}

func NewGeneralProducer[T any](q mq.MQ, topic string) (*GeneralProducer[T], error) {
	p, err := q.Producer(topic)
	if err != nil {
		return nil, fmt.Errorf("创建生产者失败 topic=%s: %w", topic, err)
	}
	return &GeneralProducer[T]{producer: p, topic: topic}, nil
}

func (p *GeneralProducer[T]) Produce(ctx context.Context, evt T) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("序列化topic的消息失败 %w", err)
	}
	_, err = p.producer.Produce(ctx, &mq.Message{
		Topic: p.topic,
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("投递消息失败 topic=%s: %w", p.topic, err)
	}
	return nil
}
