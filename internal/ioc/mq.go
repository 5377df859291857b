package ioc

import (
	"context"
	"fmt"
	"time"

	evtaudit "gitee.com/flycash/mail-delivery-platform/internal/event/audit"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/memory"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
)

const (
	topicCreateTimeout = 10 * time.Second
	attemptPartitions  = 2
)

// InitMQ 事件队列。先在Kafka上确保topic存在，
// 进程内投递仍走mq-api抽象，方便测试时替换为内存实现。
func InitMQ() mq.MQ {
	type Config struct {
		BootstrapServers string `yaml:"bootstrapServers"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("kafka", &cfg); err != nil {
		panic(err)
	}
	if cfg.BootstrapServers != "" {
		initTopics(cfg.BootstrapServers, kafka.TopicSpecification{
			Topic:         evtaudit.AttemptEventTopic,
			NumPartitions: attemptPartitions,
		})
	}

	q := memory.NewMQ()
	ctx, cancel := context.WithTimeout(context.Background(), topicCreateTimeout)
	defer cancel()
	if err := q.CreateTopic(ctx, evtaudit.AttemptEventTopic, 1); err != nil {
		panic(fmt.Sprintf("创建topic失败: %v", err))
	}
	return q
}

func initTopics(bootstrapServers string, topics ...kafka.TopicSpecification) {
	adminClient, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": bootstrapServers,
	})
	if err != nil {
		panic(fmt.Sprintf("创建kafka连接失败: %v", err))
	}
	defer adminClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), topicCreateTimeout)
	defer cancel()

	results, err := adminClient.CreateTopics(ctx, topics)
	if err != nil {
		panic(fmt.Sprintf("创建topic失败: %v", err))
	}

	for _, result := range results {
		if result.Error.Code() != kafka.ErrNoError && result.Error.Code() != kafka.ErrTopicAlreadyExists {
			elog.Error("创建topic失败",
				elog.String("topic", result.Topic),
				elog.Any("err", result.Error),
			)
		}
	}
}
