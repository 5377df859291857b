package audit

import (
	"context"

	"gitee.com/flycash/mail-delivery-platform/internal/pkg/mqx"
	"github.com/ecodeclub/mq-api"
)

//go:generate mockgen -source=./producer.go -package=evtmocks -destination=../mocks/attempt_producer.mock.go -typed AttemptEventProducer
type AttemptEventProducer interface {
	Produce(ctx context.Context, evt AttemptEvent) error
}

func NewAttemptEventProducer(q mq.MQ) (AttemptEventProducer, error) {
	return mqx.NewGeneralProducer[AttemptEvent](q, AttemptEventTopic)
}
