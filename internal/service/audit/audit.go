package audit

import (
	"context"
	"fmt"
	"time"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	"gitee.com/flycash/mail-delivery-platform/internal/errs"
	evtaudit "gitee.com/flycash/mail-delivery-platform/internal/event/audit"
	"gitee.com/flycash/mail-delivery-platform/internal/pkg/idgen"
	"gitee.com/flycash/mail-delivery-platform/internal/repository"
	"github.com/gotomicro/ego/core/elog"
)

// maxErrorLen 审计记录中错误文本的截断长度
const maxErrorLen = 512

const produceTimeout = 3 * time.Second

// Service 审计服务。每次发送尝试同步落一条记录，
// 落库成功后引擎才继续走后续重试/切换，失败的尝试不会因为
// 后来某个供应商成功而丢失。
//
//go:generate mockgen -source=./audit.go -destination=./mocks/audit.mock.go -package=auditmocks Service
type Service interface {
	// RecordAttempt 追加一条尝试记录
	RecordAttempt(ctx context.Context, audit domain.DeliveryAudit) error
	// History 查询某条消息的全部尝试记录
	History(ctx context.Context, messageID int64) ([]domain.DeliveryAudit, error)
}

type service struct {
	repo     repository.DeliveryAuditRepository
	producer evtaudit.AttemptEventProducer
	idGen    *idgen.Generator
	logger   *elog.Component
}

func NewService(repo repository.DeliveryAuditRepository, producer evtaudit.AttemptEventProducer, idGen *idgen.Generator) Service {
	return &service{
		repo:     repo,
		producer: producer,
		idGen:    idGen,
		logger:   elog.DefaultLogger,
	}
}

func (s *service) RecordAttempt(ctx context.Context, audit domain.DeliveryAudit) error {
	if len(audit.ErrorMessage) > maxErrorLen {
		audit.ErrorMessage = audit.ErrorMessage[:maxErrorLen]
	}
	if audit.Timestamp.IsZero() {
		audit.Timestamp = time.Now()
	}

	id, err := s.idGen.NextID()
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrCreateAuditFailed, err)
	}
	audit.ID = id

	created, err := s.repo.Create(ctx, audit)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrCreateAuditFailed, err)
	}

	// 事件发布是尽力而为，失败只记日志，不影响发送主流程
	go s.produce(created)

	return nil
}

func (s *service) History(ctx context.Context, messageID int64) ([]domain.DeliveryAudit, error) {
	return s.repo.FindByMessageID(ctx, messageID)
}

func (s *service) produce(audit domain.DeliveryAudit) {
	ctx, cancel := context.WithTimeout(context.Background(), produceTimeout)
	defer cancel()

	err := s.producer.Produce(ctx, evtaudit.AttemptEvent{
		MessageID:      audit.MessageID,
		Task:           string(audit.Task),
		ProviderID:     audit.ProviderID,
		ProviderName:   audit.ProviderName,
		Success:        audit.Success,
		ErrorCode:      audit.ErrorCode,
		Attempt:        audit.Attempt,
		RecipientCount: audit.RecipientCount,
		Timestamp:      audit.Timestamp.Unix(),
	})
	if err != nil {
		s.logger.Warn("发布发送尝试事件失败",
			elog.Any("err", err),
			elog.Int64("messageID", audit.MessageID),
		)
	}
}
