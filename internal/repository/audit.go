package repository

import (
	"context"
	"time"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	"gitee.com/flycash/mail-delivery-platform/internal/repository/dao"
)

// DeliveryAuditRepository 审计记录仓储接口，只追加
//
//go:generate mockgen -source=./audit.go -destination=./mocks/audit.mock.go -package=repomocks -typed DeliveryAuditRepository
type DeliveryAuditRepository interface {
	// Create 追加一条审计记录
	Create(ctx context.Context, audit domain.DeliveryAudit) (domain.DeliveryAudit, error)
	// FindByMessageID 查询某条消息的全部尝试记录
	FindByMessageID(ctx context.Context, messageID int64) ([]domain.DeliveryAudit, error)
}

type deliveryAuditRepository struct {
	dao dao.DeliveryAuditDAO
}

func NewDeliveryAuditRepository(d dao.DeliveryAuditDAO) DeliveryAuditRepository {
	return &deliveryAuditRepository{dao: d}
}

func (r *deliveryAuditRepository) Create(ctx context.Context, audit domain.DeliveryAudit) (domain.DeliveryAudit, error) {
	created, err := r.dao.Create(ctx, r.toEntity(audit))
	if err != nil {
		return domain.DeliveryAudit{}, err
	}
	return r.toDomain(created), nil
}

func (r *deliveryAuditRepository) FindByMessageID(ctx context.Context, messageID int64) ([]domain.DeliveryAudit, error) {
	entities, err := r.dao.FindByMessageID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	result := make([]domain.DeliveryAudit, 0, len(entities))
	for i := range entities {
		result = append(result, r.toDomain(entities[i]))
	}
	return result, nil
}

func (r *deliveryAuditRepository) toEntity(audit domain.DeliveryAudit) dao.DeliveryAudit {
	return dao.DeliveryAudit{
		ID:             audit.ID,
		MessageID:      audit.MessageID,
		TaskType:       string(audit.Task),
		ProviderID:     audit.ProviderID,
		ProviderName:   audit.ProviderName,
		Success:        audit.Success,
		ErrorCode:      audit.ErrorCode,
		ErrorMessage:   audit.ErrorMessage,
		Attempt:        audit.Attempt,
		RecipientCount: audit.RecipientCount,
		Ctime:          audit.Timestamp.Unix(),
	}
}

func (r *deliveryAuditRepository) toDomain(d dao.DeliveryAudit) domain.DeliveryAudit {
	return domain.DeliveryAudit{
		ID:             d.ID,
		MessageID:      d.MessageID,
		Task:           domain.TaskType(d.TaskType),
		ProviderID:     d.ProviderID,
		ProviderName:   d.ProviderName,
		Success:        d.Success,
		ErrorCode:      d.ErrorCode,
		ErrorMessage:   d.ErrorMessage,
		Attempt:        d.Attempt,
		RecipientCount: d.RecipientCount,
		Timestamp:      time.Unix(d.Ctime, 0),
	}
}
