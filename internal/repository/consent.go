package repository

import (
	"context"
	"errors"
	"fmt"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	"gitee.com/flycash/mail-delivery-platform/internal/errs"
	"gitee.com/flycash/mail-delivery-platform/internal/repository/dao"
	"gorm.io/gorm"
)

// ConsentRepository 授权记录仓储接口
//
//go:generate mockgen -source=./consent.go -destination=./mocks/consent.mock.go -package=repomocks -typed ConsentRepository
type ConsentRepository interface {
	// Save 写入或更新授权记录
	Save(ctx context.Context, record domain.ConsentRecord) error
	// Find 查找用户对某任务类别的授权记录
	Find(ctx context.Context, userID int64, task domain.TaskType) (domain.ConsentRecord, error)
}

type consentRepository struct {
	dao dao.ConsentDAO
}

func NewConsentRepository(d dao.ConsentDAO) ConsentRepository {
	return &consentRepository{dao: d}
}

func (c *consentRepository) Save(ctx context.Context, record domain.ConsentRecord) error {
	return c.dao.Upsert(ctx, dao.ConsentRecord{
		ID:       record.ID,
		UserID:   record.UserID,
		TaskType: string(record.Task),
		Status:   string(record.Status),
	})
}

func (c *consentRepository) Find(ctx context.Context, userID int64, task domain.TaskType) (domain.ConsentRecord, error) {
	record, err := c.dao.Find(ctx, userID, string(task))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ConsentRecord{}, fmt.Errorf("%w: userID = %d, task = %s", errs.ErrConsentNotFound, userID, task)
		}
		return domain.ConsentRecord{}, err
	}
	return domain.ConsentRecord{
		ID:     record.ID,
		UserID: record.UserID,
		Task:   domain.TaskType(record.TaskType),
		Status: domain.ConsentStatus(record.Status),
	}, nil
}
