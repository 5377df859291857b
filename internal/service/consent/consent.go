package consent

import (
	"context"
	"errors"
	"fmt"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	"gitee.com/flycash/mail-delivery-platform/internal/errs"
	"gitee.com/flycash/mail-delivery-platform/internal/repository"
)

// Service 授权门禁。认证与交易类无条件放行，营销类要求显式订阅，
// 其余类别默认放行、可退订。策略本身是 (任务类别, 授权记录) 的纯函数。
//
//go:generate mockgen -source=./consent.go -destination=./mocks/consent.mock.go -package=consentmocks Service
type Service interface {
	// Allowed 判断收件人是否可接收该任务类别的消息
	Allowed(ctx context.Context, userID int64, task domain.TaskType) (bool, error)
	// OptIn 记录订阅
	OptIn(ctx context.Context, userID int64, task domain.TaskType) error
	// OptOut 记录退订
	OptOut(ctx context.Context, userID int64, task domain.TaskType) error
}

type service struct {
	repo repository.ConsentRepository
}

func NewService(repo repository.ConsentRepository) Service {
	return &service{repo: repo}
}

func (s *service) Allowed(ctx context.Context, userID int64, task domain.TaskType) (bool, error) {
	switch task.ConsentPolicy() {
	case domain.ConsentPolicyAlways:
		// 无条件放行，不查库
		return true, nil
	case domain.ConsentPolicyOptIn:
		record, err := s.repo.Find(ctx, userID, task)
		if err != nil {
			if errors.Is(err, errs.ErrConsentNotFound) {
				return false, nil
			}
			return false, err
		}
		return record.Status == domain.ConsentStatusOptIn, nil
	default:
		record, err := s.repo.Find(ctx, userID, task)
		if err != nil {
			if errors.Is(err, errs.ErrConsentNotFound) {
				return true, nil
			}
			return false, err
		}
		return record.Status != domain.ConsentStatusOptOut, nil
	}
}

func (s *service) OptIn(ctx context.Context, userID int64, task domain.TaskType) error {
	return s.save(ctx, userID, task, domain.ConsentStatusOptIn)
}

func (s *service) OptOut(ctx context.Context, userID int64, task domain.TaskType) error {
	return s.save(ctx, userID, task, domain.ConsentStatusOptOut)
}

func (s *service) save(ctx context.Context, userID int64, task domain.TaskType, status domain.ConsentStatus) error {
	if userID <= 0 {
		return fmt.Errorf("%w: userID = %d", errs.ErrInvalidParameter, userID)
	}
	if !task.IsValid() {
		return fmt.Errorf("%w: task = %q", errs.ErrInvalidParameter, task)
	}
	return s.repo.Save(ctx, domain.ConsentRecord{
		UserID: userID,
		Task:   task,
		Status: status,
	})
}
