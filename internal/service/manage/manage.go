package manage

import (
	"context"
	"fmt"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	"gitee.com/flycash/mail-delivery-platform/internal/errs"
	"gitee.com/flycash/mail-delivery-platform/internal/repository"
	"gitee.com/flycash/mail-delivery-platform/internal/service/health"
)

// Service 供应商与路由的管理服务，供外部管理后台调用。
// 管理界面本身不在本系统范围内。
type Service interface {
	// CreateProvider 创建供应商
	CreateProvider(ctx context.Context, provider domain.Provider) (domain.Provider, error)
	// UpdateProvider 更新供应商
	UpdateProvider(ctx context.Context, provider domain.Provider) error
	// GetProviderByID 根据ID获取供应商
	GetProviderByID(ctx context.Context, id int64) (domain.Provider, error)
	// ListActiveProviders 获取全部激活的供应商
	ListActiveProviders(ctx context.Context) ([]domain.Provider, error)
	// ResetProviderHealth 运维介入，清零连续失败计数。
	// 越过失败阈值的供应商只能通过本操作恢复参与链路构建。
	ResetProviderHealth(ctx context.Context, id int64) error

	// SaveRouting 创建或更新任务路由
	SaveRouting(ctx context.Context, routing domain.TaskRouting) (domain.TaskRouting, error)
	// GetRouting 获取任务路由
	GetRouting(ctx context.Context, task domain.TaskType) (domain.TaskRouting, error)
	// ListRoutings 获取全部任务路由
	ListRoutings(ctx context.Context) ([]domain.TaskRouting, error)
}

type service struct {
	providerRepo repository.ProviderRepository
	routingRepo  repository.TaskRoutingRepository
	tracker      health.Tracker
}

func NewService(
	providerRepo repository.ProviderRepository,
	routingRepo repository.TaskRoutingRepository,
	tracker health.Tracker,
) Service {
	return &service{
		providerRepo: providerRepo,
		routingRepo:  routingRepo,
		tracker:      tracker,
	}
}

func (s *service) CreateProvider(ctx context.Context, provider domain.Provider) (domain.Provider, error) {
	if err := s.validateProvider(provider); err != nil {
		return domain.Provider{}, err
	}
	return s.providerRepo.Create(ctx, provider)
}

func (s *service) UpdateProvider(ctx context.Context, provider domain.Provider) error {
	if provider.ID <= 0 {
		return fmt.Errorf("%w: 供应商ID必须大于0", errs.ErrInvalidParameter)
	}
	if err := s.validateProvider(provider); err != nil {
		return err
	}
	return s.providerRepo.Update(ctx, provider)
}

func (s *service) GetProviderByID(ctx context.Context, id int64) (domain.Provider, error) {
	if id <= 0 {
		return domain.Provider{}, fmt.Errorf("%w: 供应商ID必须大于0", errs.ErrInvalidParameter)
	}
	return s.providerRepo.FindByID(ctx, id)
}

func (s *service) ListActiveProviders(ctx context.Context) ([]domain.Provider, error) {
	return s.providerRepo.FindActive(ctx)
}

func (s *service) ResetProviderHealth(ctx context.Context, id int64) error {
	if _, err := s.providerRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.tracker.ResetFailures(ctx, id)
}

func (s *service) SaveRouting(ctx context.Context, routing domain.TaskRouting) (domain.TaskRouting, error) {
	if err := routing.Validate(); err != nil {
		return domain.TaskRouting{}, err
	}
	if routing.ID > 0 {
		if err := s.routingRepo.Update(ctx, routing); err != nil {
			return domain.TaskRouting{}, err
		}
		return routing, nil
	}
	return s.routingRepo.Create(ctx, routing)
}

func (s *service) GetRouting(ctx context.Context, task domain.TaskType) (domain.TaskRouting, error) {
	return s.routingRepo.FindByTaskType(ctx, task)
}

func (s *service) ListRoutings(ctx context.Context) ([]domain.TaskRouting, error) {
	return s.routingRepo.FindAll(ctx)
}

// validateProvider 验证供应商参数
func (s *service) validateProvider(provider domain.Provider) error {
	if provider.Name == "" {
		return fmt.Errorf("%w: 供应商名称不能为空", errs.ErrInvalidParameter)
	}

	if s.isUnknownTransport(provider.Transport) {
		return fmt.Errorf("%w: 不支持的传输类型", errs.ErrInvalidParameter)
	}

	if provider.SenderAddress == "" {
		return fmt.Errorf("%w: 发件地址不能为空", errs.ErrInvalidParameter)
	}

	switch provider.Transport {
	case domain.TransportSMTP:
		if provider.Host == "" || provider.Port <= 0 {
			return fmt.Errorf("%w: SMTP主机与端口不能为空", errs.ErrInvalidParameter)
		}
	default:
		if provider.Endpoint == "" {
			return fmt.Errorf("%w: API入口地址不能为空", errs.ErrInvalidParameter)
		}
	}

	if provider.APISecret == "" {
		return fmt.Errorf("%w: API Secret不能为空", errs.ErrInvalidParameter)
	}

	if provider.MaxPerHour <= 0 {
		return fmt.Errorf("%w: 每小时发送上限不能小于等于0", errs.ErrInvalidParameter)
	}
	if provider.MaxPerDay <= 0 {
		return fmt.Errorf("%w: 每日发送上限不能小于等于0", errs.ErrInvalidParameter)
	}

	return nil
}

func (s *service) isUnknownTransport(transport domain.Transport) bool {
	return transport != domain.TransportSMTP &&
		transport != domain.TransportAPI &&
		transport != domain.TransportWebhook
}
