package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	"gitee.com/flycash/mail-delivery-platform/internal/errs"
	"gitee.com/flycash/mail-delivery-platform/internal/repository/dao"
	"gorm.io/gorm"
)

// ProviderRepository 供应商仓储接口
//
//go:generate mockgen -source=./provider.go -destination=./mocks/provider.mock.go -package=repomocks -typed ProviderRepository
type ProviderRepository interface {
	// Create 创建供应商
	Create(ctx context.Context, provider domain.Provider) (domain.Provider, error)
	// Update 更新供应商
	Update(ctx context.Context, provider domain.Provider) error
	// FindByID 根据ID查找供应商
	FindByID(ctx context.Context, id int64) (domain.Provider, error)
	// FindByIDs 批量查找供应商，结果以ID为键
	FindByIDs(ctx context.Context, ids []int64) (map[int64]domain.Provider, error)
	// FindActive 查找全部激活的供应商
	FindActive(ctx context.Context) ([]domain.Provider, error)
	// UpdateHealth 发送尝试后更新累计计数
	UpdateHealth(ctx context.Context, id int64, success bool) error
}

type providerRepository struct {
	dao dao.ProviderDAO
}

func NewProviderRepository(d dao.ProviderDAO) ProviderRepository {
	return &providerRepository{dao: d}
}

func (p *providerRepository) Create(ctx context.Context, provider domain.Provider) (domain.Provider, error) {
	created, err := p.dao.Create(ctx, p.toEntity(provider))
	if err != nil {
		return domain.Provider{}, err
	}
	return p.toDomain(created), nil
}

func (p *providerRepository) Update(ctx context.Context, provider domain.Provider) error {
	return p.dao.Update(ctx, p.toEntity(provider))
}

func (p *providerRepository) FindByID(ctx context.Context, id int64) (domain.Provider, error) {
	provider, err := p.dao.FindByID(ctx, id)
	if err != nil {
		// 处理未找到的情况，转换为领域错误
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Provider{}, fmt.Errorf("%w: id = %d", errs.ErrProviderNotFound, id)
		}
		return domain.Provider{}, err
	}
	return p.toDomain(provider), nil
}

func (p *providerRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]domain.Provider, error) {
	providers, err := p.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make(map[int64]domain.Provider, len(providers))
	for id := range providers {
		result[id] = p.toDomain(providers[id])
	}
	return result, nil
}

func (p *providerRepository) FindActive(ctx context.Context) ([]domain.Provider, error) {
	providers, err := p.dao.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Provider, 0, len(providers))
	for i := range providers {
		result = append(result, p.toDomain(providers[i]))
	}
	return result, nil
}

func (p *providerRepository) UpdateHealth(ctx context.Context, id int64, success bool) error {
	return p.dao.UpdateHealth(ctx, id, success)
}

func (p *providerRepository) toDomain(d dao.Provider) domain.Provider {
	return domain.Provider{
		ID:            d.ID,
		Name:          d.Name,
		Code:          d.Code,
		Transport:     domain.Transport(d.Transport),
		SenderName:    d.SenderName,
		SenderAddress: d.SenderAddress,
		Endpoint:      d.Endpoint,
		Host:          d.Host,
		Port:          d.Port,
		APIKey:        d.APIKey,
		// 口令保持密文，由适配器在发送时临时解密
		APISecret:    d.APISecret,
		Role:         domain.ProviderRole(d.Role),
		Priority:     d.Priority,
		MaxPerHour:   d.MaxPerHour,
		MaxPerDay:    d.MaxPerDay,
		TotalSent:    d.TotalSent,
		TotalFailed:  d.TotalFailed,
		LastUsedAt:   time.Unix(d.LastUsedAt, 0),
		LastFailedAt: time.Unix(d.LastFailedAt, 0),
		Status:       domain.ProviderStatus(d.Status),
	}
}

func (p *providerRepository) toEntity(provider domain.Provider) dao.Provider {
	return dao.Provider{
		ID:            provider.ID,
		Name:          provider.Name,
		Code:          provider.Code,
		Transport:     string(provider.Transport),
		SenderName:    provider.SenderName,
		SenderAddress: provider.SenderAddress,
		Endpoint:      provider.Endpoint,
		Host:          provider.Host,
		Port:          provider.Port,
		APIKey:        provider.APIKey,
		APISecret:     provider.APISecret,
		Role:          string(provider.Role),
		Priority:      provider.Priority,
		MaxPerHour:    provider.MaxPerHour,
		MaxPerDay:     provider.MaxPerDay,
		Status:        string(provider.Status),
	}
}
