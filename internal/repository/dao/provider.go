package dao

import (
	"context"
	"time"

	"gitee.com/flycash/mail-delivery-platform/internal/pkg/secret"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

// Provider 供应商模型
type Provider struct {
	ID        int64  `gorm:"primaryKey;autoIncrement;comment:'供应商ID'"`
	Name      string `gorm:"type:VARCHAR(64);NOT NULL;uniqueIndex:idx_name_transport;comment:'供应商名称'"`
	Code      string `gorm:"type:VARCHAR(64);NOT NULL;comment:'供应商编码, sendgrid, mailgun, postmark'"`
	Transport string `gorm:"type:ENUM('SMTP','API','WEBHOOK');NOT NULL;uniqueIndex:idx_name_transport;comment:'传输类型'"`

	SenderName    string `gorm:"type:VARCHAR(128);comment:'发件人名称'"`
	SenderAddress string `gorm:"type:VARCHAR(255);NOT NULL;comment:'发件地址'"`

	Endpoint string `gorm:"type:VARCHAR(255);comment:'API/Webhook入口地址'"`
	Host     string `gorm:"type:VARCHAR(255);comment:'SMTP主机'"`
	Port     int    `gorm:"type:INT;comment:'SMTP端口'"`

	APIKey    string `gorm:"type:VARCHAR(255);NOT NULL;comment:'API密钥/用户名，明文'"`
	APISecret string `gorm:"type:VARCHAR(512);NOT NULL;comment:'API密钥/口令，加密'"`

	Role     string `gorm:"type:ENUM('PRIMARY','SECONDARY','FALLBACK');NOT NULL;DEFAULT:'FALLBACK';comment:'路由角色'"`
	Priority int    `gorm:"type:INT;NOT NULL;DEFAULT:0;comment:'同角色内排序，小者优先'"`

	MaxPerHour int `gorm:"type:INT;NOT NULL;comment:'每小时发送上限'"`
	MaxPerDay  int `gorm:"type:INT;NOT NULL;comment:'每日发送上限'"`

	TotalSent    int64 `gorm:"type:BIGINT;NOT NULL;DEFAULT:0;comment:'累计成功数'"`
	TotalFailed  int64 `gorm:"type:BIGINT;NOT NULL;DEFAULT:0;comment:'累计失败数'"`
	LastUsedAt   int64 `gorm:"comment:'最近一次使用时间'"`
	LastFailedAt int64 `gorm:"comment:'最近一次失败时间'"`

	Status string `gorm:"type:ENUM('ACTIVE','INACTIVE');NOT NULL;DEFAULT:'ACTIVE';comment:'状态，启用-ACTIVE，禁用-INACTIVE'"`
	Ctime  int64
	Utime  int64
}

// TableName 重命名表
func (Provider) TableName() string {
	return "providers"
}

type ProviderDAO interface {
	// Create 创建供应商
	Create(ctx context.Context, provider Provider) (Provider, error)
	// Update 更新供应商
	Update(ctx context.Context, provider Provider) error
	// FindByID 根据ID查找供应商
	FindByID(ctx context.Context, id int64) (Provider, error)
	// FindByIDs 批量查找供应商，结果以ID为键
	FindByIDs(ctx context.Context, ids []int64) (map[int64]Provider, error)
	// FindActive 查找全部激活状态的供应商
	FindActive(ctx context.Context) ([]Provider, error)
	// UpdateHealth 发送尝试后更新累计计数，原子列表达式，避免读-改-写竞争
	UpdateHealth(ctx context.Context, id int64, success bool) error
}

type providerDAO struct {
	db     *egorm.Component
	cipher *secret.Cipher
}

func NewProviderDAO(db *egorm.Component, cipher *secret.Cipher) ProviderDAO {
	return &providerDAO{
		db:     db,
		cipher: cipher,
	}
}

// Create 创建供应商。落库前加密口令，返回值中的口令保持密文，
// 明文只由适配器在发送时临时解出。
func (p *providerDAO) Create(ctx context.Context, provider Provider) (Provider, error) {
	now := time.Now().Unix()
	provider.Ctime = now
	provider.Utime = now

	encryptedSecret, err := p.cipher.Encrypt(provider.APISecret)
	if err != nil {
		return Provider{}, err
	}
	provider.APISecret = encryptedSecret

	if err := p.db.WithContext(ctx).Create(&provider).Error; err != nil {
		return Provider{}, err
	}

	return provider, nil
}

// Update 更新供应商
func (p *providerDAO) Update(ctx context.Context, provider Provider) error {
	provider.Utime = time.Now().Unix()

	// 构建更新字段映射，累计计数不在此处更新
	updates := map[string]interface{}{
		"name":           provider.Name,
		"code":           provider.Code,
		"transport":      provider.Transport,
		"sender_name":    provider.SenderName,
		"sender_address": provider.SenderAddress,
		"endpoint":       provider.Endpoint,
		"host":           provider.Host,
		"port":           provider.Port,
		"api_key":        provider.APIKey,
		"role":           provider.Role,
		"priority":       provider.Priority,
		"max_per_hour":   provider.MaxPerHour,
		"max_per_day":    provider.MaxPerDay,
		"status":         provider.Status,
		"utime":          provider.Utime,
	}

	if provider.APISecret != "" {
		encryptedSecret, err := p.cipher.Encrypt(provider.APISecret)
		if err != nil {
			return err
		}
		updates["api_secret"] = encryptedSecret
	}

	return p.db.WithContext(ctx).Model(&Provider{}).Where("id = ?", provider.ID).Updates(updates).Error
}

// FindByID 根据ID查找供应商，口令保持密文
func (p *providerDAO) FindByID(ctx context.Context, id int64) (Provider, error) {
	var provider Provider
	err := p.db.WithContext(ctx).Where("id = ?", id).First(&provider).Error
	if err != nil {
		return Provider{}, err
	}
	return provider, nil
}

// FindByIDs 批量查找供应商
func (p *providerDAO) FindByIDs(ctx context.Context, ids []int64) (map[int64]Provider, error) {
	var providers []Provider
	err := p.db.WithContext(ctx).Where("id IN ?", ids).Find(&providers).Error
	if err != nil {
		return nil, err
	}

	result := make(map[int64]Provider, len(providers))
	for i := range providers {
		result[providers[i].ID] = providers[i]
	}
	return result, nil
}

// FindActive 查找全部激活状态的供应商
func (p *providerDAO) FindActive(ctx context.Context) ([]Provider, error) {
	var providers []Provider
	err := p.db.WithContext(ctx).
		Where("status = ?", "ACTIVE").
		Order("priority ASC").
		Find(&providers).Error
	if err != nil {
		return nil, err
	}
	return providers, nil
}

// UpdateHealth 更新累计计数
func (p *providerDAO) UpdateHealth(ctx context.Context, id int64, success bool) error {
	now := time.Now()
	updates := map[string]interface{}{
		"last_used_at": now.Unix(),
		"utime":        now.Unix(),
	}
	if success {
		updates["total_sent"] = gorm.Expr("total_sent + 1")
	} else {
		updates["total_failed"] = gorm.Expr("total_failed + 1")
		updates["last_failed_at"] = now.Unix()
	}
	return p.db.WithContext(ctx).Model(&Provider{}).Where("id = ?", id).Updates(updates).Error
}
