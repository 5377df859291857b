//go:build unit

package adapter

import (
	"context"
	"errors"
	"testing"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubHealth 固定返回一份快照的健康视图
type stubHealth struct {
	snapshot domain.HealthSnapshot
	err      error
}

func (s *stubHealth) Snapshot(_ context.Context, _ domain.Provider) (domain.HealthSnapshot, error) {
	return s.snapshot, s.err
}

// stubSecrets 测试用解密器，直接在密文前加前缀
type stubSecrets struct {
	err error
}

func (s *stubSecrets) Decrypt(encrypted string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "plain-" + encrypted, nil
}

func smtpProvider() domain.Provider {
	return domain.Provider{
		ID:            1,
		Name:          "corp-smtp",
		Transport:     domain.TransportSMTP,
		SenderName:    "通知中心",
		SenderAddress: "noreply@example.com",
		Host:          "smtp.example.com",
		Port:          587,
		APIKey:        "mailer",
		APISecret:     "ciphertext",
		MaxPerHour:    100,
		MaxPerDay:     1000,
		Status:        domain.ProviderStatusActive,
	}
}

func TestBase_CanSend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		provider   func() domain.Provider
		snapshot   domain.HealthSnapshot
		wantOK     bool
		wantReason string
	}{
		{
			name:     "正常放行",
			provider: smtpProvider,
			snapshot: domain.HealthSnapshot{HourlyCount: 10, DailyCount: 100},
			wantOK:   true,
		},
		{
			name: "未激活",
			provider: func() domain.Provider {
				p := smtpProvider()
				p.Status = domain.ProviderStatusInactive
				return p
			},
			wantOK:     false,
			wantReason: ReasonInactive,
		},
		{
			name:       "连续失败达到阈值",
			provider:   smtpProvider,
			snapshot:   domain.HealthSnapshot{ConsecutiveFailures: domain.MaxConsecutiveFailures},
			wantOK:     false,
			wantReason: ReasonUnhealthy,
		},
		{
			name:       "小时配额耗尽",
			provider:   smtpProvider,
			snapshot:   domain.HealthSnapshot{HourlyCount: 100},
			wantOK:     false,
			wantReason: ReasonRateLimited,
		},
		{
			name:       "每日配额耗尽",
			provider:   smtpProvider,
			snapshot:   domain.HealthSnapshot{HourlyCount: 10, DailyCount: 1000},
			wantOK:     false,
			wantReason: ReasonRateLimited,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := &base{provider: tt.provider(), health: &stubHealth{snapshot: tt.snapshot}}
			ok, reason, err := b.CanSend(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestBase_CanSendSnapshotError(t *testing.T) {
	t.Parallel()

	b := &base{
		provider: smtpProvider(),
		health:   &stubHealth{err: errors.New("redis: connection refused")},
	}
	ok, _, err := b.CanSend(context.Background())
	require.Error(t, err)
	assert.False(t, ok)
}
