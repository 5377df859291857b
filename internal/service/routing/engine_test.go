//go:build unit

package routing

import (
	"context"
	"errors"
	"testing"
	"time"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	"gitee.com/flycash/mail-delivery-platform/internal/errs"
	"gitee.com/flycash/mail-delivery-platform/internal/pkg/idgen"
	adaptermocks "gitee.com/flycash/mail-delivery-platform/internal/service/adapter/mocks"
	auditmocks "gitee.com/flycash/mail-delivery-platform/internal/service/audit/mocks"
	consentmocks "gitee.com/flycash/mail-delivery-platform/internal/service/consent/mocks"
	healthmocks "gitee.com/flycash/mail-delivery-platform/internal/service/health/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeRoutingRepo struct {
	routing domain.TaskRouting
	err     error
}

func (f *fakeRoutingRepo) Create(_ context.Context, routing domain.TaskRouting) (domain.TaskRouting, error) {
	return routing, nil
}

func (f *fakeRoutingRepo) Update(_ context.Context, _ domain.TaskRouting) error {
	return nil
}

func (f *fakeRoutingRepo) FindByTaskType(_ context.Context, _ domain.TaskType) (domain.TaskRouting, error) {
	return f.routing, f.err
}

func (f *fakeRoutingRepo) FindAll(_ context.Context) ([]domain.TaskRouting, error) {
	return []domain.TaskRouting{f.routing}, f.err
}

type fakeProviderRepo struct {
	providers map[int64]domain.Provider
}

func (f *fakeProviderRepo) Create(_ context.Context, provider domain.Provider) (domain.Provider, error) {
	return provider, nil
}

func (f *fakeProviderRepo) Update(_ context.Context, _ domain.Provider) error {
	return nil
}

func (f *fakeProviderRepo) FindByID(_ context.Context, id int64) (domain.Provider, error) {
	p, ok := f.providers[id]
	if !ok {
		return domain.Provider{}, errs.ErrProviderNotFound
	}
	return p, nil
}

func (f *fakeProviderRepo) FindByIDs(_ context.Context, ids []int64) (map[int64]domain.Provider, error) {
	found := make(map[int64]domain.Provider, len(ids))
	for _, id := range ids {
		if p, ok := f.providers[id]; ok {
			found[id] = p
		}
	}
	return found, nil
}

func (f *fakeProviderRepo) FindActive(_ context.Context) ([]domain.Provider, error) {
	res := make([]domain.Provider, 0, len(f.providers))
	for _, p := range f.providers {
		if p.IsActive() {
			res = append(res, p)
		}
	}
	return res, nil
}

func (f *fakeProviderRepo) UpdateHealth(_ context.Context, _ int64, _ bool) error {
	return nil
}

type engineFixture struct {
	consentSvc *consentmocks.MockService
	factory    *adaptermocks.MockFactory
	tracker    *healthmocks.MockTracker
	auditSvc   *auditmocks.MockService
	engine     Engine
}

func newEngineFixture(t *testing.T, providers []domain.Provider, routing domain.TaskRouting, routingErr error) *engineFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	pmap := make(map[int64]domain.Provider, len(providers))
	for _, p := range providers {
		pmap[p.ID] = p
	}

	f := &engineFixture{
		consentSvc: consentmocks.NewMockService(ctrl),
		factory:    adaptermocks.NewMockFactory(ctrl),
		tracker:    healthmocks.NewMockTracker(ctrl),
		auditSvc:   auditmocks.NewMockService(ctrl),
	}

	chain := NewChainBuilder(&fakeProviderRepo{providers: pmap}, f.tracker)
	f.engine = NewEngine(
		&fakeRoutingRepo{routing: routing, err: routingErr},
		f.consentSvc,
		chain,
		f.factory,
		f.tracker,
		f.auditSvc,
		idgen.NewGenerator(),
	)
	return f
}

func activeProvider(id int64, name string) domain.Provider {
	return domain.Provider{
		ID:            id,
		Name:          name,
		Transport:     domain.TransportAPI,
		SenderAddress: "noreply@example.com",
		Endpoint:      "https://api.example.com/v1/send",
		MaxPerHour:    100,
		MaxPerDay:     1000,
		Status:        domain.ProviderStatusActive,
	}
}

func testRouting(task domain.TaskType, primary int64, fallbacks ...int64) domain.TaskRouting {
	return domain.TaskRouting{
		ID:                  1,
		Task:                task,
		PrimaryProviderID:   primary,
		FallbackProviderIDs: fallbacks,
		RetryAttempts:       2,
		RetryDelay:          5 * time.Millisecond,
		MaxSendAttempts:     5,
		Enabled:             true,
	}
}

func testMessage(task domain.TaskType) domain.Message {
	return domain.Message{
		UserID:  1001,
		Task:    task,
		To:      []string{"alice@example.com"},
		Subject: "订单已创建",
		Body:    "您的订单已创建成功",
	}
}

func TestEngine_PrimarySucceedsFirstTry(t *testing.T) {
	t.Parallel()

	p1 := activeProvider(1, "sendgrid")
	f := newEngineFixture(t, []domain.Provider{p1}, testRouting(domain.TaskTypeAccount, 1), nil)

	f.consentSvc.EXPECT().Allowed(gomock.Any(), int64(1001), domain.TaskTypeAccount).Return(true, nil)
	f.tracker.EXPECT().ConsecutiveFailures(gomock.Any(), int64(1)).Return(int64(0), nil)

	a1 := adaptermocks.NewMockAdapter(gomock.NewController(t))
	a1.EXPECT().CanSend(gomock.Any()).Return(true, "", nil)
	a1.EXPECT().Send(gomock.Any(), gomock.Any()).Return(domain.SendReceipt{ProviderMessageID: "sg-1"}, nil)
	f.factory.EXPECT().Adapter(gomock.Any()).Return(a1)

	f.tracker.EXPECT().MarkSuccess(gomock.Any(), int64(1)).Return(nil)
	f.auditSvc.EXPECT().RecordAttempt(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.engine.SendWithRouting(context.Background(), testMessage(domain.TaskTypeAccount))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int64(1), res.ProviderID)
	assert.Equal(t, int32(1), res.TotalAttempts)
	assert.False(t, res.FailoverOccurred)
	assert.NotZero(t, res.MessageID)
}

func TestEngine_FailoverToSecondProvider(t *testing.T) {
	t.Parallel()

	p1 := activeProvider(1, "sendgrid")
	p2 := activeProvider(2, "mailgun")
	f := newEngineFixture(t, []domain.Provider{p1, p2}, testRouting(domain.TaskTypeAccount, 1, 2), nil)

	f.consentSvc.EXPECT().Allowed(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.tracker.EXPECT().ConsecutiveFailures(gomock.Any(), gomock.Any()).Return(int64(0), nil).Times(2)

	ctrl := gomock.NewController(t)
	a1 := adaptermocks.NewMockAdapter(ctrl)
	a1.EXPECT().CanSend(gomock.Any()).Return(true, "", nil).Times(2)
	a1.EXPECT().Send(gomock.Any(), gomock.Any()).
		Return(domain.SendReceipt{}, errs.NewSendError("SMTP_550", "mailbox unavailable")).Times(2)
	a2 := adaptermocks.NewMockAdapter(ctrl)
	a2.EXPECT().CanSend(gomock.Any()).Return(true, "", nil)
	a2.EXPECT().Send(gomock.Any(), gomock.Any()).Return(domain.SendReceipt{ProviderMessageID: "mg-9"}, nil)

	gomock.InOrder(
		f.factory.EXPECT().Adapter(p1).Return(a1),
		f.factory.EXPECT().Adapter(p2).Return(a2),
	)

	f.tracker.EXPECT().MarkFailure(gomock.Any(), int64(1)).Return(nil).Times(2)
	f.tracker.EXPECT().MarkSuccess(gomock.Any(), int64(2)).Return(nil)
	f.auditSvc.EXPECT().RecordAttempt(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	res, err := f.engine.SendWithRouting(context.Background(), testMessage(domain.TaskTypeAccount))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int64(2), res.ProviderID)
	assert.Equal(t, int32(3), res.TotalAttempts)
	assert.True(t, res.FailoverOccurred)
	assert.Equal(t, int64(1), res.FailoverFromProviderID)
}

func TestEngine_MaxSendAttemptsCeiling(t *testing.T) {
	t.Parallel()

	p1 := activeProvider(1, "sendgrid")
	p2 := activeProvider(2, "mailgun")
	routing := testRouting(domain.TaskTypeAccount, 1, 2)
	routing.MaxSendAttempts = 3
	f := newEngineFixture(t, []domain.Provider{p1, p2}, routing, nil)

	f.consentSvc.EXPECT().Allowed(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.tracker.EXPECT().ConsecutiveFailures(gomock.Any(), gomock.Any()).Return(int64(0), nil).Times(2)

	ctrl := gomock.NewController(t)
	sendErr := errs.NewSendError("HTTP_503", "service unavailable")
	a1 := adaptermocks.NewMockAdapter(ctrl)
	a1.EXPECT().CanSend(gomock.Any()).Return(true, "", nil).Times(2)
	a1.EXPECT().Send(gomock.Any(), gomock.Any()).Return(domain.SendReceipt{}, sendErr).Times(2)
	// 第二个供应商只分到最后一次尝试额度
	a2 := adaptermocks.NewMockAdapter(ctrl)
	a2.EXPECT().CanSend(gomock.Any()).Return(true, "", nil)
	a2.EXPECT().Send(gomock.Any(), gomock.Any()).Return(domain.SendReceipt{}, sendErr)

	gomock.InOrder(
		f.factory.EXPECT().Adapter(p1).Return(a1),
		f.factory.EXPECT().Adapter(p2).Return(a2),
	)

	f.tracker.EXPECT().MarkFailure(gomock.Any(), int64(1)).Return(nil).Times(2)
	f.tracker.EXPECT().MarkFailure(gomock.Any(), int64(2)).Return(nil)
	f.auditSvc.EXPECT().RecordAttempt(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	res, err := f.engine.SendWithRouting(context.Background(), testMessage(domain.TaskTypeAccount))
	require.ErrorIs(t, err, errs.ErrAllProvidersFailed)
	assert.False(t, res.Success)
	assert.Equal(t, int32(3), res.TotalAttempts)
	assert.Equal(t, domain.FailureCodeAllProvidersFailed, res.ErrorCode)
	assert.True(t, res.FailoverOccurred)
}

func TestEngine_ConsentDenied(t *testing.T) {
	t.Parallel()

	p1 := activeProvider(1, "sendgrid")
	f := newEngineFixture(t, []domain.Provider{p1}, testRouting(domain.TaskTypeMarketing, 1), nil)

	f.consentSvc.EXPECT().Allowed(gomock.Any(), int64(1001), domain.TaskTypeMarketing).Return(false, nil)

	res, err := f.engine.SendWithRouting(context.Background(), testMessage(domain.TaskTypeMarketing))
	require.ErrorIs(t, err, errs.ErrConsentRequired)
	assert.False(t, res.Success)
	assert.Equal(t, domain.FailureCodeConsentRequired, res.ErrorCode)
	assert.Zero(t, res.TotalAttempts)
}

func TestEngine_RoutingDisabled(t *testing.T) {
	t.Parallel()

	p1 := activeProvider(1, "sendgrid")
	routing := testRouting(domain.TaskTypeAccount, 1)
	routing.Enabled = false
	f := newEngineFixture(t, []domain.Provider{p1}, routing, nil)

	f.consentSvc.EXPECT().Allowed(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

	res, err := f.engine.SendWithRouting(context.Background(), testMessage(domain.TaskTypeAccount))
	require.ErrorIs(t, err, errs.ErrRoutingNotConfigured)
	assert.Equal(t, domain.FailureCodeRoutingNotConfigured, res.ErrorCode)
	assert.Zero(t, res.TotalAttempts)
}

func TestEngine_RoutingNotFound(t *testing.T) {
	t.Parallel()

	f := newEngineFixture(t, nil, domain.TaskRouting{}, errs.ErrRoutingNotFound)

	f.consentSvc.EXPECT().Allowed(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

	res, err := f.engine.SendWithRouting(context.Background(), testMessage(domain.TaskTypeAccount))
	require.ErrorIs(t, err, errs.ErrRoutingNotConfigured)
	assert.Equal(t, domain.FailureCodeRoutingNotConfigured, res.ErrorCode)
}

func TestEngine_RateLimitSkipMovesToNextProvider(t *testing.T) {
	t.Parallel()

	p1 := activeProvider(1, "sendgrid")
	p2 := activeProvider(2, "mailgun")
	f := newEngineFixture(t, []domain.Provider{p1, p2}, testRouting(domain.TaskTypeAccount, 1, 2), nil)

	f.consentSvc.EXPECT().Allowed(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.tracker.EXPECT().ConsecutiveFailures(gomock.Any(), gomock.Any()).Return(int64(0), nil).Times(2)

	ctrl := gomock.NewController(t)
	a1 := adaptermocks.NewMockAdapter(ctrl)
	// 限流跳过：不调用Send，也不登记失败
	a1.EXPECT().CanSend(gomock.Any()).Return(false, "rate limit exceeded", nil)
	a2 := adaptermocks.NewMockAdapter(ctrl)
	a2.EXPECT().CanSend(gomock.Any()).Return(true, "", nil)
	a2.EXPECT().Send(gomock.Any(), gomock.Any()).Return(domain.SendReceipt{}, nil)

	gomock.InOrder(
		f.factory.EXPECT().Adapter(p1).Return(a1),
		f.factory.EXPECT().Adapter(p2).Return(a2),
	)

	f.tracker.EXPECT().MarkSuccess(gomock.Any(), int64(2)).Return(nil)

	var audits []domain.DeliveryAudit
	f.auditSvc.EXPECT().RecordAttempt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a domain.DeliveryAudit) error {
			audits = append(audits, a)
			return nil
		}).Times(2)

	res, err := f.engine.SendWithRouting(context.Background(), testMessage(domain.TaskTypeAccount))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int32(2), res.TotalAttempts)
	assert.True(t, res.FailoverOccurred)
	assert.Equal(t, int64(1), res.FailoverFromProviderID)
	assert.Equal(t, "rate limit exceeded", res.FailoverReason)

	require.Len(t, audits, 2)
	assert.False(t, audits[0].Success)
	assert.Equal(t, string(domain.FailureCodeProviderUnavailable), audits[0].ErrorCode)
	assert.Equal(t, "rate limit exceeded", audits[0].ErrorMessage)
	assert.True(t, audits[1].Success)
}

func TestEngine_ForcedProviderBypassesChain(t *testing.T) {
	t.Parallel()

	p1 := activeProvider(1, "sendgrid")
	p2 := activeProvider(2, "mailgun")
	routing := testRouting(domain.TaskTypeAccount, 1, 2)
	routing.ForceProviderID = 2
	f := newEngineFixture(t, []domain.Provider{p1, p2}, routing, nil)

	f.consentSvc.EXPECT().Allowed(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

	a2 := adaptermocks.NewMockAdapter(gomock.NewController(t))
	a2.EXPECT().CanSend(gomock.Any()).Return(true, "", nil)
	a2.EXPECT().Send(gomock.Any(), gomock.Any()).Return(domain.SendReceipt{}, nil)
	f.factory.EXPECT().Adapter(p2).Return(a2)

	f.tracker.EXPECT().MarkSuccess(gomock.Any(), int64(2)).Return(nil)
	f.auditSvc.EXPECT().RecordAttempt(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.engine.SendWithRouting(context.Background(), testMessage(domain.TaskTypeAccount))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int64(2), res.ProviderID)
	assert.Equal(t, int32(1), res.TotalAttempts)
	assert.False(t, res.FailoverOccurred)
}

func TestEngine_ForcedProviderInactive(t *testing.T) {
	t.Parallel()

	p2 := activeProvider(2, "mailgun")
	p2.Status = domain.ProviderStatusInactive
	routing := testRouting(domain.TaskTypeAccount, 1)
	routing.ForceProviderID = 2
	f := newEngineFixture(t, []domain.Provider{p2}, routing, nil)

	f.consentSvc.EXPECT().Allowed(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

	res, err := f.engine.SendWithRouting(context.Background(), testMessage(domain.TaskTypeAccount))
	require.ErrorIs(t, err, errs.ErrNoAvailableProvider)
	assert.Equal(t, domain.FailureCodeNoProvidersAvailable, res.ErrorCode)
}

func TestEngine_InvalidMessage(t *testing.T) {
	t.Parallel()

	f := newEngineFixture(t, nil, domain.TaskRouting{}, nil)

	msg := testMessage(domain.TaskTypeAccount)
	msg.To = nil
	_, err := f.engine.SendWithRouting(context.Background(), msg)
	require.ErrorIs(t, err, errs.ErrInvalidParameter)
}

func TestEngine_BatchSend(t *testing.T) {
	t.Parallel()

	p1 := activeProvider(1, "sendgrid")
	f := newEngineFixture(t, []domain.Provider{p1}, testRouting(domain.TaskTypeAccount, 1), nil)

	f.consentSvc.EXPECT().Allowed(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
	f.tracker.EXPECT().ConsecutiveFailures(gomock.Any(), gomock.Any()).Return(int64(0), nil).Times(2)

	a1 := adaptermocks.NewMockAdapter(gomock.NewController(t))
	a1.EXPECT().CanSend(gomock.Any()).Return(true, "", nil).Times(2)
	a1.EXPECT().Send(gomock.Any(), gomock.Any()).Return(domain.SendReceipt{}, nil).Times(2)
	f.factory.EXPECT().Adapter(gomock.Any()).Return(a1).Times(2)

	f.tracker.EXPECT().MarkSuccess(gomock.Any(), int64(1)).Return(nil).Times(2)
	f.auditSvc.EXPECT().RecordAttempt(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	msgs := []domain.Message{
		testMessage(domain.TaskTypeAccount),
		testMessage(domain.TaskTypeAccount),
	}
	results, err := f.engine.BatchSendWithRouting(context.Background(), msgs)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, res := range results {
		assert.True(t, res.Success)
	}
}

func TestEngine_BatchSendEmpty(t *testing.T) {
	t.Parallel()

	f := newEngineFixture(t, nil, domain.TaskRouting{}, nil)

	_, err := f.engine.BatchSendWithRouting(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidParameter))
}
