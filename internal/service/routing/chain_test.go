//go:build unit

package routing

import (
	"context"
	"testing"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	healthmocks "gitee.com/flycash/mail-delivery-platform/internal/service/health/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newChainFixture(t *testing.T, providers ...domain.Provider) (*ChainBuilder, *healthmocks.MockTracker) {
	t.Helper()
	pmap := make(map[int64]domain.Provider, len(providers))
	for _, p := range providers {
		pmap[p.ID] = p
	}
	tracker := healthmocks.NewMockTracker(gomock.NewController(t))
	return NewChainBuilder(&fakeProviderRepo{providers: pmap}, tracker), tracker
}

func TestChainBuilder_PreservesDeclaredOrder(t *testing.T) {
	t.Parallel()

	b, tracker := newChainFixture(t,
		activeProvider(1, "sendgrid"),
		activeProvider(2, "mailgun"),
		activeProvider(3, "postmark"),
	)
	tracker.EXPECT().ConsecutiveFailures(gomock.Any(), gomock.Any()).Return(int64(0), nil).Times(3)

	chain, err := b.Build(context.Background(), testRouting(domain.TaskTypeAccount, 1, 2, 3))
	require.NoError(t, err)
	require.Len(t, chain, 3)
	assert.Equal(t, int64(1), chain[0].ID)
	assert.Equal(t, int64(2), chain[1].ID)
	assert.Equal(t, int64(3), chain[2].ID)
}

func TestChainBuilder_FiltersInactive(t *testing.T) {
	t.Parallel()

	p2 := activeProvider(2, "mailgun")
	p2.Status = domain.ProviderStatusInactive
	b, tracker := newChainFixture(t, activeProvider(1, "sendgrid"), p2)
	tracker.EXPECT().ConsecutiveFailures(gomock.Any(), int64(1)).Return(int64(0), nil)

	chain, err := b.Build(context.Background(), testRouting(domain.TaskTypeAccount, 1, 2))
	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.Equal(t, int64(1), chain[0].ID)
}

func TestChainBuilder_FiltersUnhealthy(t *testing.T) {
	t.Parallel()

	b, tracker := newChainFixture(t, activeProvider(1, "sendgrid"), activeProvider(2, "mailgun"))
	tracker.EXPECT().ConsecutiveFailures(gomock.Any(), int64(1)).
		Return(int64(domain.MaxConsecutiveFailures), nil)
	tracker.EXPECT().ConsecutiveFailures(gomock.Any(), int64(2)).Return(int64(3), nil)

	chain, err := b.Build(context.Background(), testRouting(domain.TaskTypeAccount, 1, 2))
	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.Equal(t, int64(2), chain[0].ID)
}

func TestChainBuilder_SkipsMissingProvider(t *testing.T) {
	t.Parallel()

	b, tracker := newChainFixture(t, activeProvider(2, "mailgun"))
	tracker.EXPECT().ConsecutiveFailures(gomock.Any(), int64(2)).Return(int64(0), nil)

	chain, err := b.Build(context.Background(), testRouting(domain.TaskTypeAccount, 1, 2))
	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.Equal(t, int64(2), chain[0].ID)
}

func TestChainBuilder_ForcedBypassesHealthFilter(t *testing.T) {
	t.Parallel()

	// 强制供应商不查连续失败计数，tracker上没有任何期望
	b, _ := newChainFixture(t, activeProvider(1, "sendgrid"))
	routing := testRouting(domain.TaskTypeAccount, 1)
	routing.ForceProviderID = 1

	chain, err := b.Build(context.Background(), routing)
	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.Equal(t, int64(1), chain[0].ID)
}

func TestChainBuilder_ForcedInactiveYieldsEmptyChain(t *testing.T) {
	t.Parallel()

	p1 := activeProvider(1, "sendgrid")
	p1.Status = domain.ProviderStatusInactive
	b, _ := newChainFixture(t, p1)
	routing := testRouting(domain.TaskTypeAccount, 1)
	routing.ForceProviderID = 1

	chain, err := b.Build(context.Background(), routing)
	require.NoError(t, err)
	assert.Empty(t, chain)
}

func TestChainBuilder_ForcedUnknownProvider(t *testing.T) {
	t.Parallel()

	b, _ := newChainFixture(t)
	routing := testRouting(domain.TaskTypeAccount, 1)
	routing.ForceProviderID = 99

	chain, err := b.Build(context.Background(), routing)
	require.NoError(t, err)
	assert.Empty(t, chain)
}
