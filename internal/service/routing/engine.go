package routing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	"gitee.com/flycash/mail-delivery-platform/internal/errs"
	"gitee.com/flycash/mail-delivery-platform/internal/pkg/idgen"
	pkgretry "gitee.com/flycash/mail-delivery-platform/internal/pkg/retry"
	"gitee.com/flycash/mail-delivery-platform/internal/repository"
	"gitee.com/flycash/mail-delivery-platform/internal/service/adapter"
	"gitee.com/flycash/mail-delivery-platform/internal/service/audit"
	"gitee.com/flycash/mail-delivery-platform/internal/service/consent"
	"gitee.com/flycash/mail-delivery-platform/internal/service/health"
	"github.com/ecodeclub/ekit/retry"
	"github.com/gotomicro/ego/core/elog"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

const defaultBatchConcurrency = 10

type engine struct {
	routingRepo repository.TaskRoutingRepository
	consentSvc  consent.Service
	chain       *ChainBuilder
	factory     adapter.Factory
	tracker     health.Tracker
	auditSvc    audit.Service
	idGen       *idgen.Generator
	logger      *elog.Component

	batchConcurrency int
}

func NewEngine(
	routingRepo repository.TaskRoutingRepository,
	consentSvc consent.Service,
	chain *ChainBuilder,
	factory adapter.Factory,
	tracker health.Tracker,
	auditSvc audit.Service,
	idGen *idgen.Generator,
) Engine {
	return &engine{
		routingRepo:      routingRepo,
		consentSvc:       consentSvc,
		chain:            chain,
		factory:          factory,
		tracker:          tracker,
		auditSvc:         auditSvc,
		idGen:            idGen,
		logger:           elog.DefaultLogger,
		batchConcurrency: defaultBatchConcurrency,
	}
}

func (e *engine) SendWithRouting(ctx context.Context, msg domain.Message) (domain.FailoverResult, error) {
	if err := msg.Validate(); err != nil {
		return domain.FailoverResult{}, err
	}

	if msg.ID == 0 {
		id, err := e.idGen.NextID()
		if err != nil {
			return domain.FailoverResult{}, fmt.Errorf("%w: %w", errs.ErrMessageIDGenerate, err)
		}
		msg.ID = id
	}

	res := domain.FailoverResult{MessageID: msg.ID}

	// 授权检查在任何副作用之前，拒绝时既不记审计也不动计数
	allowed, err := e.consentSvc.Allowed(ctx, msg.UserID, msg.Task)
	if err != nil {
		return res, err
	}
	if !allowed {
		res.ErrorCode = domain.FailureCodeConsentRequired
		res.ErrorMessage = errs.ErrConsentRequired.Error()
		return res, fmt.Errorf("%w: userID = %d, task = %s", errs.ErrConsentRequired, msg.UserID, msg.Task)
	}

	routing, err := e.routingRepo.FindByTaskType(ctx, msg.Task)
	if err != nil {
		if errors.Is(err, errs.ErrRoutingNotFound) {
			res.ErrorCode = domain.FailureCodeRoutingNotConfigured
			res.ErrorMessage = errs.ErrRoutingNotConfigured.Error()
			return res, fmt.Errorf("%w: task = %s", errs.ErrRoutingNotConfigured, msg.Task)
		}
		return res, err
	}
	if !routing.Enabled {
		res.ErrorCode = domain.FailureCodeRoutingNotConfigured
		res.ErrorMessage = errs.ErrRoutingNotConfigured.Error()
		return res, fmt.Errorf("%w: task = %s 路由已停用", errs.ErrRoutingNotConfigured, msg.Task)
	}

	chain, err := e.chain.Build(ctx, routing)
	if err != nil {
		return res, err
	}
	if len(chain) == 0 {
		res.ErrorCode = domain.FailureCodeNoProvidersAvailable
		res.ErrorMessage = errs.ErrNoAvailableProvider.Error()
		return res, fmt.Errorf("%w: task = %s", errs.ErrNoAvailableProvider, msg.Task)
	}

	return e.walkChain(ctx, msg, routing, chain)
}

// walkChain 顺序走完供应商链路。每个供应商内部最多尝试 RetryAttempts 次，
// 整条链路受 MaxSendAttempts 封顶，任何一次成功立即返回。
func (e *engine) walkChain(ctx context.Context, msg domain.Message, routing domain.TaskRouting, chain []domain.Provider) (domain.FailoverResult, error) {
	res := domain.FailoverResult{MessageID: msg.ID}

	var (
		totalAttempts  int32
		providersTried int
		aggErr         *multierror.Error
	)

	for idx := range chain {
		if totalAttempts >= routing.MaxSendAttempts {
			break
		}

		p := chain[idx]
		a := e.factory.Adapter(p)
		providersTried++

		// RetryDelay为0表示立即重试，不构造等待策略
		var strategy retry.Strategy
		if routing.RetryDelay > 0 {
			var err error
			strategy, err = pkgretry.NewFixedFromRouting(routing.RetryDelay, routing.RetryAttempts)
			if err != nil {
				return res, err
			}
		}

		for attempt := int32(0); attempt < routing.RetryAttempts; attempt++ {
			if ctx.Err() != nil {
				res.TotalAttempts = totalAttempts
				res.FailoverOccurred = providersTried > 1
				res.ErrorCode = domain.FailureCodeSendError
				res.ErrorMessage = ctx.Err().Error()
				return res, fmt.Errorf("%w: %w", errs.ErrSendMessageFailed, ctx.Err())
			}

			if totalAttempts >= routing.MaxSendAttempts {
				break
			}

			// 先占用一次尝试额度，再做门禁检查。
			// 被限流跳过同样消耗总尝试数，这是防饥饿的刻意设计。
			totalAttempts++

			ok, reason, err := a.CanSend(ctx)
			if err != nil {
				// 门禁依赖的计数读不到时放行发送：宁可短时超出配额，
				// 不让Redis故障阻断全部投递
				e.logger.Warn("发送门禁检查失败，放行本次发送",
					elog.Any("err", err),
					elog.Int64("providerID", p.ID),
				)
				ok = true
			}
			if !ok {
				e.recordAttempt(ctx, msg, p, domain.AttemptResult{
					ProviderID:   p.ID,
					ProviderName: p.Name,
					ErrorCode:    string(domain.FailureCodeProviderUnavailable),
					ErrorMessage: reason,
					Attempt:      totalAttempts,
				})
				aggErr = multierror.Append(aggErr,
					fmt.Errorf("%w: %s: %s", errs.ErrProviderUnavailable, p.Name, reason))
				res.FailoverFromProviderID = p.ID
				res.FailoverReason = reason
				// 跳过不算失败，不动连续失败计数，直接换下一个供应商
				break
			}

			receipt, sendErr := a.Send(ctx, msg)
			if sendErr == nil {
				e.recordAttempt(ctx, msg, p, domain.AttemptResult{
					Success:      true,
					ProviderID:   p.ID,
					ProviderName: p.Name,
					Attempt:      totalAttempts,
				})
				e.markSuccess(ctx, p.ID)

				res.Success = true
				res.ProviderID = p.ID
				res.ProviderName = p.Name
				res.TotalAttempts = totalAttempts
				res.FailoverOccurred = providersTried > 1
				if receipt.ProviderMessageID != "" {
					e.logger.Info("消息发送成功",
						elog.Int64("messageID", msg.ID),
						elog.String("provider", p.Name),
						elog.String("providerMessageID", receipt.ProviderMessageID),
					)
				}
				return res, nil
			}

			se := errs.AsSendError(sendErr)
			e.recordAttempt(ctx, msg, p, domain.AttemptResult{
				ProviderID:   p.ID,
				ProviderName: p.Name,
				ErrorCode:    se.Code,
				ErrorMessage: se.Message,
				Attempt:      totalAttempts,
			})
			e.markFailure(ctx, p.ID)
			aggErr = multierror.Append(aggErr, fmt.Errorf("%s: %w", p.Name, sendErr))
			res.FailoverFromProviderID = p.ID
			res.FailoverReason = se.Code

			// 同一供应商的下一次重试之前等待固定间隔，
			// 最后一次失败后不等待，直接切换
			if strategy != nil && attempt < routing.RetryAttempts-1 && totalAttempts < routing.MaxSendAttempts {
				delay, delayOK := strategy.Next()
				if !delayOK {
					break
				}
				if err := e.wait(ctx, delay); err != nil {
					res.TotalAttempts = totalAttempts
					res.FailoverOccurred = providersTried > 1
					res.ErrorCode = domain.FailureCodeSendError
					res.ErrorMessage = err.Error()
					return res, fmt.Errorf("%w: %w", errs.ErrSendMessageFailed, err)
				}
			}
		}
	}

	res.TotalAttempts = totalAttempts
	res.FailoverOccurred = providersTried > 1
	res.ErrorCode = domain.FailureCodeAllProvidersFailed
	res.ErrorMessage = errs.ErrAllProvidersFailed.Error()
	return res, fmt.Errorf("%w: %w", errs.ErrAllProvidersFailed, aggErr.ErrorOrNil())
}

func (e *engine) BatchSendWithRouting(ctx context.Context, msgs []domain.Message) ([]domain.FailoverResult, error) {
	if len(msgs) == 0 {
		return nil, fmt.Errorf("%w: 消息列表为空", errs.ErrInvalidParameter)
	}

	results := make([]domain.FailoverResult, len(msgs))

	var eg errgroup.Group
	eg.SetLimit(e.batchConcurrency)
	for i := range msgs {
		i := i
		eg.Go(func() error {
			// 单条失败不中断其余消息，结果在各自槽位里表达
			res, err := e.SendWithRouting(ctx, msgs[i])
			if err != nil {
				e.logger.Warn("批量发送中单条消息失败",
					elog.Any("err", err),
					elog.Int64("messageID", res.MessageID),
				)
			}
			results[i] = res
			return nil
		})
	}

	_ = eg.Wait()
	return results, nil
}

// recordAttempt 审计落库在尝试结果确定之后、流程继续之前同步完成。
// 落库失败只记日志，不阻断发送。
func (e *engine) recordAttempt(ctx context.Context, msg domain.Message, p domain.Provider, ar domain.AttemptResult) {
	err := e.auditSvc.RecordAttempt(ctx, domain.DeliveryAudit{
		MessageID:      msg.ID,
		Task:           msg.Task,
		ProviderID:     ar.ProviderID,
		ProviderName:   ar.ProviderName,
		Success:        ar.Success,
		ErrorCode:      ar.ErrorCode,
		ErrorMessage:   ar.ErrorMessage,
		Attempt:        ar.Attempt,
		RecipientCount: int32(msg.RecipientCount()),
		Timestamp:      time.Now(),
	})
	if err != nil {
		e.logger.Error("审计记录落库失败",
			elog.Any("err", err),
			elog.Int64("messageID", msg.ID),
			elog.Int64("providerID", p.ID),
		)
	}
}

func (e *engine) markSuccess(ctx context.Context, providerID int64) {
	if err := e.tracker.MarkSuccess(ctx, providerID); err != nil {
		e.logger.Warn("登记成功发送失败",
			elog.Any("err", err),
			elog.Int64("providerID", providerID),
		)
	}
}

func (e *engine) markFailure(ctx context.Context, providerID int64) {
	if err := e.tracker.MarkFailure(ctx, providerID); err != nil {
		e.logger.Warn("登记失败发送失败",
			elog.Any("err", err),
			elog.Int64("providerID", providerID),
		)
	}
}

func (e *engine) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
