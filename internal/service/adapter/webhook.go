package adapter

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	"gitee.com/flycash/mail-delivery-platform/internal/errs"
	"github.com/go-resty/resty/v2"
)

// webhookEnvelope 投递给中继的消息信封
type webhookEnvelope struct {
	MessageID int64             `json:"messageId"`
	Task      string            `json:"task"`
	To        []string          `json:"to"`
	Cc        []string          `json:"cc,omitempty"`
	Bcc       []string          `json:"bcc,omitempty"`
	Subject   string            `json:"subject"`
	Body      string            `json:"body"`
	HTML      bool              `json:"html"`
	Headers   map[string]string `json:"headers,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// webhookAdapter Webhook中继适配器。请求体用HMAC-SHA256签名，
// 中继方校验签名后自行完成投递。
type webhookAdapter struct {
	base
	secrets Secrets
	client  *resty.Client
}

// NewWebhookAdapter 创建Webhook适配器
func NewWebhookAdapter(provider domain.Provider, health HealthReader, secrets Secrets, client *resty.Client) Adapter {
	return &webhookAdapter{
		base:    base{provider: provider, health: health},
		secrets: secrets,
		client:  client,
	}
}

func (a *webhookAdapter) Send(ctx context.Context, msg domain.Message) (domain.SendReceipt, error) {
	signSecret, err := a.secrets.Decrypt(a.provider.APISecret)
	if err != nil {
		return domain.SendReceipt{}, fmt.Errorf("%w: %w", errs.ErrSendMessageFailed,
			errs.NewSendError("WEBHOOK_CREDENTIAL", "解密凭证失败"))
	}

	envelope := webhookEnvelope{
		MessageID: msg.ID,
		Task:      string(msg.Task),
		To:        msg.To,
		Cc:        msg.Cc,
		Bcc:       msg.Bcc,
		Subject:   msg.Subject,
		Body:      msg.Body,
		HTML:      msg.HTML,
		Headers:   msg.Headers,
		Metadata:  msg.Metadata,
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return domain.SendReceipt{}, fmt.Errorf("%w: %w", errs.ErrSendMessageFailed,
			errs.NewSendError("WEBHOOK_ENCODE", err.Error()))
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Webhook-Timestamp", timestamp).
		SetHeader("X-Webhook-Signature", a.sign(signSecret, timestamp, payload)).
		SetBody(payload).
		Post(a.provider.Endpoint)
	if err != nil {
		return domain.SendReceipt{}, fmt.Errorf("%w: %w", errs.ErrSendMessageFailed,
			errs.NewSendError("WEBHOOK_CONN", err.Error()))
	}

	if resp.IsError() {
		return domain.SendReceipt{}, fmt.Errorf("%w: %w", errs.ErrSendMessageFailed,
			errs.NewSendError(fmt.Sprintf("HTTP_%d", resp.StatusCode()), resp.Status()))
	}

	return domain.SendReceipt{}, nil
}

// CheckHealth HEAD探测中继地址
func (a *webhookAdapter) CheckHealth(ctx context.Context) error {
	resp, err := a.client.R().SetContext(ctx).Head(a.provider.Endpoint)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrProviderUnavailable,
			errs.NewSendError("WEBHOOK_CONN", err.Error()))
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %w", errs.ErrProviderUnavailable,
			errs.NewSendError(fmt.Sprintf("HTTP_%d", resp.StatusCode()), resp.Status()))
	}
	return nil
}

func (a *webhookAdapter) Capabilities() domain.Capabilities {
	return domain.Capabilities{
		SupportsAttachments: false,
		SupportsHTML:        true,
		SupportsBulk:        false,
		MaxRecipients:       100,
		MaxAttachmentSize:   0,
	}
}

// sign HMAC-SHA256(timestamp + "." + payload)
func (a *webhookAdapter) sign(signSecret, timestamp string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(signSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
