package adapter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	"gitee.com/flycash/mail-delivery-platform/internal/errs"
	"github.com/go-resty/resty/v2"
)

const httpAPIMaxAttachmentSize = 25 << 20 // 25MiB

// apiSendRequest HTTP API发信商的通用请求体
type apiSendRequest struct {
	FromName    string            `json:"fromName,omitempty"`
	FromAddress string            `json:"fromAddress"`
	To          []string          `json:"to"`
	Cc          []string          `json:"cc,omitempty"`
	Bcc         []string          `json:"bcc,omitempty"`
	Subject     string            `json:"subject"`
	Text        string            `json:"text,omitempty"`
	HTML        string            `json:"html,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Attachments []apiAttachment   `json:"attachments,omitempty"`
}

type apiAttachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"` // base64
}

// apiSendResponse 发信商通用响应体
type apiSendResponse struct {
	MessageID string `json:"messageId"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// httpAPIAdapter HTTP API发信商适配器。
// 这是最通用的传输家族（带鉴权的请求/响应），同时充当未知供应商
// 类型的兜底实现。
type httpAPIAdapter struct {
	base
	secrets Secrets
	client  *resty.Client
}

// NewHTTPAPIAdapter 创建HTTP API适配器
func NewHTTPAPIAdapter(provider domain.Provider, health HealthReader, secrets Secrets, client *resty.Client) Adapter {
	return &httpAPIAdapter{
		base:    base{provider: provider, health: health},
		secrets: secrets,
		client:  client,
	}
}

func (a *httpAPIAdapter) Send(ctx context.Context, msg domain.Message) (domain.SendReceipt, error) {
	apiSecret, err := a.secrets.Decrypt(a.provider.APISecret)
	if err != nil {
		return domain.SendReceipt{}, fmt.Errorf("%w: %w", errs.ErrSendMessageFailed,
			errs.NewSendError("API_CREDENTIAL", "解密凭证失败"))
	}

	req := apiSendRequest{
		FromName:    a.provider.SenderName,
		FromAddress: a.provider.SenderAddress,
		To:          msg.To,
		Cc:          msg.Cc,
		Bcc:         msg.Bcc,
		Subject:     msg.Subject,
		Headers:     msg.Headers,
	}
	if msg.HTML {
		req.HTML = msg.Body
	} else {
		req.Text = msg.Body
	}
	for _, att := range msg.Attachments {
		req.Attachments = append(req.Attachments, apiAttachment{
			Filename:    att.Filename,
			ContentType: att.ContentType,
			Content:     base64.StdEncoding.EncodeToString(att.Content),
		})
	}

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("X-API-Key", a.provider.APIKey).
		SetAuthToken(apiSecret).
		SetBody(req).
		Post(a.provider.Endpoint)
	if err != nil {
		return domain.SendReceipt{}, fmt.Errorf("%w: %w", errs.ErrSendMessageFailed,
			errs.NewSendError("API_CONN", err.Error()))
	}

	if resp.IsError() {
		return domain.SendReceipt{}, fmt.Errorf("%w: %w", errs.ErrSendMessageFailed, a.normalize(resp))
	}

	var body apiSendResponse
	// 响应体解析失败不算发送失败，服务端已接收
	_ = json.Unmarshal(resp.Body(), &body)

	return domain.SendReceipt{ProviderMessageID: body.MessageID}, nil
}

// CheckHealth HEAD探测入口地址，不产生真实发送
func (a *httpAPIAdapter) CheckHealth(ctx context.Context) error {
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("X-API-Key", a.provider.APIKey).
		Head(a.provider.Endpoint)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrProviderUnavailable, errs.NewSendError("API_CONN", err.Error()))
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %w", errs.ErrProviderUnavailable,
			errs.NewSendError(fmt.Sprintf("HTTP_%d", resp.StatusCode()), resp.Status()))
	}
	return nil
}

func (a *httpAPIAdapter) Capabilities() domain.Capabilities {
	return domain.Capabilities{
		SupportsAttachments: true,
		SupportsHTML:        true,
		SupportsBulk:        true,
		MaxRecipients:       1000,
		MaxAttachmentSize:   httpAPIMaxAttachmentSize,
	}
}

// normalize 把HTTP错误归一化为 {code, message}。
// 响应体里带厂商错误码的尽量保留原始码。
func (a *httpAPIAdapter) normalize(resp *resty.Response) *errs.SendError {
	var body apiSendResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Code != "" {
		return errs.NewSendError(body.Code, body.Message)
	}
	return errs.NewSendError(fmt.Sprintf("HTTP_%d", resp.StatusCode()), resp.Status())
}
