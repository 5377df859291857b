package adapter

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"net/textproto"
	"strings"

	"gitee.com/flycash/mail-delivery-platform/internal/domain"
	"gitee.com/flycash/mail-delivery-platform/internal/errs"
)

const (
	smtpMaxAttachmentSize = 10 << 20 // 10MiB，常见SMTP服务端的消息体上限
	crlf                  = "\r\n"
)

// smtpAdapter SMTP直连适配器
type smtpAdapter struct {
	base
	secrets Secrets
}

// NewSMTPAdapter 创建SMTP适配器
func NewSMTPAdapter(provider domain.Provider, health HealthReader, secrets Secrets) Adapter {
	return &smtpAdapter{
		base:    base{provider: provider, health: health},
		secrets: secrets,
	}
}

// Send 发送邮件。口令在本次调用内解密，随调用结束丢弃。
func (a *smtpAdapter) Send(ctx context.Context, msg domain.Message) (domain.SendReceipt, error) {
	if err := ctx.Err(); err != nil {
		return domain.SendReceipt{}, fmt.Errorf("%w: %w", errs.ErrSendMessageFailed, err)
	}

	password, err := a.secrets.Decrypt(a.provider.APISecret)
	if err != nil {
		return domain.SendReceipt{}, fmt.Errorf("%w: %w", errs.ErrSendMessageFailed,
			errs.NewSendError("SMTP_CREDENTIAL", "解密凭证失败"))
	}

	addr := net.JoinHostPort(a.provider.Host, fmt.Sprintf("%d", a.provider.Port))
	auth := smtp.PlainAuth("", a.provider.APIKey, password, a.provider.Host)

	// 信封收件人包含密送，消息头里不出现密送
	recipients := make([]string, 0, msg.RecipientCount())
	recipients = append(recipients, msg.To...)
	recipients = append(recipients, msg.Cc...)
	recipients = append(recipients, msg.Bcc...)

	body, err := a.buildMessage(msg)
	if err != nil {
		return domain.SendReceipt{}, fmt.Errorf("%w: %w", errs.ErrSendMessageFailed, err)
	}

	if err := smtp.SendMail(addr, auth, a.provider.SenderAddress, recipients, body); err != nil {
		return domain.SendReceipt{}, fmt.Errorf("%w: %w", errs.ErrSendMessageFailed, a.normalize(err))
	}

	return domain.SendReceipt{}, nil
}

// CheckHealth 握手后立即退出，不产生真实发送
func (a *smtpAdapter) CheckHealth(ctx context.Context) error {
	addr := net.JoinHostPort(a.provider.Host, fmt.Sprintf("%d", a.provider.Port))

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrProviderUnavailable, a.normalize(err))
	}

	client, err := smtp.NewClient(conn, a.provider.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: %w", errs.ErrProviderUnavailable, a.normalize(err))
	}
	defer func() { _ = client.Quit() }()

	if err := client.Noop(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrProviderUnavailable, a.normalize(err))
	}
	return nil
}

func (a *smtpAdapter) Capabilities() domain.Capabilities {
	return domain.Capabilities{
		SupportsAttachments: true,
		SupportsHTML:        true,
		SupportsBulk:        false,
		MaxRecipients:       100,
		MaxAttachmentSize:   smtpMaxAttachmentSize,
	}
}

// normalize 把SMTP错误归一化为 {code, message}。
// 服务端返回的三位状态码尽量保留。
func (a *smtpAdapter) normalize(err error) *errs.SendError {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		return errs.NewSendError(fmt.Sprintf("SMTP_%d", tpErr.Code), tpErr.Msg)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errs.NewSendError("SMTP_TIMEOUT", err.Error())
	}

	return errs.NewSendError("SMTP_CONN", err.Error())
}

// buildMessage 组装MIME消息
func (a *smtpAdapter) buildMessage(msg domain.Message) ([]byte, error) {
	var sb strings.Builder

	from := a.provider.SenderAddress
	if a.provider.SenderName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", a.provider.SenderName), a.provider.SenderAddress)
	}

	sb.WriteString("From: " + from + crlf)
	sb.WriteString("To: " + strings.Join(msg.To, ", ") + crlf)
	if len(msg.Cc) > 0 {
		sb.WriteString("Cc: " + strings.Join(msg.Cc, ", ") + crlf)
	}
	sb.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + crlf)
	for k, v := range msg.Headers {
		sb.WriteString(k + ": " + v + crlf)
	}
	sb.WriteString("MIME-Version: 1.0" + crlf)

	contentType := "text/plain; charset=utf-8"
	if msg.HTML {
		contentType = "text/html; charset=utf-8"
	}

	if len(msg.Attachments) == 0 {
		sb.WriteString("Content-Type: " + contentType + crlf + crlf)
		sb.WriteString(msg.Body)
		return []byte(sb.String()), nil
	}

	const boundary = "MAIL-DELIVERY-BOUNDARY"
	sb.WriteString("Content-Type: multipart/mixed; boundary=" + boundary + crlf + crlf)

	sb.WriteString("--" + boundary + crlf)
	sb.WriteString("Content-Type: " + contentType + crlf + crlf)
	sb.WriteString(msg.Body + crlf)

	for _, att := range msg.Attachments {
		if int64(len(att.Content)) > smtpMaxAttachmentSize {
			return nil, errs.NewSendError("SMTP_ATTACHMENT_TOO_LARGE",
				fmt.Sprintf("附件 %s 超过大小上限", att.Filename))
		}
		sb.WriteString("--" + boundary + crlf)
		sb.WriteString("Content-Type: " + att.ContentType + crlf)
		sb.WriteString("Content-Transfer-Encoding: base64" + crlf)
		sb.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=%q", att.Filename) + crlf + crlf)
		sb.WriteString(base64.StdEncoding.EncodeToString(att.Content) + crlf)
	}
	sb.WriteString("--" + boundary + "--" + crlf)

	return []byte(sb.String()), nil
}
