package errs

import (
	"errors"
	"fmt"
)

// 定义统一的错误类型
var (
	ErrInvalidParameter    = errors.New("参数错误")
	ErrSendMessageFailed   = errors.New("发送消息失败")
	ErrMessageIDGenerate   = errors.New("消息ID生成失败")
	ErrCreateAuditFailed   = errors.New("创建审计记录失败")

	ErrConsentRequired      = errors.New("收件人未授权该类消息")
	ErrRoutingNotConfigured = errors.New("任务类别未配置路由")
	ErrNoAvailableProvider  = errors.New("无可用供应商")
	ErrProviderUnavailable  = errors.New("供应商不可用")
	ErrAllProvidersFailed   = errors.New("所有供应商均发送失败")

	ErrProviderNotFound = errors.New("供应商记录不存在")
	ErrRoutingNotFound  = errors.New("路由记录不存在")
	ErrConsentNotFound  = errors.New("授权记录不存在")
)

// SendError 归一化后的传输层错误，引擎不感知具体厂商的错误形态
type SendError struct {
	Code    string // 归一化错误码，尽量保留厂商原始码
	Message string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewSendError(code, message string) *SendError {
	return &SendError{Code: code, Message: message}
}

// AsSendError 提取归一化传输错误，无法提取时返回UNKNOWN
func AsSendError(err error) *SendError {
	var se *SendError
	if errors.As(err, &se) {
		return se
	}
	return &SendError{Code: "UNKNOWN", Message: err.Error()}
}
