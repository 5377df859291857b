package domain

import (
	"fmt"

	"gitee.com/flycash/mail-delivery-platform/internal/errs"
)

// TaskType 任务类别，决定路由策略与授权要求
type TaskType string

const (
	TaskTypeAuth       TaskType = "AUTH"       // 认证类：验证码、密码重置
	TaskTypeAccount    TaskType = "ACCOUNT"    // 账户通知
	TaskTypeBilling    TaskType = "BILLING"    // 账单、发票（交易类）
	TaskTypeTicket     TaskType = "TICKET"     // 工单往来
	TaskTypeOnboarding TaskType = "ONBOARDING" // 入驻引导
	TaskTypeMarketing  TaskType = "MARKETING"  // 营销推广
)

func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeAuth, TaskTypeAccount, TaskTypeBilling,
		TaskTypeTicket, TaskTypeOnboarding, TaskTypeMarketing:
		return true
	default:
		return false
	}
}

// ConsentPolicy 任务类别对应的授权策略
type ConsentPolicy string

const (
	ConsentPolicyAlways ConsentPolicy = "ALWAYS"  // 无条件允许
	ConsentPolicyOptIn  ConsentPolicy = "OPT_IN"  // 必须显式订阅
	ConsentPolicyOptOut ConsentPolicy = "OPT_OUT" // 默认允许，可退订
)

// ConsentPolicy 认证与交易类无条件允许，营销类必须显式订阅，其余默认允许可退订
func (t TaskType) ConsentPolicy() ConsentPolicy {
	switch t {
	case TaskTypeAuth, TaskTypeBilling:
		return ConsentPolicyAlways
	case TaskTypeMarketing:
		return ConsentPolicyOptIn
	default:
		return ConsentPolicyOptOut
	}
}

// Attachment 附件，内容由上游渲染方提供
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message 消息信封。正文由外部模板渲染协作方生成，本系统视为不透明字符串。
// 一旦交给引擎即不可变。
type Message struct {
	ID          int64 // 消息唯一标识，为0时由引擎生成
	UserID      int64 // 收件人用户ID，用于授权检查
	BizKey      string
	Task        TaskType
	To          []string
	Cc          []string
	Bcc         []string
	Subject     string
	Body        string // 已渲染正文，不透明
	HTML        bool
	Attachments []Attachment
	Headers     map[string]string
	Metadata    map[string]string
}

// RecipientCount 全部收件人数量
func (m Message) RecipientCount() int {
	return len(m.To) + len(m.Cc) + len(m.Bcc)
}

func (m Message) Validate() error {
	if !m.Task.IsValid() {
		return fmt.Errorf("%w: Task = %q", errs.ErrInvalidParameter, m.Task)
	}

	if len(m.To) == 0 {
		return fmt.Errorf("%w: To = %v", errs.ErrInvalidParameter, m.To)
	}

	if m.Subject == "" {
		return fmt.Errorf("%w: Subject = %q", errs.ErrInvalidParameter, m.Subject)
	}

	if m.Body == "" {
		return fmt.Errorf("%w: Body 不能为空", errs.ErrInvalidParameter)
	}

	return nil
}
