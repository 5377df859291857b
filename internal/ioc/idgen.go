package ioc

import (
	"gitee.com/flycash/mail-delivery-platform/internal/pkg/idgen"
)

func InitIDGenerator() *idgen.Generator {
	return idgen.NewGenerator()
}
