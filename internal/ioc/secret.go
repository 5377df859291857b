package ioc

import (
	"gitee.com/flycash/mail-delivery-platform/internal/pkg/secret"
	"github.com/gotomicro/ego/core/econf"
)

// InitCipher 供应商凭证加解密器。密钥来自配置，不落库、不打日志。
func InitCipher() *secret.Cipher {
	key := econf.GetString("provider.encryptKey")
	if key == "" {
		panic("缺少供应商凭证加密密钥配置 provider.encryptKey")
	}
	return secret.NewCipher(key)
}
