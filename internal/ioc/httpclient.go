package ioc

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gotomicro/ego/core/econf"
)

const defaultHTTPTimeout = 10 * time.Second

// InitHTTPClient HTTP API/Webhook适配器共用的客户端
func InitHTTPClient() *resty.Client {
	timeout := econf.GetDuration("http.timeout")
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return resty.New().SetTimeout(timeout)
}
