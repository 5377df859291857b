package ioc

import (
	redismetrics "gitee.com/flycash/mail-delivery-platform/internal/pkg/redis/metrics"
	"github.com/gotomicro/ego/core/econf"
	"github.com/redis/go-redis/v9"
)

func InitRedisClient() *redis.Client {
	type Config struct {
		Addr string
	}
	var cfg Config
	err := econf.UnmarshalKey("redis", &cfg)
	if err != nil {
		panic(err)
	}
	cmd := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
	})
	return redismetrics.WithMetrics(cmd)
}

func InitRedisCmd(client *redis.Client) redis.Cmdable {
	return client
}
