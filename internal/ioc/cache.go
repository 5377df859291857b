package ioc

import (
	"time"

	ca "github.com/patrickmn/go-cache"
)

const (
	defaultExpiration = 5 * time.Minute
	cleanupInterval   = 10 * time.Minute
)

func InitGoCache() *ca.Cache {
	return ca.New(defaultExpiration, cleanupInterval)
}
