package store

import (
	"tonsor/config"
	redisInfra "tonsor/infras/redis"
	"tonsor/shared/constant"

	"github.com/rs/zerolog/log"
)

// NewFromConfig picks the configured persistence backend. The file store is
// the default so the client works without any external service running.
func NewFromConfig(cfg *config.Config) Store {
	if cfg.Session.Backend == constant.SessionBackendRedis {
		return NewRedisStore(redisInfra.New(cfg))
	}

	log.Debug().Str("path", cfg.Session.FilePath).Msg("using file session store")

	return NewFileStore(cfg.Session.FilePath)
}
