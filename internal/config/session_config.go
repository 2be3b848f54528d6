package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	restoreTimeoutKey   = "session.restore_timeout"
	tokenCachePathKey   = "session.token_cache_path"
	tokenCacheSecretKey = "session.token_cache_secret"
)

type SessionConfig interface {
	GetRestoreTimeout() time.Duration
	GetTokenCachePath() string
	GetTokenCacheSecret() string
}

type Session struct {
	v *viper.Viper
}

var _ SessionConfig = Session{}

// GetRestoreTimeout bounds the startup "who am I" call; past it the session is treated as logged out.
func (s Session) GetRestoreTimeout() time.Duration {
	return s.v.GetDuration(restoreTimeoutKey)
}

// GetTokenCachePath is where the login token is cached between runs. Empty disables the cache.
func (s Session) GetTokenCachePath() string {
	return s.v.GetString(tokenCachePathKey)
}

func (s Session) GetTokenCacheSecret() string {
	return s.v.GetString(tokenCacheSecretKey)
}
