package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	backendURLKey     = "backend.url"
	requestTimeoutKey = "backend.request_timeout"
)

type BackendConfig interface {
	GetBackendURL() string
	GetRequestTimeout() time.Duration
}

type Backend struct {
	v *viper.Viper
}

var _ BackendConfig = Backend{}

// GetBackendURL returns the Project Sync REST API root, e.g. "https://api.projectsync.app/api"
func (b Backend) GetBackendURL() string {
	return strings.TrimRight(b.v.GetString(backendURLKey), "/")
}

func (b Backend) GetRequestTimeout() time.Duration {
	return b.v.GetDuration(requestTimeoutKey)
}
