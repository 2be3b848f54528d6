package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "PROJECT_SYNC"
	configFileName = "projectsync"
)

type Config interface {
	EnvConfig
	CorsConfig
	BackendConfig
	SessionConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetBaseURL() string
	IsDev() bool
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Backend
	Session
}

// settings mirrors the keys read from viper so they can be validated in one place.
type settings struct {
	Port           string        `validate:"required"`
	Env            string        `validate:"required"`
	BackendURL     string        `validate:"required,url"`
	RequestTimeout time.Duration `validate:"gt=0"`
	RestoreTimeout time.Duration `validate:"gt=0"`
}

// New loads configuration from an optional YAML file and PROJECT_SYNC_* environment variables.
// An empty configFile searches the working directory for projectsync.yaml.
func New(configFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(configFile == "" && os.IsNotExist(err)) {
			return nil, fmt.Errorf("[config.New] reading config: %w", err)
		}
	}

	c := mainConfig{
		EnvVars: EnvVars{v: v},
		Cors:    Cors{v: v},
		Backend: Backend{v: v},
		Session: Session{v: v},
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(portKey, "8080")
	v.SetDefault(appNameKey, "Project Sync")
	v.SetDefault(envKey, "DEV")
	v.SetDefault(baseURLKey, "http://localhost:8080")
	v.SetDefault(backendURLKey, "http://localhost:5000/api")
	v.SetDefault(requestTimeoutKey, 15*time.Second)
	v.SetDefault(restoreTimeoutKey, 10*time.Second)
	v.SetDefault(tokenCachePathKey, "")
	v.SetDefault(tokenCacheSecretKey, "")
	v.SetDefault(allowedOriginsKey, []string{})
}

func (c mainConfig) validate() error {
	s := settings{
		Port:           c.GetPort(),
		Env:            c.GetEnv(),
		BackendURL:     c.GetBackendURL(),
		RequestTimeout: c.GetRequestTimeout(),
		RestoreTimeout: c.GetRestoreTimeout(),
	}
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("[config.New] invalid configuration: %w", err)
	}
	if c.GetTokenCachePath() != "" && c.GetTokenCacheSecret() == "" {
		return errors.New("[config.New] session.token_cache_secret is required when session.token_cache_path is set")
	}
	return nil
}
