package config

import (
	errs "github.com/jthorne/go-travel-site/internal/errors"
)

type Config interface {
	EnvConfig
	CorsConfig
	AuthConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetRedisAddr() string
	GetEnv() string
	IsProduction() bool
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Auth
	Security
}

func New() Config {
	return mainConfig{}
}

// Validate enforces startup invariants. A missing signing secret in
// production is fatal; request handling must never see this error.
func Validate(c Config) error {
	if c.IsProduction() && c.GetSigningSecret() == "" {
		return errs.ErrMissingSigningSecret
	}
	return nil
}
