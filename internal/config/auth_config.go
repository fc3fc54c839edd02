package config

import "time"

type AuthConfig interface {
	GetSigningSecret() string
	GetTokenValidity() time.Duration
	GetAdminEmail() string
	GetAdminPasswordHash() string
	GetUserEmail() string
	GetUserPasswordHash() string
}

type Auth struct{}

var _ AuthConfig = Auth{}

// GetSigningSecret returns the HMAC secret used to sign session tokens.
// Empty in production fails startup validation; in development a fallback
// secret is substituted by the token manager.
func (Auth) GetSigningSecret() string {
	return GetEnv("SESSION_SECRET", "")
}

func (Auth) GetTokenValidity() time.Duration {
	return 7 * 24 * time.Hour // 7 days
}

func (Auth) GetAdminEmail() string {
	return GetEnv("ADMIN_EMAIL", "admin@example.com")
}

func (Auth) GetAdminPasswordHash() string {
	return GetEnv("ADMIN_PASSWORD_HASH", "")
}

func (Auth) GetUserEmail() string {
	return GetEnv("USER_EMAIL", "user@example.com")
}

func (Auth) GetUserPasswordHash() string {
	return GetEnv("USER_PASSWORD_HASH", "")
}
