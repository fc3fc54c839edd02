package config

import "time"

type SecurityConfig interface {
	GetMaxLoginAttempts() int
	GetLoginWindow() time.Duration
	GetThrottleRPS() float64
	GetThrottleBurst() int
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetMaxLoginAttempts() int {
	return 5
}

// GetLoginWindow is the fixed window for counting failed login attempts.
func (Security) GetLoginWindow() time.Duration {
	return 15 * time.Minute
}

func (Security) GetThrottleRPS() float64 {
	return 20
}

func (Security) GetThrottleBurst() int {
	return 40
}
