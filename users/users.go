package users

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// RoleType represents a user role
type RoleType string

const (
	RoleAdmin RoleType = "admin" // Can manage packages, testimonials, and users
	RoleUser  RoleType = "user"  // Regular site account
)

// Credential is a login identity. Credentials are derived from configuration
// at process start and never mutated by request handling.
type Credential struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"` // Hashed version of the password - never serialize
	Role         RoleType `json:"role"`
	DisplayName  string   `json:"displayName"`
}

// IsAdmin returns true if the credential carries the admin role
func (c *Credential) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// NormalizeEmail lowercases and trims an email for case-insensitive matching
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
