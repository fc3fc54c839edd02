package auth

import (
	"regexp"
	"strings"

	errs "github.com/jthorne/go-travel-site/internal/errors"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateLoginInput rejects missing fields and malformed email addresses
// before any credential lookup happens.
func ValidateLoginInput(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return errs.ErrInvalidInput
	}
	if !emailRegexp.MatchString(email) {
		return errs.ErrInvalidEmail
	}
	return nil
}
