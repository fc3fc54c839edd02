// Package auth implements the login/session flow: credential verification
// behind a rate-limit gate, session token issuance, and token verification.
package auth

import (
	"context"

	"github.com/pkg/errors"

	errs "github.com/jthorne/go-travel-site/internal/errors"
	"github.com/jthorne/go-travel-site/ratelimit"
	"github.com/jthorne/go-travel-site/token"
	"github.com/jthorne/go-travel-site/users"
)

// Service verifies submitted credentials and issues session tokens. Its
// dependencies are injected so the attempt store can be swapped for a
// distributed one under horizontal scaling.
type Service struct {
	users    users.Repo
	attempts ratelimit.Store
	tokens   *token.Manager
}

// NewService initializes a new Service with required dependencies.
func NewService(userRepo users.Repo, attempts ratelimit.Store, tokens *token.Manager) (*Service, error) {
	if userRepo == nil {
		return nil, errors.New("[NewService] users repo is required")
	}
	if attempts == nil {
		return nil, errors.New("[NewService] attempt store is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewService] token manager is required")
	}

	return &Service{
		users:    userRepo,
		attempts: attempts,
		tokens:   tokens,
	}, nil
}

// Login verifies email/password for the client identified by clientKey and
// returns a signed session token on success. User-not-found and bad-password
// both yield ErrInvalidCredentials so the caller cannot tell which field was
// wrong. Every attempt counts against the client's rate-limit window; a
// successful login resets it.
func (s *Service) Login(ctx context.Context, email, password, clientKey string) (string, *users.Credential, error) {
	if err := ValidateLoginInput(email, password); err != nil {
		return "", nil, err
	}

	dec, err := s.attempts.CheckAndRecord(ctx, clientKey)
	if err != nil {
		return "", nil, errors.Wrap(err, "[Service.Login] attempts.CheckAndRecord")
	}
	if !dec.Allowed {
		return "", nil, &TooManyAttemptsError{RetryAfter: dec.RetryAfter}
	}

	cred, err := s.users.FindByEmail(email)
	if err != nil {
		if errs.Is(err, errs.ErrUserNotFound) {
			return "", nil, errs.ErrInvalidCredentials
		}
		return "", nil, errors.Wrap(err, "[Service.Login] users.FindByEmail")
	}

	if !users.CheckPasswordHash(password, cred.PasswordHash) {
		return "", nil, errs.ErrInvalidCredentials
	}

	if err := s.attempts.Reset(ctx, clientKey); err != nil {
		return "", nil, errors.Wrap(err, "[Service.Login] attempts.Reset")
	}

	tok, err := s.tokens.Issue(cred)
	if err != nil {
		return "", nil, errors.Wrap(err, "[Service.Login] tokens.Issue")
	}

	return tok, cred, nil
}

// Verify resolves a session token back to an identity. Signature and expiry
// failures are indistinguishable to the caller.
func (s *Service) Verify(_ context.Context, tokenString string) (*token.Identity, error) {
	return s.tokens.Verify(tokenString)
}
