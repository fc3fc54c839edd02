// Package token issues and verifies the signed, time-boxed session tokens
// carried in the auth cookie.
package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/jthorne/go-travel-site/internal/config"
	errs "github.com/jthorne/go-travel-site/internal/errors"
	"github.com/jthorne/go-travel-site/users"
)

// developmentSecret signs tokens when no secret is configured outside
// production. Startup validation rejects that combination in production.
const developmentSecret = "travel-site-dev-secret"

// Claims are the session token claims. Identity is resolved from these
// claims alone on verification, with no credential-store round-trip, so a
// credential removed after issuance stays valid until the token expires.
type Claims struct {
	jwtlib.RegisteredClaims
	UserID string         `json:"uid"`
	Email  string         `json:"email"`
	Role   users.RoleType `json:"role"`
}

// Identity is the resolved subject of a verified session token.
type Identity struct {
	UserID string         `json:"id"`
	Email  string         `json:"email"`
	Role   users.RoleType `json:"role"`
}

// Manager signs and verifies session tokens with a single HS256 secret.
type Manager struct {
	secret   []byte
	validity time.Duration
	nowTime  func() time.Time
}

type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// NewManager builds a Manager from configuration. Outside production an
// unset signing secret falls back to a fixed development secret with a
// logged warning.
func NewManager(cfg config.Config, options ...ManagerOption) (*Manager, error) {
	secret := cfg.GetSigningSecret()
	if secret == "" {
		if cfg.IsProduction() {
			return nil, errs.ErrMissingSigningSecret
		}
		log.Warn().Msg("SESSION_SECRET not set; using development signing secret")
		secret = developmentSecret
	}

	m := &Manager{
		secret:   []byte(secret),
		validity: cfg.GetTokenValidity(),
		nowTime:  time.Now,
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Issue signs a session token for the credential, valid from now for the
// configured validity period.
func (m *Manager) Issue(cred *users.Credential) (string, error) {
	now := m.nowTime()
	claims := Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   cred.ID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(m.validity)),
		},
		UserID: cred.ID,
		Email:  cred.Email,
		Role:   cred.Role,
	}

	tokenString, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", errs.Wrapf(err, "failed to sign session token")
	}
	return tokenString, nil
}

// Verify validates signature and expiry and resolves the identity from the
// claims. Signature and expiry failures are deliberately indistinguishable
// to the caller.
func (m *Manager) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}
	tok, err := jwtlib.ParseWithClaims(tokenString, claims,
		func(t *jwtlib.Token) (interface{}, error) { return m.secret, nil },
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(func() time.Time { return m.nowTime() }),
	)
	if err != nil || !tok.Valid {
		return nil, errs.ErrInvalidSession
	}

	return &Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}
