package users

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jthorne/go-travel-site/internal/config"
	errs "github.com/jthorne/go-travel-site/internal/errors"
)

// defaultPasswordHash is the bcrypt hash of "password", used only for the
// development fallback identities.
const defaultPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

var _ Repo = (*EnvStore)(nil)

// EnvStore derives the set of valid login identities from environment
// configuration. The set is built once at construction and is read-only
// afterwards, so lookups need no locking.
type EnvStore struct {
	byEmail map[string]*Credential
	ordered []*Credential
}

// NewEnvStore builds the credential set from cfg. Outside production, if no
// password hashes are configured at all, a default admin/user pair with a
// fixed known password is synthesized so the site is usable out of the box.
// In production an unconfigured store stays empty and every login fails.
func NewEnvStore(cfg config.Config) *EnvStore {
	s := &EnvStore{byEmail: make(map[string]*Credential)}

	s.addIfConfigured(cfg.GetAdminEmail(), cfg.GetAdminPasswordHash(), RoleAdmin, "Site Admin")
	s.addIfConfigured(cfg.GetUserEmail(), cfg.GetUserPasswordHash(), RoleUser, "Site User")

	if len(s.ordered) == 0 && !cfg.IsProduction() {
		log.Warn().Msg("no credential hashes configured; using development fallback identities (password: \"password\")")
		s.add(&Credential{Email: cfg.GetAdminEmail(), PasswordHash: defaultPasswordHash, Role: RoleAdmin, DisplayName: "Site Admin"})
		s.add(&Credential{Email: cfg.GetUserEmail(), PasswordHash: defaultPasswordHash, Role: RoleUser, DisplayName: "Site User"})
	}

	return s
}

func (s *EnvStore) addIfConfigured(email, hash string, role RoleType, displayName string) {
	if email == "" || hash == "" {
		return
	}
	s.add(&Credential{Email: email, PasswordHash: hash, Role: role, DisplayName: displayName})
}

func (s *EnvStore) add(c *Credential) {
	c.ID = uuid.New().String()
	c.Email = NormalizeEmail(c.Email)
	s.byEmail[c.Email] = c
	s.ordered = append(s.ordered, c)
}

func (s *EnvStore) FindByEmail(email string) (*Credential, error) {
	c, ok := s.byEmail[NormalizeEmail(email)]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return c, nil
}

func (s *EnvStore) List() ([]*Credential, error) {
	out := make([]*Credential, len(s.ordered))
	copy(out, s.ordered)
	return out, nil
}
