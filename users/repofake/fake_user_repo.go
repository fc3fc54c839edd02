package repofake

import (
	"sync"

	"github.com/google/uuid"

	errs "github.com/jthorne/go-travel-site/internal/errors"
	"github.com/jthorne/go-travel-site/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

// FakeUserRepo is a mutable in-memory credential store for tests.
type FakeUserRepo struct {
	lock    sync.RWMutex
	byEmail map[string]*users.Credential
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{byEmail: make(map[string]*users.Credential)}
}

// Add stores the credential, assigning an ID when missing.
func (r *FakeUserRepo) Add(c *users.Credential) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	r.byEmail[users.NormalizeEmail(c.Email)] = c
}

func (r *FakeUserRepo) FindByEmail(email string) (*users.Credential, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	c, ok := r.byEmail[users.NormalizeEmail(email)]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return c, nil
}

func (r *FakeUserRepo) List() ([]*users.Credential, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := make([]*users.Credential, 0, len(r.byEmail))
	for _, c := range r.byEmail {
		out = append(out, c)
	}
	return out, nil
}
