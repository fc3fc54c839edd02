package users

type Repo interface {
	// FindByEmail resolves a credential by email, matched case-insensitively.
	// Returns errors.ErrUserNotFound on a miss.
	FindByEmail(email string) (*Credential, error)

	// List returns all credentials, for the admin users screen.
	List() ([]*Credential, error)
}
