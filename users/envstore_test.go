package users_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jthorne/go-travel-site/internal/config"
	errs "github.com/jthorne/go-travel-site/internal/errors"
	"github.com/jthorne/go-travel-site/users"
)

func TestEnvStore_DevelopmentFallback(t *testing.T) {
	t.Setenv("ENV", "DEV")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("USER_PASSWORD_HASH", "")

	store := users.NewEnvStore(config.New())

	cred, err := store.FindByEmail("admin@example.com")
	require.NoError(t, err)
	require.Equal(t, users.RoleAdmin, cred.Role)
	require.True(t, users.CheckPasswordHash("password", cred.PasswordHash))

	cred, err = store.FindByEmail("user@example.com")
	require.NoError(t, err)
	require.Equal(t, users.RoleUser, cred.Role)
}

func TestEnvStore_NoFallbackInProduction(t *testing.T) {
	t.Setenv("ENV", "PROD")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("USER_PASSWORD_HASH", "")

	store := users.NewEnvStore(config.New())

	_, err := store.FindByEmail("admin@example.com")
	require.ErrorIs(t, err, errs.ErrUserNotFound)

	list, err := store.List()
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestEnvStore_ConfiguredHashes(t *testing.T) {
	hash, err := users.HashPassword("s3cret-Admin1")
	require.NoError(t, err)

	t.Setenv("ENV", "PROD")
	t.Setenv("ADMIN_EMAIL", "Boss@Example.com")
	t.Setenv("ADMIN_PASSWORD_HASH", hash)
	t.Setenv("USER_PASSWORD_HASH", "")

	store := users.NewEnvStore(config.New())

	// Email matching is case-insensitive
	cred, err := store.FindByEmail("boss@example.COM")
	require.NoError(t, err)
	require.Equal(t, "boss@example.com", cred.Email)
	require.NotEmpty(t, cred.ID)
	require.True(t, users.CheckPasswordHash("s3cret-Admin1", cred.PasswordHash))

	// The user identity had no hash configured, so it must not exist
	_, err = store.FindByEmail("user@example.com")
	require.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestCheckPasswordHash_Mismatch(t *testing.T) {
	hash, err := users.HashPassword("correct-password")
	require.NoError(t, err)
	require.False(t, users.CheckPasswordHash("wrong-password", hash))
}
