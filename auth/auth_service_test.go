package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jthorne/go-travel-site/auth"
	"github.com/jthorne/go-travel-site/internal/config"
	errs "github.com/jthorne/go-travel-site/internal/errors"
	"github.com/jthorne/go-travel-site/ratelimit"
	"github.com/jthorne/go-travel-site/token"
	"github.com/jthorne/go-travel-site/users"
	fakeuserrepo "github.com/jthorne/go-travel-site/users/repofake"
)

const (
	testUserEmail    = "john.doe@example.com"
	testUserPassword = "password123"
	testClientKey    = "203.0.113.7"
	maxAttempts      = 5
	loginWindow      = 15 * time.Minute
)

// testFixture holds all test dependencies
type testFixture struct {
	userRepo *fakeuserrepo.FakeUserRepo
	attempts *ratelimit.MemoryStore
	tokens   *token.Manager
	service  *auth.Service
	now      time.Time
}

// setupTestFixture creates a new test fixture with all dependencies
func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	t.Setenv("ENV", "DEV")
	t.Setenv("SESSION_SECRET", "fixture-secret")

	f := &testFixture{
		userRepo: fakeuserrepo.NewFakeUserRepo(),
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.attempts = ratelimit.NewMemoryStore(maxAttempts, loginWindow,
		ratelimit.WithNow(func() time.Time { return f.now }))

	tokens, err := token.NewManager(config.New(),
		token.WithNowTime(func() time.Time { return f.now }))
	require.NoError(t, err)
	f.tokens = tokens

	service, err := auth.NewService(f.userRepo, f.attempts, tokens)
	require.NoError(t, err)
	f.service = service

	return f
}

// createTestUser hashes the password and stores a credential
func (f *testFixture) createTestUser(t *testing.T, email, password string, role users.RoleType) {
	t.Helper()

	passwordHash, err := users.HashPassword(password)
	require.NoError(t, err)
	f.userRepo.Add(&users.Credential{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		DisplayName:  "Test User",
	})
}

func TestLogin_ThenVerifyResolvesSameIdentity(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, users.RoleAdmin)
	ctx := context.Background()

	tok, cred, err := f.service.Login(ctx, testUserEmail, testUserPassword, testClientKey)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	id, err := f.service.Verify(ctx, tok)
	require.NoError(t, err)
	require.Equal(t, cred.ID, id.UserID)
	require.Equal(t, cred.Email, id.Email)
	require.Equal(t, cred.Role, id.Role)
}

func TestLogin_CaseInsensitiveEmail(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, users.RoleUser)

	_, cred, err := f.service.Login(context.Background(), "John.Doe@Example.COM", testUserPassword, testClientKey)
	require.NoError(t, err)
	require.Equal(t, testUserEmail, cred.Email)
}

func TestLogin_GenericErrorForUnknownUserAndBadPassword(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, users.RoleUser)
	ctx := context.Background()

	_, _, errUnknown := f.service.Login(ctx, "nobody@example.com", "whatever1", testClientKey)
	require.ErrorIs(t, errUnknown, errs.ErrInvalidCredentials)

	_, _, errBadPass := f.service.Login(ctx, testUserEmail, "wrong-password", testClientKey)
	require.ErrorIs(t, errBadPass, errs.ErrInvalidCredentials)

	// Same message either way: never reveal which field was wrong.
	require.Equal(t, errUnknown.Error(), errBadPass.Error())
}

func TestLogin_RejectedAfterMaxAttempts(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, users.RoleUser)
	ctx := context.Background()

	for i := 0; i < maxAttempts; i++ {
		_, _, err := f.service.Login(ctx, testUserEmail, "wrong-password", testClientKey)
		require.ErrorIs(t, err, errs.ErrInvalidCredentials)
	}

	// The 6th attempt is rejected even with correct credentials.
	_, _, err := f.service.Login(ctx, testUserEmail, testUserPassword, testClientKey)
	require.ErrorIs(t, err, errs.ErrTooManyAttempts)

	var tooMany *auth.TooManyAttemptsError
	require.ErrorAs(t, err, &tooMany)
	require.Greater(t, tooMany.RetryAfter, time.Duration(0))
}

func TestLogin_SuccessResetsAttemptCount(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, users.RoleUser)
	ctx := context.Background()

	for i := 0; i < maxAttempts-1; i++ {
		_, _, err := f.service.Login(ctx, testUserEmail, "wrong-password", testClientKey)
		require.ErrorIs(t, err, errs.ErrInvalidCredentials)
	}

	_, _, err := f.service.Login(ctx, testUserEmail, testUserPassword, testClientKey)
	require.NoError(t, err)

	// A fresh window: the next failure counts as 1, not 6.
	for i := 0; i < maxAttempts-1; i++ {
		_, _, err := f.service.Login(ctx, testUserEmail, "wrong-password", testClientKey)
		require.ErrorIs(t, err, errs.ErrInvalidCredentials)
	}
	_, _, err = f.service.Login(ctx, testUserEmail, testUserPassword, testClientKey)
	require.NoError(t, err)
}

func TestLogin_AttemptsAllowedAgainAfterWindow(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, users.RoleUser)
	ctx := context.Background()

	for i := 0; i < maxAttempts; i++ {
		_, _, _ = f.service.Login(ctx, testUserEmail, "wrong-password", testClientKey)
	}
	_, _, err := f.service.Login(ctx, testUserEmail, testUserPassword, testClientKey)
	require.ErrorIs(t, err, errs.ErrTooManyAttempts)

	f.now = f.now.Add(loginWindow + time.Second)

	_, _, err = f.service.Login(ctx, testUserEmail, testUserPassword, testClientKey)
	require.NoError(t, err)
}

func TestLogin_DevelopmentFallbackIdentities(t *testing.T) {
	t.Setenv("ENV", "DEV")
	t.Setenv("SESSION_SECRET", "fixture-secret")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("USER_PASSWORD_HASH", "")
	cfg := config.New()

	tokens, err := token.NewManager(cfg)
	require.NoError(t, err)
	service, err := auth.NewService(users.NewEnvStore(cfg), ratelimit.NewMemoryStore(maxAttempts, loginWindow), tokens)
	require.NoError(t, err)

	_, cred, err := service.Login(context.Background(), "admin@example.com", "password", testClientKey)
	require.NoError(t, err)
	require.Equal(t, users.RoleAdmin, cred.Role)
}

func TestLogin_NoFallbackInProduction(t *testing.T) {
	t.Setenv("ENV", "PROD")
	t.Setenv("SESSION_SECRET", "fixture-secret")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("USER_PASSWORD_HASH", "")
	cfg := config.New()

	tokens, err := token.NewManager(cfg)
	require.NoError(t, err)
	service, err := auth.NewService(users.NewEnvStore(cfg), ratelimit.NewMemoryStore(maxAttempts, loginWindow), tokens)
	require.NoError(t, err)

	_, _, err = service.Login(context.Background(), "admin@example.com", "password", testClientKey)
	require.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestVerify_RejectsTamperedToken(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, users.RoleUser)
	ctx := context.Background()

	tok, _, err := f.service.Login(ctx, testUserEmail, testUserPassword, testClientKey)
	require.NoError(t, err)

	_, err = f.service.Verify(ctx, tok+"tampered")
	require.ErrorIs(t, err, errs.ErrInvalidSession)
}
