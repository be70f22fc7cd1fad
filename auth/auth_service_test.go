package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-blog-server/auth"
	apperrors "github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/users"
	fakeuserrepo "github.com/jrsteele09/go-blog-server/users/repofake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	secretStr        = "test-signing-secret"
	testUserEmail    = "john.doe@example.com"
	testUserPassword = "password123"
)

// testFixture holds all test dependencies. now is mutable so tests can move
// the clock the service sees.
type testFixture struct {
	userRepo *fakeuserrepo.FakeUserRepo
	service  *auth.Service
	now      time.Time
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		userRepo: fakeuserrepo.NewFakeUserRepo(),
		now:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	service, err := auth.NewService(f.userRepo, []byte(secretStr),
		auth.WithNowTime(func() time.Time { return f.now }),
	)
	require.NoError(t, err)
	f.service = service
	return f
}

// createTestUser creates and stores a test user with the default password.
func (f *testFixture) createTestUser(t *testing.T, username, email string) *users.User {
	t.Helper()

	hash, err := users.HashPassword(testUserPassword, bcrypt.MinCost)
	require.NoError(t, err)

	user := &users.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	require.NoError(t, f.userRepo.Create(context.Background(), user))
	return user
}

func (f *testFixture) reload(t *testing.T, id string) *users.User {
	t.Helper()
	user, err := f.userRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return user
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := auth.NewService(nil, []byte(secretStr))
	require.Error(t, err)

	_, err = auth.NewService(fakeuserrepo.NewFakeUserRepo(), nil)
	require.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, "johndoe", testUserEmail)

	user, err := f.service.Authenticate(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)
	assert.Equal(t, "johndoe", user.Username)

	// Wrong password and unknown account are indistinguishable.
	_, err = f.service.Authenticate(context.Background(), testUserEmail, "wrong-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.service.Authenticate(context.Background(), "nobody@example.com", testUserPassword)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthenticateNormalizesEmail(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, "johndoe", testUserEmail)

	_, err := f.service.Authenticate(context.Background(), " John.Doe@Example.COM ", testUserPassword)
	require.NoError(t, err)
}

func TestIssueAndValidateToken(t *testing.T) {
	f := setupTestFixture(t)
	user := f.createTestUser(t, "johndoe", testUserEmail)

	raw, err := f.service.IssueToken(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	validated, err := f.service.ValidateToken(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, user.ID, validated.ID)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.ValidateToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	f := setupTestFixture(t)
	user := f.createTestUser(t, "johndoe", testUserEmail)

	raw, err := f.service.IssueToken(context.Background(), user)
	require.NoError(t, err)

	f.now = f.now.Add(2 * time.Hour)

	_, err = f.service.ValidateToken(context.Background(), raw)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestValidateTokenRejectsRevoked(t *testing.T) {
	f := setupTestFixture(t)
	user := f.createTestUser(t, "johndoe", testUserEmail)

	first, err := f.service.IssueToken(context.Background(), user)
	require.NoError(t, err)
	second, err := f.service.IssueToken(context.Background(), user)
	require.NoError(t, err)

	// Revoking one session leaves the other live.
	require.NoError(t, f.service.RevokeToken(context.Background(), user, first))

	_, err = f.service.ValidateToken(context.Background(), first)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	validated, err := f.service.ValidateToken(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, user.ID, validated.ID)
}

func TestRevokeAll(t *testing.T) {
	f := setupTestFixture(t)
	user := f.createTestUser(t, "johndoe", testUserEmail)

	first, err := f.service.IssueToken(context.Background(), user)
	require.NoError(t, err)
	second, err := f.service.IssueToken(context.Background(), user)
	require.NoError(t, err)

	require.NoError(t, f.service.RevokeAll(context.Background(), user))

	for _, raw := range []string{first, second} {
		_, err = f.service.ValidateToken(context.Background(), raw)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}
	assert.Empty(t, f.reload(t, user.ID).Tokens)

	// A fresh session can still be issued afterwards.
	fresh, err := f.service.IssueToken(context.Background(), user)
	require.NoError(t, err)
	_, err = f.service.ValidateToken(context.Background(), fresh)
	require.NoError(t, err)
}

func TestValidateTokenRejectsDeletedAccount(t *testing.T) {
	f := setupTestFixture(t)
	user := f.createTestUser(t, "johndoe", testUserEmail)

	raw, err := f.service.IssueToken(context.Background(), user)
	require.NoError(t, err)

	require.NoError(t, f.userRepo.Delete(context.Background(), user.ID))

	_, err = f.service.ValidateToken(context.Background(), raw)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	f := setupTestFixture(t)
	user := f.createTestUser(t, "johndoe", testUserEmail)

	otherService, err := auth.NewService(f.userRepo, []byte("a-different-secret"),
		auth.WithNowTime(func() time.Time { return f.now }),
	)
	require.NoError(t, err)

	raw, err := otherService.IssueToken(context.Background(), user)
	require.NoError(t, err)

	_, err = f.service.ValidateToken(context.Background(), raw)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
