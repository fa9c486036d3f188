package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/mithai/app/models"
	"github.com/shashiranjanraj/mithai/app/repositories"
	"github.com/shashiranjanraj/mithai/app/services"
	"github.com/shashiranjanraj/mithai/pkg/auth"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	require.NoError(t, svc.Register("alice", "pw"))

	token, err := svc.Login("alice", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	require.NoError(t, svc.Register("alice", "pw"))

	err := svc.Register("alice", "other-pw")
	assert.ErrorIs(t, err, services.ErrDuplicateUsername)
}

func TestUsernamesAreCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	require.NoError(t, svc.Register("alice", "pw"))
	require.NoError(t, svc.Register("Alice", "pw"))

	_, err := svc.Login("alice", "pw")
	assert.NoError(t, err)
}

// Unknown username and wrong password must be indistinguishable.
func TestLoginFailuresShareOneError(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	require.NoError(t, svc.Register("alice", "pw"))

	_, wrongPw := svc.Login("alice", "not-pw")
	_, noUser := svc.Login("bob", "pw")

	assert.ErrorIs(t, wrongPw, services.ErrInvalidCredentials)
	assert.ErrorIs(t, noUser, services.ErrInvalidCredentials)
	assert.Equal(t, wrongPw, noUser)
}

func TestResolveIdentity(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	require.NoError(t, svc.Register("alice", "pw"))
	token, err := svc.Login("alice", "pw")
	require.NoError(t, err)

	user, err := svc.ResolveIdentity(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotZero(t, user.ID)
}

func TestResolveIdentityBadToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	_, err := svc.ResolveIdentity("not-a-token")
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
}

func TestResolveIdentityForeignToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	require.NoError(t, svc.Register("alice", "pw"))

	// Same subject, signed with a different secret.
	foreign, err := auth.NewTokenService("another-secret", 30*time.Minute).Issue("alice")
	require.NoError(t, err)

	_, err = svc.ResolveIdentity(foreign)
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
}

func TestResolveIdentityDeletedSubject(t *testing.T) {
	db := newTestDB(t)
	tokens := auth.NewTokenService("service-test-secret", 30*time.Minute)
	svc := newAuthService(t, db)

	require.NoError(t, svc.Register("ghost", "pw"))
	token, err := tokens.Issue("ghost")
	require.NoError(t, err)

	require.NoError(t, db.Where("username = ?", "ghost").Delete(&models.User{}).Error)

	_, err = svc.ResolveIdentity(token)
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
}

func TestPasswordStoredHashed(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	require.NoError(t, svc.Register("alice", "pw"))

	user, err := repositories.NewUserRepository(db).FindByUsername("alice")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", user.PasswordHash)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$2"), "expected a bcrypt hash, got %q", user.PasswordHash)
}
