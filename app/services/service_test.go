package services_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/mithai/app/models"
	"github.com/shashiranjanraj/mithai/app/repositories"
	"github.com/shashiranjanraj/mithai/app/services"
	"github.com/shashiranjanraj/mithai/pkg/auth"
	"github.com/shashiranjanraj/mithai/pkg/database"
)

// newTestDB opens a throwaway file-backed sqlite database. File-backed so
// the pooled connections all see the same store, which the concurrency
// tests rely on.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// _txlock=immediate makes write transactions take the write lock up
	// front, so the concurrent purchase tests serialise instead of
	// deadlocking inside sqlite.
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_txlock=immediate"
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Sweet{}))
	return db
}

func newAuthService(t *testing.T, db *gorm.DB) *services.AuthService {
	t.Helper()

	return services.NewAuthService(
		repositories.NewUserRepository(db),
		auth.NewPasswordHasher(bcrypt.MinCost),
		auth.NewTokenService("service-test-secret", 30*time.Minute),
	)
}

func newSweetService(t *testing.T, db *gorm.DB) *services.SweetService {
	t.Helper()
	return services.NewSweetService(repositories.NewSweetRepository(db))
}
