// Package services holds the core business logic: account registration and
// login, token-to-identity resolution, and catalogue/stock operations.
package services

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/mithai/app/models"
	"github.com/shashiranjanraj/mithai/app/repositories"
	"github.com/shashiranjanraj/mithai/pkg/auth"
	"gorm.io/gorm"
)

// AuthService orchestrates registration, login and identity resolution.
// All collaborators are injected so tests can run against an isolated
// database and a per-test signing secret.
type AuthService struct {
	users  *repositories.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

func NewAuthService(users *repositories.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a new account. Returns ErrDuplicateUsername when the
// username is taken. Registration does not log the user in.
func (s *AuthService) Register(username, password string) error {
	if _, err := s.users.FindByUsername(username); err == nil {
		return ErrDuplicateUsername
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("auth: look up username: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}

	user := models.User{Username: username, PasswordHash: hash}
	if err := s.users.Create(&user); err != nil {
		// The unique index backstops the check above under concurrent
		// registration of the same name.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("auth: create user: %w", err)
	}

	return nil
}

// Login verifies the credentials and returns a signed session token.
// Unknown username and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(username, password string) (string, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("auth: look up username: %w", err)
	}

	if !s.hasher.Check(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("auth: issue token: %w", err)
	}
	return token, nil
}

// ResolveIdentity validates a bearer token and loads the user it names.
// Every failure, bad token or a subject that no longer exists, comes back
// as ErrUnauthenticated.
func (s *AuthService) ResolveIdentity(token string) (models.User, error) {
	subject, err := s.tokens.Validate(token)
	if err != nil {
		return models.User{}, ErrUnauthenticated
	}

	user, err := s.users.FindByUsername(subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUnauthenticated
		}
		return models.User{}, fmt.Errorf("auth: look up subject: %w", err)
	}

	return user, nil
}
