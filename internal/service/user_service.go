package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"watchlist/internal/domain"
	"watchlist/internal/repository"
)

const (
	maxNameLen = 20

	// defaultOwnerName is used when provisioning creates the account
	// before the owner has picked a display name in settings.
	defaultOwnerName = "Whxcer"
)

// UserService covers the owner account: login, personalization and
// the display-name settings update. Provision is the administrative
// create-or-update entry point used by cmd/admin.
type UserService interface {
	Login(ctx context.Context, username, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Owner(ctx context.Context) (*domain.User, error)
	UpdateName(ctx context.Context, id int64, name string) error
	Provision(ctx context.Context, username, password string) (*domain.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// Login authenticates against the sole owner row. The username match is
// exact and case-sensitive; the password verifies against the bcrypt hash.
func (s *userService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.users.First(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if username != user.Username {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// Owner returns the single user row for template personalization, or
// repository.ErrNotFound before provisioning has run.
func (s *userService) Owner(ctx context.Context) (*domain.User, error) {
	user, err := s.users.First(ctx)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) UpdateName(ctx context.Context, id int64, name string) error {
	if name == "" || utf8.RuneCountInString(name) > maxNameLen {
		return ErrInvalidInput
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.Name = name
	return s.users.Update(ctx, user)
}

// Provision creates the owner account, or updates the credentials of the
// existing one. The single-row invariant lives here: there is no path
// that inserts a second user.
func (s *userService) Provision(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || utf8.RuneCountInString(username) > maxNameLen {
		return nil, ErrInvalidInput
	}
	if password == "" {
		return nil, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.First(ctx)
	switch {
	case err == nil:
		user.Username = username
		user.PasswordHash = string(hash)
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
	case errors.Is(err, repository.ErrNotFound):
		user = &domain.User{
			Name:         defaultOwnerName,
			Username:     username,
			PasswordHash: string(hash),
		}
		if _, err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
