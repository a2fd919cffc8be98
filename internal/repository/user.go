package repository

import (
	"context"

	"watchlist/internal/domain"
)

// UserRepository defines persistence operations for the owner account.
// The application never holds more than one user row; First fetches it.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	First(ctx context.Context) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
