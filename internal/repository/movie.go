package repository

import (
	"context"

	"watchlist/internal/domain"
)

// MovieRepository exposes persistence operations for watchlist entries.
type MovieRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, movie *domain.Movie) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Movie, error)
	Update(ctx context.Context, movie *domain.Movie) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Movie, error)
}

// MessageRepository manages guestbook posts. List returns newest first.
type MessageRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, message *domain.Message) (int64, error)
	List(ctx context.Context) ([]domain.Message, error)
}
