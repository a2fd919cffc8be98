package service

import (
	"context"
	"unicode/utf8"

	"watchlist/internal/domain"
	"watchlist/internal/repository"
)

const maxMessageLen = 200

// GuestbookService accepts posts from any visitor and lists them
// newest first. Posts are never edited or deleted.
type GuestbookService interface {
	Post(ctx context.Context, name, body string) (*domain.Message, error)
	List(ctx context.Context) ([]domain.Message, error)
}

type guestbookService struct {
	messages repository.MessageRepository
}

func NewGuestbookService(messages repository.MessageRepository) GuestbookService {
	return &guestbookService{messages: messages}
}

func (s *guestbookService) Post(ctx context.Context, name, body string) (*domain.Message, error) {
	if name == "" || body == "" {
		return nil, ErrInvalidInput
	}
	if utf8.RuneCountInString(name) > maxNameLen || utf8.RuneCountInString(body) > maxMessageLen {
		return nil, ErrInvalidInput
	}

	message := &domain.Message{Name: name, Body: body}
	if _, err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *guestbookService) List(ctx context.Context) ([]domain.Message, error) {
	return s.messages.List(ctx)
}
