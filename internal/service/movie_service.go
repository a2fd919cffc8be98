package service

import (
	"context"
	"unicode/utf8"

	"watchlist/internal/domain"
	"watchlist/internal/repository"
)

const (
	maxTitleLen = 60
	maxYearLen  = 4
)

// MovieService coordinates watchlist entry operations backed by the
// movie repository. All writes validate first; an invalid submission
// never reaches the store.
type MovieService interface {
	Create(ctx context.Context, title, year string) (*domain.Movie, error)
	Get(ctx context.Context, id int64) (*domain.Movie, error)
	Update(ctx context.Context, id int64, title, year string) (*domain.Movie, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Movie, error)
}

type movieService struct {
	movies repository.MovieRepository
}

func NewMovieService(movies repository.MovieRepository) MovieService {
	return &movieService{movies: movies}
}

func (s *movieService) Create(ctx context.Context, title, year string) (*domain.Movie, error) {
	if err := validateMovie(title, year); err != nil {
		return nil, err
	}

	movie := &domain.Movie{Title: title, Year: year}
	if _, err := s.movies.Create(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

func (s *movieService) Get(ctx context.Context, id int64) (*domain.Movie, error) {
	return s.movies.Get(ctx, id)
}

func (s *movieService) Update(ctx context.Context, id int64, title, year string) (*domain.Movie, error) {
	if err := validateMovie(title, year); err != nil {
		return nil, err
	}

	movie, err := s.movies.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	movie.Title = title
	movie.Year = year
	if err := s.movies.Update(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

func (s *movieService) Delete(ctx context.Context, id int64) error {
	return s.movies.Delete(ctx, id)
}

func (s *movieService) List(ctx context.Context) ([]domain.Movie, error) {
	return s.movies.List(ctx)
}

// Length limits count runes, not bytes: titles are routinely CJK text.
func validateMovie(title, year string) error {
	if title == "" || year == "" {
		return ErrInvalidInput
	}
	if utf8.RuneCountInString(title) > maxTitleLen || utf8.RuneCountInString(year) > maxYearLen {
		return ErrInvalidInput
	}
	return nil
}
