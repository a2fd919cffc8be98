package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"watchlist/internal/domain"
	"watchlist/internal/repository"
)

const createMoviesTable = `
CREATE TABLE IF NOT EXISTS movies (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	year TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type MovieRepository struct {
	db *sql.DB
}

func NewMovieRepository(db *sql.DB) repository.MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createMoviesTable); err != nil {
		return fmt.Errorf("create movies table: %w", err)
	}
	return nil
}

func (r *MovieRepository) Create(ctx context.Context, movie *domain.Movie) (int64, error) {
	now := time.Now().UTC()
	movie.CreatedAt = now
	movie.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO movies (title, year, created_at, updated_at)
VALUES (?, ?, ?, ?)`,
		movie.Title,
		movie.Year,
		movie.CreatedAt,
		movie.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert movie: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("movie last insert id: %w", err)
	}
	movie.ID = id
	return id, nil
}

func (r *MovieRepository) Get(ctx context.Context, id int64) (*domain.Movie, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, year, created_at, updated_at
FROM movies
WHERE id = ?`,
		id,
	)
	return scanMovie(row)
}

func (r *MovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	movie.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE movies
SET title = ?, year = ?, updated_at = ?
WHERE id = ?`,
		movie.Title,
		movie.Year,
		movie.UpdatedAt,
		movie.ID,
	)
	if err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("movie rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("movie rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MovieRepository) List(ctx context.Context) ([]domain.Movie, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, year, created_at, updated_at
FROM movies
ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	var movies []domain.Movie
	for rows.Next() {
		var movie domain.Movie
		if err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Year,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return movies, nil
}

func scanMovie(row interface {
	Scan(dest ...any) error
}) (*domain.Movie, error) {
	var movie domain.Movie
	if err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Year,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan movie: %w", err)
	}
	return &movie, nil
}
