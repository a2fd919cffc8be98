package domain

import "time"

// Movie is a single watchlist entry. Year is kept as text because the
// original data carries it that way ("1997", "2020").
type Movie struct {
	ID        int64
	Title     string
	Year      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
