package domain

import "time"

// Message is a guestbook post left by a visitor. Messages are append
// only: they are never edited or removed by the application.
type Message struct {
	ID        int64
	Name      string
	Body      string
	CreatedAt time.Time
}
