package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"watchlist/internal/domain"
	"watchlist/internal/repository"
)

const createMessagesTable = `
CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	body TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
`

type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) repository.MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createMessagesTable); err != nil {
		return fmt.Errorf("create messages table: %w", err)
	}
	return nil
}

func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) (int64, error) {
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO messages (name, body, created_at)
VALUES (?, ?, ?)`,
		message.Name,
		message.Body,
		message.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("message last insert id: %w", err)
	}
	message.ID = id
	return id, nil
}

// List returns messages newest first. The id tiebreak keeps same-second
// posts in reverse insertion order.
func (r *MessageRepository) List(ctx context.Context) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, body, created_at
FROM messages
ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var message domain.Message
		if err := rows.Scan(
			&message.ID,
			&message.Name,
			&message.Body,
			&message.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return messages, nil
}
