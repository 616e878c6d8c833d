package database

import (
	"context"
	"errors"
	"kasjer/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const messageColumns = `id::text, user_id, username, title, content, message_type, is_read, sent_at, read_at`

func scanMessage(row pgx.Row) (*models.Message, error) {
	var m models.Message
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Username,
		&m.Title,
		&m.Content,
		&m.MessageType,
		&m.IsRead,
		&m.SentAt,
		&m.ReadAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

type CreateMessageParams struct {
	UserID      string
	Username    string
	Title       string
	Content     string
	MessageType string
}

func (q *Queries) CreateMessage(ctx context.Context, arg CreateMessageParams) (*models.Message, error) {
	if err := q.ready(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO messages (id, user_id, username, title, content, message_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + messageColumns

	m, err := scanMessage(q.db.QueryRow(ctx, query,
		uuid.New(), arg.UserID, arg.Username, arg.Title, arg.Content, arg.MessageType,
	))
	if err != nil {
		return nil, classify(err)
	}
	return m, nil
}

type BroadcastParams struct {
	Title       string
	Content     string
	MessageType string
}

// CreateBroadcast writes one message per registered user in a single
// transaction: either every user gets it or nobody does.
func (s *Store) CreateBroadcast(ctx context.Context, arg BroadcastParams) ([]models.Message, error) {
	sent := []models.Message{}

	err := s.ExecTx(ctx, func(q *Queries) error {
		users, err := q.ListUsers(ctx)
		if err != nil {
			return err
		}
		for _, user := range users {
			m, err := q.CreateMessage(ctx, CreateMessageParams{
				UserID:      user.ID,
				Username:    user.Username,
				Title:       arg.Title,
				Content:     arg.Content,
				MessageType: arg.MessageType,
			})
			if err != nil {
				return err
			}
			sent = append(sent, *m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sent, nil
}

func (q *Queries) ListMessagesByUser(ctx context.Context, userID string) ([]models.Message, error) {
	if err := q.ready(); err != nil {
		return nil, err
	}

	query := `SELECT ` + messageColumns + ` FROM messages WHERE user_id = $1 ORDER BY sent_at DESC`
	rows, err := q.db.Query(ctx, query, userID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, classify(err)
		}
		messages = append(messages, *m)
	}

	if err = rows.Err(); err != nil {
		return nil, classify(err)
	}

	return messages, nil
}

func (q *Queries) CountUnreadMessages(ctx context.Context, userID string) (int64, error) {
	if err := q.ready(); err != nil {
		return 0, err
	}

	var count int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM messages WHERE user_id = $1 AND NOT is_read`, userID).Scan(&count)
	if err != nil {
		return 0, classify(err)
	}
	return count, nil
}

// MarkMessageRead flips a message to read. read_at is stamped on the first
// call only; later calls return the message unchanged. When userID is not
// empty the message must belong to that user.
func (q *Queries) MarkMessageRead(ctx context.Context, messageID, userID string) (*models.Message, error) {
	if err := q.ready(); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(messageID)
	if err != nil {
		return nil, ErrNotFound
	}

	query := `
		UPDATE messages
		SET is_read = true, read_at = COALESCE(read_at, now())
		WHERE id = $1 AND ($2::text = '' OR user_id = $2::text)
		RETURNING ` + messageColumns

	m, err := scanMessage(q.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, classify(err)
	}
	return m, nil
}
