package models

import "time"

type Message struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"userId" db:"user_id"`
	Username    string     `json:"username" db:"username"`
	Title       string     `json:"title" db:"title"`
	Content     string     `json:"content" db:"content"`
	MessageType string     `json:"messageType" db:"message_type"`
	IsRead      bool       `json:"isRead" db:"is_read"`
	SentAt      time.Time  `json:"sentAt" db:"sent_at"`
	ReadAt      *time.Time `json:"readAt" db:"read_at"`
}
